package slot

import "slot_backend/internal/model"

// ClampStake ограничивает ставку диапазоном [1, maxBet]
func ClampStake(stake, maxBet int64) int64 {
	if stake < 1 {
		return 1
	}
	if stake > maxBet {
		return maxBet
	}
	return stake
}

// ActivePaylines возвращает префикс таблицы линий, открытый ставкой:
// ceil(stake/maxBet * total), но не меньше 1 и не больше total
func ActivePaylines(lines []model.Payline, stake, maxBet int64) []model.Payline {
	total := int64(len(lines))
	if total == 0 {
		return nil
	}

	opened := stake * total
	count := opened / maxBet
	if opened%maxBet != 0 {
		count++
	}
	if count < 1 {
		count = 1
	}
	if count > total {
		count = total
	}
	return lines[:count]
}
