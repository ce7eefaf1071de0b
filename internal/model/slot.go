package model

// Symbol - один символ барабана
type Symbol string

// SymbolWeight - вес символа в таблице весов
type SymbolWeight struct {
	Symbol Symbol
	Weight int
}

// WeightTable - упорядоченная таблица весов.
// Порядок стабильный и задает порядок прохода при выборе символа
type WeightTable []SymbolWeight

// Total возвращает сумму всех весов
func (t WeightTable) Total() int {
	total := 0
	for _, sw := range t {
		total += sw.Weight
	}
	return total
}

// Grid - игровое поле rows x cols, grid[row][col]
type Grid [][]Symbol

// Coord - ячейка поля
type Coord struct {
	Row int
	Col int
}

// Payline - путь по полю, одна ячейка на каждую колонку
type Payline []Coord

// PayoutTable - длина серии -> множитель ставки
type PayoutTable map[int]int64

// Multiplier возвращает множитель для серии длины count.
// Серия длиннее максимального ключа платит как максимальный ключ
func (p PayoutTable) Multiplier(count int) int64 {
	if len(p) == 0 {
		return 0
	}
	maxKey := 0
	for k := range p {
		if k > maxKey {
			maxKey = k
		}
	}
	if count > maxKey {
		count = maxKey
	}
	return p[count]
}

// ScatterRule - правило выплаты за скаттеры
type ScatterRule struct {
	Enabled  bool
	Symbol   Symbol
	MinCount int
	Payouts  PayoutTable
}

// Paytable - вся статическая конфигурация слота
type Paytable struct {
	Rows             int
	Columns          int
	MaxBet           int64
	Weights          WeightTable
	Paylines         []Payline
	DefaultPayout    PayoutTable
	SymbolPayouts    map[Symbol]PayoutTable
	TwoOfAKind       bool
	Scatter          ScatterRule
	MaxWinMultiplier int64
}

// PayoutFor возвращает таблицу выплат символа или таблицу по умолчанию
func (p Paytable) PayoutFor(sym Symbol) PayoutTable {
	if t, ok := p.SymbolPayouts[sym]; ok {
		return t
	}
	return p.DefaultPayout
}
