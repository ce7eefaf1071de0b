package env

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"slot_backend/internal/config"
	"slot_backend/internal/model"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	slotConfigPathEnvName   = "SLOT_CONFIG_PATH"
	maxBetEnvName           = "MAX_BET"
	twoOfAKindEnvName       = "SLOT_TWO_OF_A_KIND"
	scatterEnabledEnvName   = "SLOT_SCATTER_ENABLED"
	maxWinMultiplierEnvName = "MAX_WIN_MULTIPLIER"

	defaultSlotConfigPath = "config.yaml"
	defaultMaxBet         = 5000
)

// slotYAML - схема файла конфигурации слота
type slotYAML struct {
	Rows             int   `yaml:"rows"`
	Columns          int   `yaml:"columns"`
	MaxBet           int64 `yaml:"max_bet"`
	MaxWinMultiplier int64 `yaml:"max_win_multiplier"`
	TwoOfAKind       bool  `yaml:"two_of_a_kind"`
	Symbols          []struct {
		Symbol string `yaml:"symbol"`
		Weight int    `yaml:"weight"`
	} `yaml:"symbols"`
	Paylines [][][]int `yaml:"paylines"`
	Payouts  struct {
		Default map[int]int64            `yaml:"default"`
		Symbols map[string]map[int]int64 `yaml:"symbols"`
	} `yaml:"payouts"`
	Scatter struct {
		Enabled  bool          `yaml:"enabled"`
		Symbol   string        `yaml:"symbol"`
		MinCount int           `yaml:"min_count"`
		Payouts  map[int]int64 `yaml:"payouts"`
	} `yaml:"scatter"`
}

type slotConfig struct {
	paytable model.Paytable
}

// NewSlotConfig читает таблицы из SLOT_CONFIG_PATH (по умолчанию config.yaml).
// Если файла нет - берутся встроенные таблицы. Переменные окружения
// переопределяют максимальную ставку и переключатели политик
func NewSlotConfig() (config.SlotConfig, error) {
	path := os.Getenv(slotConfigPathEnvName)
	if len(path) == 0 {
		path = defaultSlotConfigPath
	}

	pt, err := loadPaytable(path)
	if err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(&pt); err != nil {
		return nil, err
	}

	if err := ValidatePaytable(pt); err != nil {
		return nil, err
	}

	return &slotConfig{paytable: pt}, nil
}

// NewSlotConfigFromYAML читает таблицы строго из файла, без переопределений
func NewSlotConfigFromYAML(path string) (config.SlotConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", model.ErrInvalidConfig, path, err)
	}
	pt, err := parsePaytable(data)
	if err != nil {
		return nil, err
	}
	if err := ValidatePaytable(pt); err != nil {
		return nil, err
	}
	return &slotConfig{paytable: pt}, nil
}

func (s *slotConfig) Paytable() model.Paytable {
	return s.paytable
}

func loadPaytable(path string) (model.Paytable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultPaytable(), nil
		}
		return model.Paytable{}, fmt.Errorf("%w: read %s: %w", model.ErrInvalidConfig, path, err)
	}
	return parsePaytable(data)
}

func parsePaytable(data []byte) (model.Paytable, error) {
	var raw slotYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return model.Paytable{}, fmt.Errorf("%w: parse yaml: %w", model.ErrInvalidConfig, err)
	}

	pt := model.Paytable{
		Rows:             raw.Rows,
		Columns:          raw.Columns,
		MaxBet:           raw.MaxBet,
		MaxWinMultiplier: raw.MaxWinMultiplier,
		TwoOfAKind:       raw.TwoOfAKind,
		DefaultPayout:    model.PayoutTable(raw.Payouts.Default),
		SymbolPayouts:    make(map[model.Symbol]model.PayoutTable, len(raw.Payouts.Symbols)),
	}
	if pt.MaxBet == 0 {
		pt.MaxBet = defaultMaxBet
	}

	for _, s := range raw.Symbols {
		pt.Weights = append(pt.Weights, model.SymbolWeight{Symbol: model.Symbol(s.Symbol), Weight: s.Weight})
	}

	for i, line := range raw.Paylines {
		payline := make(model.Payline, 0, len(line))
		for _, cell := range line {
			if len(cell) != 2 {
				return model.Paytable{}, fmt.Errorf("%w: payline %d: cell must be [row, col]", model.ErrInvalidConfig, i+1)
			}
			payline = append(payline, model.Coord{Row: cell[0], Col: cell[1]})
		}
		pt.Paylines = append(pt.Paylines, payline)
	}

	for sym, table := range raw.Payouts.Symbols {
		pt.SymbolPayouts[model.Symbol(sym)] = model.PayoutTable(table)
	}

	pt.Scatter = model.ScatterRule{
		Enabled:  raw.Scatter.Enabled,
		Symbol:   model.Symbol(raw.Scatter.Symbol),
		MinCount: raw.Scatter.MinCount,
		Payouts:  model.PayoutTable(raw.Scatter.Payouts),
	}
	if pt.Scatter.MinCount == 0 {
		pt.Scatter.MinCount = 3
	}

	return pt, nil
}

func applyEnvOverrides(pt *model.Paytable) error {
	if raw := os.Getenv(maxBetEnvName); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", model.ErrInvalidConfig, maxBetEnvName, raw)
		}
		pt.MaxBet = v
	}

	if raw := os.Getenv(twoOfAKindEnvName); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", model.ErrInvalidConfig, twoOfAKindEnvName, raw)
		}
		pt.TwoOfAKind = v
	}

	if raw := os.Getenv(scatterEnabledEnvName); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", model.ErrInvalidConfig, scatterEnabledEnvName, raw)
		}
		pt.Scatter.Enabled = v
	}

	if raw := os.Getenv(maxWinMultiplierEnvName); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", model.ErrInvalidConfig, maxWinMultiplierEnvName, raw)
		}
		pt.MaxWinMultiplier = v
	}

	return nil
}

// ValidatePaytable проверяет таблицы. Любая ошибка фатальна на старте
func ValidatePaytable(pt model.Paytable) error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{model.ErrInvalidConfig}, args...)...)
	}

	if pt.Rows <= 0 || pt.Columns <= 0 {
		return invalid("grid must be at least 1x1, got %dx%d", pt.Rows, pt.Columns)
	}
	if pt.MaxBet <= 0 {
		return invalid("max bet must be positive, got %d", pt.MaxBet)
	}
	if pt.MaxWinMultiplier < 0 {
		return invalid("max win multiplier must not be negative")
	}

	if len(pt.Weights) == 0 {
		return invalid("weight table is empty")
	}
	seen := make(map[model.Symbol]struct{}, len(pt.Weights))
	for _, sw := range pt.Weights {
		if sw.Symbol == "" {
			return invalid("empty symbol in weight table")
		}
		if sw.Weight <= 0 {
			return invalid("symbol %s: weight must be positive, got %d", sw.Symbol, sw.Weight)
		}
		if _, dup := seen[sw.Symbol]; dup {
			return invalid("symbol %s listed twice", sw.Symbol)
		}
		seen[sw.Symbol] = struct{}{}
	}

	if len(pt.Paylines) == 0 {
		return invalid("no paylines configured")
	}
	for i, line := range pt.Paylines {
		if len(line) != pt.Columns {
			return invalid("payline %d: want %d cells, got %d", i+1, pt.Columns, len(line))
		}
		for col, c := range line {
			if c.Col != col {
				return invalid("payline %d: cell %d must be in column %d", i+1, col, col)
			}
			if c.Row < 0 || c.Row >= pt.Rows {
				return invalid("payline %d: row %d out of range", i+1, c.Row)
			}
		}
	}

	if err := validatePayoutTable("default", pt.DefaultPayout); err != nil {
		return err
	}
	if len(pt.DefaultPayout) == 0 {
		return invalid("default payout table is empty")
	}
	for sym, table := range pt.SymbolPayouts {
		if _, ok := seen[sym]; !ok {
			return invalid("payout table for unknown symbol %s", sym)
		}
		if err := validatePayoutTable(string(sym), table); err != nil {
			return err
		}
	}

	if pt.Scatter.Enabled {
		if _, ok := seen[pt.Scatter.Symbol]; !ok {
			return invalid("scatter symbol %q is not in weight table", pt.Scatter.Symbol)
		}
		if pt.Scatter.MinCount < 3 {
			return invalid("scatter min count must be at least 3, got %d", pt.Scatter.MinCount)
		}
		if len(pt.Scatter.Payouts) == 0 {
			return invalid("scatter payout table is empty")
		}
		if err := validatePayoutTable("scatter", pt.Scatter.Payouts); err != nil {
			return err
		}
	}

	return validateStakeRange(pt)
}

// validateStakeRange проверяет, что максимальная ставка, умноженная на число
// линий и на максимальный выигрыш спина, помещается в int64
func validateStakeRange(pt model.Paytable) error {
	lines := int64(len(pt.Paylines))

	maxMult := maxMultiplier(pt.DefaultPayout)
	for _, table := range pt.SymbolPayouts {
		maxMult = max(maxMult, maxMultiplier(table))
	}
	maxMult = max(maxMult, 1)
	if maxMult > math.MaxInt64/lines {
		return fmt.Errorf("%w: payout multipliers overflow", model.ErrInvalidConfig)
	}

	perStake := maxMult * lines
	if pt.Scatter.Enabled {
		scatterMax := maxMultiplier(pt.Scatter.Payouts)
		if scatterMax > math.MaxInt64-perStake {
			return fmt.Errorf("%w: scatter multipliers overflow", model.ErrInvalidConfig)
		}
		perStake += scatterMax
	}

	if pt.MaxBet > math.MaxInt64/perStake {
		return fmt.Errorf("%w: max bet %d too large, limit is %d", model.ErrInvalidConfig, pt.MaxBet, math.MaxInt64/perStake)
	}
	return nil
}

func maxMultiplier(table model.PayoutTable) int64 {
	var m int64
	for _, mult := range table {
		m = max(m, mult)
	}
	return m
}

func validatePayoutTable(name string, table model.PayoutTable) error {
	for count, mult := range table {
		if count <= 0 {
			return fmt.Errorf("%w: payout table %s: count must be positive, got %d", model.ErrInvalidConfig, name, count)
		}
		if mult < 0 {
			return fmt.Errorf("%w: payout table %s: negative multiplier for %d", model.ErrInvalidConfig, name, count)
		}
	}
	return nil
}

// DefaultPaytable - встроенные таблицы: 10 символов, 3x5, 5 линий
func DefaultPaytable() model.Paytable {
	return model.Paytable{
		Rows:    3,
		Columns: 5,
		MaxBet:  defaultMaxBet,
		Weights: model.WeightTable{
			{Symbol: "🍒", Weight: 20},
			{Symbol: "🍋", Weight: 20},
			{Symbol: "🔔", Weight: 15},
			{Symbol: "⭐", Weight: 10},
			{Symbol: "🍊", Weight: 15},
			{Symbol: "7️⃣", Weight: 2},
			{Symbol: "💎", Weight: 1},
			{Symbol: "🍇", Weight: 8},
			{Symbol: "🍓", Weight: 6},
			{Symbol: "🍉", Weight: 5},
		},
		Paylines: []model.Payline{
			horizontal(0, 5),
			horizontal(1, 5),
			horizontal(2, 5),
			{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}, {Row: 1, Col: 3}, {Row: 0, Col: 4}},
			{{Row: 2, Col: 0}, {Row: 1, Col: 1}, {Row: 0, Col: 2}, {Row: 1, Col: 3}, {Row: 2, Col: 4}},
		},
		DefaultPayout: model.PayoutTable{3: 2, 4: 5, 5: 10},
		SymbolPayouts: map[model.Symbol]model.PayoutTable{
			"7️⃣": {3: 5, 4: 15, 5: 50},
			"💎":   {3: 10, 4: 30, 5: 100},
		},
		Scatter: model.ScatterRule{
			Enabled:  false,
			Symbol:   "⭐",
			MinCount: 3,
			Payouts:  model.PayoutTable{3: 2, 4: 5, 5: 20},
		},
	}
}

func horizontal(row, cols int) model.Payline {
	line := make(model.Payline, cols)
	for c := range cols {
		line[c] = model.Coord{Row: row, Col: c}
	}
	return line
}
