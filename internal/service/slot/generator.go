package slot

import (
	"math/rand/v2"
	"slot_backend/internal/model"
)

// IntN возвращает равномерное число в [0, n)
type IntN func(n int) int

// Generator выбирает символы по таблице весов
type Generator struct {
	table model.WeightTable
	total int
	intN  IntN
}

// NewGenerator - генератор поверх потокобезопасного math/rand/v2.
// intN можно подменить в тестах
func NewGenerator(table model.WeightTable, intN IntN) *Generator {
	if intN == nil {
		intN = rand.IntN
	}
	return &Generator{
		table: table,
		total: table.Total(),
		intN:  intN,
	}
}

// Draw выбирает символ с вероятностью weight/total.
// Проход по таблице в фиксированном порядке с вычитанием веса
func (g *Generator) Draw() model.Symbol {
	num := g.intN(g.total)
	for _, sw := range g.table {
		if num < sw.Weight {
			return sw.Symbol
		}
		num -= sw.Weight
	}
	return g.table[len(g.table)-1].Symbol
}

// GenerateGrid заполняет поле rows x cols построчно, каждая ячейка независимо
func (g *Generator) GenerateGrid(rows, cols int) model.Grid {
	grid := make(model.Grid, rows)
	for r := 0; r < rows; r++ {
		grid[r] = make([]model.Symbol, cols)
		for c := 0; c < cols; c++ {
			grid[r][c] = g.Draw()
		}
	}
	return grid
}
