package payout

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidTarget - ставка не является числом 0..36 или известной категорией
var ErrInvalidTarget = errors.New("invalid wheel target")

// WheelOrder - физический порядок 37 ячеек колеса
var WheelOrder = [37]int{0, 32, 15, 19, 4, 21, 2, 25, 17, 34, 6, 27, 13, 36, 11, 30, 8, 23, 10, 5, 24, 16, 33, 1, 20, 14, 31, 9, 22, 18, 29, 7, 28, 12, 35, 3, 26}

var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true, 14: true, 16: true, 18: true,
	19: true, 21: true, 23: true, 25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// Category - именованное подмножество ячеек
type Category string

const (
	CategoryNone  Category = ""
	CategoryRed   Category = "red"
	CategoryBlack Category = "black"
	CategoryEven  Category = "even"
	CategoryOdd   Category = "odd"
	CategoryLow   Category = "low"
	CategoryHigh  Category = "high"
)

var categoryAliases = map[string]Category{
	"red": CategoryRed, "r": CategoryRed,
	"black": CategoryBlack, "b": CategoryBlack,
	"even": CategoryEven, "e": CategoryEven,
	"odd": CategoryOdd, "o": CategoryOdd,
	"low": CategoryLow, "l": CategoryLow,
	"high": CategoryHigh, "h": CategoryHigh,
}

// Target - ставка: либо конкретное число, либо категория
type Target struct {
	Number   int
	Category Category
}

func (t Target) IsNumber() bool {
	return t.Category == CategoryNone
}

func (t Target) String() string {
	if t.IsNumber() {
		return strconv.Itoa(t.Number)
	}
	return string(t.Category)
}

// ParseTarget - разбор ставки: число 0..36, либо red|r, black|b, even|e, odd|o, low|l, high|h
func ParseTarget(s string) (Target, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := categoryAliases[s]; ok {
		return Target{Category: c}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 36 {
		return Target{}, ErrInvalidTarget
	}
	return Target{Number: n}, nil
}

// IsRed - красная ячейка; ноль не красный и не чёрный
func IsRed(n int) bool {
	return redNumbers[n]
}

// Covers - попадает ли ячейка в ставку. Ноль не входит ни в одну категорию.
func (t Target) Covers(pocket int) bool {
	if t.IsNumber() {
		return t.Number == pocket
	}
	if pocket == 0 {
		return false
	}
	switch t.Category {
	case CategoryRed:
		return IsRed(pocket)
	case CategoryBlack:
		return !IsRed(pocket)
	case CategoryEven:
		return pocket%2 == 0
	case CategoryOdd:
		return pocket%2 == 1
	case CategoryLow:
		return pocket >= 1 && pocket <= 18
	case CategoryHigh:
		return pocket >= 19 && pocket <= 36
	}
	return false
}

// WheelMultipliers - выплаты за точное число и за категорию
type WheelMultipliers struct {
	Exact    int64
	Category int64
}

// DefaultWheelMultipliers - 35 к 1 за число, 1 к 1 за категорию
var DefaultWheelMultipliers = WheelMultipliers{Exact: 35, Category: 1}

// WheelDelta - знаковое изменение баланса по итогу вращения
func WheelDelta(t Target, pocket int, stake int64, m WheelMultipliers) int64 {
	if !t.Covers(pocket) {
		return -stake
	}
	if t.IsNumber() {
		return MulStake(stake, m.Exact)
	}
	return MulStake(stake, m.Category)
}

// SpinWheel - равномерный выбор ячейки; возвращает номер и её индекс на колесе
func SpinWheel(rnd Random) (pocket int, index int) {
	index = rnd.Intn(len(WheelOrder))
	return WheelOrder[index], index
}
