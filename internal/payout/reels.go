package payout

import (
	"github.com/shopspring/decimal"
)

// ReelCount - число барабанов автомата
const ReelCount = 3

// SymbolClasses - число классов символов на ленте
const SymbolClasses = 6

// ReelConfig - параметры автомата
type ReelConfig struct {
	// Items - длина ленты барабана, кратна SymbolClasses
	Items int
	// ForcedWinChance - вероятность принудительного выигрыша
	ForcedWinChance float64
	// Weights - возрастающие накопленные границы (в процентах) выбора класса при принудительном выигрыше
	Weights []decimal.Decimal
	// Multipliers - множитель ставки для каждого класса
	Multipliers []int64
}

// ReelSpin - результат вращения
type ReelSpin struct {
	Stops   [ReelCount]int
	Classes [ReelCount]int
	Forced  bool
}

// Win - на всех барабанах один класс
func (s ReelSpin) Win() bool {
	for i := 1; i < ReelCount; i++ {
		if s.Classes[i] != s.Classes[0] {
			return false
		}
	}
	return true
}

// SymbolClass - класс символа для позиции остановки
func SymbolClass(stop int) int {
	return (1 + stop) % SymbolClasses
}

// ForcedTier - число границ, не превышающих x (bisect right)
func ForcedTier(weights []decimal.Decimal, x decimal.Decimal) int {
	tier := 0
	for _, w := range weights {
		if w.GreaterThan(x) {
			break
		}
		tier++
	}
	return tier
}

// SpinReels - вращение барабанов.
//
// С вероятностью ForcedWinChance все барабаны останавливаются на одном классе:
// x = round(U*100, 1), tier = ForcedTier(Weights, x), позиция каждого барабана
// tier + k*6, где k равномерно в [1, Items/6 - 1].
// Иначе позиции выбираются независимо и равномерно в [1, Items-1];
// случайно совпавшая тройка тоже считается выигрышем.
func SpinReels(rnd Random, cfg ReelConfig) ReelSpin {
	var spin ReelSpin
	if rnd.Float64() < cfg.ForcedWinChance {
		spin.Forced = true
		x := decimal.NewFromFloat(rnd.Float64() * 100).Round(1)
		tier := ForcedTier(cfg.Weights, x)
		for i := range spin.Stops {
			k := intBetween(rnd, 1, cfg.Items/SymbolClasses-1)
			stop := tier + k*SymbolClasses
			if stop >= cfg.Items {
				stop -= SymbolClasses
			}
			spin.Stops[i] = stop
		}
	} else {
		for i := range spin.Stops {
			spin.Stops[i] = intBetween(rnd, 1, cfg.Items-1)
		}
	}
	for i, stop := range spin.Stops {
		spin.Classes[i] = SymbolClass(stop)
	}
	return spin
}

// ReelPayout - выигрыш в кредитах, 0 если классы не совпали
func ReelPayout(spin ReelSpin, stake int64, multipliers []int64) int64 {
	if !spin.Win() {
		return 0
	}
	class := spin.Classes[0]
	if class >= len(multipliers) {
		return 0
	}
	return MulStake(stake, multipliers[class])
}
