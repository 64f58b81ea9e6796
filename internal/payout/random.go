// Package payout содержит чистую математику игр: колоду и подсчёт очков,
// колесо рулетки, барабаны автомата и множители выплат.
//
// Все функции зависят только от источника случайности Random, поэтому при
// одинаковом зерне результат воспроизводим.
package payout

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
)

// Random - источник случайности для игр
type Random interface {
	// Intn - равномерное целое в [0, n)
	Intn(n int) int
	// Float64 - равномерное число в [0, 1)
	Float64() float64
	// Shuffle - равномерная перестановка n элементов
	Shuffle(n int, swap func(i, j int))
}

// lockedRandom - *rand.Rand, безопасный для использования из нескольких горутин
type lockedRandom struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeed - зерно из криптографического генератора
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewRandom - источник со случайным зерном
func NewRandom() (Random, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return NewSeededRandom(seed), nil
}

// NewSeededRandom - детерминированный источник, используется в тестах и для воспроизведения раундов
func NewSeededRandom(seed int64) Random {
	return &lockedRandom{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedRandom) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

func (l *lockedRandom) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRandom) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(n, swap)
}

// intBetween - равномерное целое в [lo, hi]
func intBetween(rnd Random, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rnd.Intn(hi-lo+1)
}
