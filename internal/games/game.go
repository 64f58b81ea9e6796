package games

import (
	"context"
	"errors"
	"strings"

	"github.com/NiteMackfly/Discord-Casino-Bot/internal/ledger"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/models"
)

// Action - ввод пользователя во время игры
type Action string

const (
	ActionHit    Action = "hit"
	ActionStand  Action = "stand"
	ActionReplay Action = "replay"
)

// Названия игр
const (
	GameBlackjack = "blackjack"
	GameRoulette  = "roulette"
	GameSlots     = "slots"
)

// Валюта расчёта
const (
	CurrencyMoney   = "money"
	CurrencyCredits = "credits"
)

var gameAliases = map[string]string{
	"blackjack": GameBlackjack,
	"bj":        GameBlackjack,
	"roulette":  GameRoulette,
	"slots":     GameSlots,
	"slot":      GameSlots,
}

var (
	ErrUnknownControl = errors.New("control is not active")
	ErrForeignControl = errors.New("control belongs to another user")
	ErrGameCrashed    = errors.New("game stopped unexpectedly")
	ErrEngineStopped  = errors.New("engine is shutting down")
)

// Settlement - итог раунда, единственное изменение счёта
type Settlement struct {
	Delta    int64
	Currency string
	Account  *models.Account
}

// Game - машина состояний одной игры
type Game interface {
	Name() string
	// Start - проверка ставки и раздача/вращение
	Start(ctx context.Context) error
	// HandleInput - ход игрока
	HandleInput(ctx context.Context, action Action) error
	IsTerminal() bool
	// Settle - запись результата в реестр счетов
	Settle(ctx context.Context) (*Settlement, error)
	// Frame - описание текущего состояния для отрисовки
	Frame() models.Result
	// Actions - допустимые в текущем состоянии действия
	Actions() []Action
	// Replayable - после расчёта можно предложить повтор с той же ставкой
	Replayable() bool
}

// ResolveGame - каноническое название игры по команде
func ResolveGame(name string) (string, error) {
	game, ok := gameAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", ledger.InvalidArgument("unknown game %q", name)
	}
	return game, nil
}

// checkStake - ставка положительна и не меньше минимальной
func checkStake(stake, minStake int64) error {
	if stake <= 0 || stake < minStake {
		return ledger.InvalidArgument("stake must be at least %d, got %d", max(minStake, 1), stake)
	}
	return nil
}

// checkStakeLimit - выигрыш по ставке должен помещаться в баланс
func checkStakeLimit(stake, limit int64) error {
	if stake > limit {
		return ledger.InvalidArgument("stake must be at most %d, got %d", limit, stake)
	}
	return nil
}

func actionLabel(a Action) string {
	switch a {
	case ActionHit:
		return "Hit"
	case ActionStand:
		return "Stand"
	case ActionReplay:
		return "Play again"
	}
	return string(a)
}
