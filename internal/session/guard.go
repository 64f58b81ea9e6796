package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/NiteMackfly/Discord-Casino-Bot/internal/logger"
)

// ErrActiveGame - у пользователя уже идёт игра
var ErrActiveGame = errors.New("game already in progress")

// ActiveGameError - отказ в допуске, пока предыдущая игра пользователя не завершена
type ActiveGameError struct {
	UserID int64
	Game   string
}

func (e *ActiveGameError) Error() string {
	return fmt.Sprintf("user %d already plays %s", e.UserID, e.Game)
}

func (e *ActiveGameError) Is(target error) bool {
	return target == ErrActiveGame
}

// Guard - не более одной активной игры на пользователя
type Guard struct {
	mu     sync.Mutex
	active map[int64]string
}

// Создание охранника сессий
func NewGuard() *Guard {
	return &Guard{active: make(map[int64]string)}
}

// TryAcquire - занять слот пользователя; при занятом слоте возвращает *ActiveGameError
func (g *Guard) TryAcquire(userID int64, game string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if current, ok := g.active[userID]; ok {
		logger.Infow("game refused, another one in progress", "user", userID, "game", game, "active", current)
		return &ActiveGameError{UserID: userID, Game: current}
	}
	g.active[userID] = game
	return nil
}

// Release - освободить слот; повторный вызов ничего не делает
func (g *Guard) Release(userID int64) {
	g.mu.Lock()
	delete(g.active, userID)
	g.mu.Unlock()
}

// Do - выполнить fn, удерживая слот пользователя. Слот освобождается при любом выходе, в том числе при панике.
func (g *Guard) Do(userID int64, game string, fn func() error) error {
	if err := g.TryAcquire(userID, game); err != nil {
		return err
	}
	defer g.Release(userID)
	return fn()
}

func (g *Guard) Active(userID int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.active[userID]
	return ok
}

func (g *Guard) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.active)
}
