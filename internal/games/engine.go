package games

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/NiteMackfly/Discord-Casino-Bot/internal/config"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/ledger"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/logger"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/models"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/payout"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/session"
	"github.com/google/uuid"
)

var (
	errWaitExpired = errors.New("wait expired")
	errCallerGone  = errors.New("caller stopped waiting for the first frame")
)

// reply - ответ горутины игры на команду или ввод
type reply struct {
	frame models.Result
	err   error
}

// input - нажатие на элемент управления, доставленное в горутину игры
type input struct {
	action    Action
	controlID string
	reply     chan reply
}

// control - живой элемент управления, привязанный к пользователю и игре
type control struct {
	id     string
	userID int64
	action Action
	inv    *invocation
}

// invocation - одна команда пользователя: раунд и его повторы
type invocation struct {
	id      string
	cmd     models.Command
	inbox   chan input
	done    chan struct{}
	abort   chan struct{}
	holding bool
	live    map[string]Action
	pending chan reply
}

// respond - ответить на ожидающий запрос; каждый канал ответа используется один раз
func (inv *invocation) respond(r reply) {
	if inv.pending == nil {
		return
	}
	inv.pending <- r
	inv.pending = nil
}

// Engine - запуск игр, охрана сессий и доставка ввода
type Engine struct {
	accounts ledger.Accounts
	guard    *session.Guard
	rules    config.GamesConfig
	rnd      payout.Random
	newDeck  func() *payout.Deck

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	controls map[string]*control
}

// Создание движка игр
func NewEngine(accounts ledger.Accounts, guard *session.Guard, rules config.GamesConfig, rnd payout.Random) *Engine {
	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		accounts: accounts,
		guard:    guard,
		rules:    rules,
		rnd:      rnd,
		ctx:      ctx,
		cancel:   cancel,
		controls: make(map[string]*control),
	}
	e.newDeck = func() *payout.Deck { return payout.NewDeck(e.rnd) }
	return e
}

func (e *Engine) newGame(cmd models.Command) Game {
	switch cmd.Game {
	case GameRoulette:
		return NewRoulette(e.accounts, e.rules, e.rnd, cmd)
	case GameSlots:
		return NewSlots(e.accounts, e.rules, e.rnd, cmd)
	default:
		return NewBlackjack(e.accounts, e.rules, e.newDeck(), cmd)
	}
}

// Play - запуск игры по команде; возвращает первый кадр или ошибку допуска/проверки ставки
func (e *Engine) Play(ctx context.Context, cmd models.Command) (models.Result, error) {
	name, err := ResolveGame(cmd.Game)
	if err != nil {
		return models.Result{}, err
	}
	cmd.Game = name

	select {
	case <-e.ctx.Done():
		return models.Result{}, ErrEngineStopped
	default:
	}

	if err := e.guard.TryAcquire(cmd.UserID, cmd.Game); err != nil {
		return models.Result{}, err
	}

	first := make(chan reply, 1)
	inv := &invocation{
		id:      uuid.NewString(),
		cmd:     cmd,
		inbox:   make(chan input),
		done:    make(chan struct{}),
		abort:   make(chan struct{}),
		holding: true,
		live:    make(map[string]Action),
		pending: first,
	}
	e.wg.Add(1)
	go e.run(inv)

	select {
	case r := <-first:
		return r.frame, r.err
	case <-ctx.Done():
		// начатый раунд доигрывается до первого ожидания ввода, затем бросается
		close(inv.abort)
		return models.Result{}, ctx.Err()
	}
}

// Input - доставка нажатия в ожидающую игру
func (e *Engine) Input(ctx context.Context, ev models.InputEvent) (models.Result, error) {
	e.mu.Lock()
	c, ok := e.controls[ev.ControlID]
	e.mu.Unlock()
	if !ok {
		return models.Result{}, ErrUnknownControl
	}
	if c.userID != ev.UserID {
		return models.Result{}, ErrForeignControl
	}

	r := make(chan reply, 1)
	select {
	case c.inv.inbox <- input{action: c.action, controlID: c.id, reply: r}:
	case <-c.inv.done:
		return models.Result{}, ErrUnknownControl
	case <-ctx.Done():
		return models.Result{}, ctx.Err()
	}

	select {
	case res := <-r:
		return res.frame, res.err
	case <-c.inv.done:
		select {
		case res := <-r:
			return res.frame, res.err
		default:
			return models.Result{}, ErrUnknownControl
		}
	case <-ctx.Done():
		return models.Result{}, ctx.Err()
	}
}

// Shutdown - отмена ожиданий и завершение всех игр.
// Незавершённая карточная игра бросается без записи в реестр.
func (e *Engine) Shutdown(ctx context.Context) error {
	e.cancel()
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ActiveControls - число живых элементов управления
func (e *Engine) ActiveControls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.controls)
}

func (e *Engine) release(inv *invocation) {
	if inv.holding {
		e.guard.Release(inv.cmd.UserID)
		inv.holding = false
	}
}

func (e *Engine) run(inv *invocation) {
	defer e.wg.Done()
	defer close(inv.done)
	defer e.dropControls(inv)
	defer e.release(inv)
	defer func() {
		if r := recover(); r != nil {
			logger.Get().Errorw("game panicked", "session", inv.id, "user", inv.cmd.UserID, "game", inv.cmd.Game, "panic", r)
			e.dropControls(inv)
			e.release(inv)
			inv.respond(reply{err: ErrGameCrashed})
		}
	}()

	for e.playRound(inv) {
	}
}

// playRound - один раунд; true, если пользователь выбрал повтор и допущен к новому раунду
func (e *Engine) playRound(inv *invocation) bool {
	// записи в реестр не прерываются остановкой движка
	ctx := context.WithoutCancel(e.ctx)
	game := e.newGame(inv.cmd)

	if err := game.Start(ctx); err != nil {
		logger.Infow("game rejected", "session", inv.id, "user", inv.cmd.UserID, "game", inv.cmd.Game, "error", err.Error())
		e.release(inv)
		inv.respond(reply{err: err})
		return false
	}

	for !game.IsTerminal() {
		frame := e.present(inv, game.Frame(), game.Actions())
		inv.respond(reply{frame: frame})

		_, err := e.wait(inv, e.rules.TurnTimeout, func(in input) bool {
			if err := game.HandleInput(ctx, in.action); err != nil {
				in.reply <- reply{err: err}
				return false
			}
			inv.pending = in.reply
			return true
		})
		if err != nil {
			logger.Infow("game abandoned", "session", inv.id, "user", inv.cmd.UserID, "game", inv.cmd.Game, "reason", err.Error())
			return false
		}
	}
	e.dropControls(inv)

	settlement, err := game.Settle(ctx)
	if err != nil {
		logger.Get().Errorw("settlement failed", "session", inv.id, "user", inv.cmd.UserID, "game", inv.cmd.Game, "error", err.Error())
		e.release(inv)
		inv.respond(reply{err: err})
		return false
	}
	e.logSettlement(inv, settlement)
	e.release(inv)

	if !game.Replayable() || e.rules.ReplayTimeout <= 0 {
		inv.respond(reply{frame: e.present(inv, game.Frame(), nil)})
		return false
	}

	inv.respond(reply{frame: e.present(inv, game.Frame(), []Action{ActionReplay})})
	_, err = e.wait(inv, e.rules.ReplayTimeout, func(in input) bool {
		if err := e.guard.TryAcquire(inv.cmd.UserID, inv.cmd.Game); err != nil {
			in.reply <- reply{err: err}
			return false
		}
		inv.holding = true
		inv.pending = in.reply
		return true
	})
	if err != nil {
		logger.Infow("replay offer closed", "session", inv.id, "user", inv.cmd.UserID, "game", inv.cmd.Game, "reason", err.Error())
		return false
	}
	e.dropControls(inv)
	return true
}

// wait - ожидание ввода по живому элементу управления. Таймаут общий на всё ожидание,
// timeout <= 0 ждёт без ограничения. accept возвращает false, если ввод отклонён и ожидание продолжается.
func (e *Engine) wait(inv *invocation, timeout time.Duration, accept func(in input) bool) (input, error) {
	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}
	for {
		select {
		case in := <-inv.inbox:
			if _, ok := inv.live[in.controlID]; !ok {
				in.reply <- reply{err: ErrUnknownControl}
				continue
			}
			if accept(in) {
				return in, nil
			}
		case <-expired:
			return input{}, errWaitExpired
		case <-inv.abort:
			return input{}, errCallerGone
		case <-e.ctx.Done():
			return input{}, ErrEngineStopped
		}
	}
}

// present - кадр с новыми элементами управления; прежние элементы этой игры перестают действовать
func (e *Engine) present(inv *invocation, frame models.Result, actions []Action) models.Result {
	e.dropControls(inv)
	frame.SessionID = inv.id
	frame.Controls = nil
	if len(actions) == 0 {
		return frame
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for _, a := range actions {
		c := &control{id: uuid.NewString(), userID: inv.cmd.UserID, action: a, inv: inv}
		e.controls[c.id] = c
		inv.live[c.id] = a
		frame.Controls = append(frame.Controls, models.Control{ID: c.id, Label: actionLabel(a), Action: string(a)})
	}
	return frame
}

func (e *Engine) dropControls(inv *invocation) {
	if len(inv.live) == 0 {
		return
	}
	e.mu.Lock()
	for id := range inv.live {
		delete(e.controls, id)
	}
	e.mu.Unlock()
	clear(inv.live)
}

// logSettlement - единая запись о расчёте раунда
func (e *Engine) logSettlement(inv *invocation, s *Settlement) {
	fields := []interface{}{
		"session", inv.id,
		"user", inv.cmd.UserID,
		"game", inv.cmd.Game,
		"stake", inv.cmd.Stake,
		"delta", s.Delta,
		"currency", s.Currency,
	}
	if s.Account != nil {
		fields = append(fields, "money", s.Account.Money, "credits", s.Account.Credits)
	}
	logger.Infow("game settled", fields...)
}
