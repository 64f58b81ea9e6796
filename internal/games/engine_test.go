package games

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/NiteMackfly/Discord-Casino-Bot/internal/config"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/ledger"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/ledger/mocks"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/logger"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/models"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/payout"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/session"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/mock/gomock"
)

func init() {
	if err := logger.Initialize(config.DefaultConfig().Server.LogLevel); err != nil {
		panic(err)
	}
}

// fakeRandom - источник, выдающий заранее заданные значения
type fakeRandom struct {
	floats []float64
	ints   []int
}

func (f *fakeRandom) Intn(n int) int {
	v := f.ints[0]
	f.ints = f.ints[1:]
	return v % n
}

func (f *fakeRandom) Float64() float64 {
	v := f.floats[0]
	f.floats = f.floats[1:]
	return v
}

func (f *fakeRandom) Shuffle(n int, swap func(i, j int)) {}

func card(rank string) payout.Card {
	return payout.Card{Rank: rank, Suit: "spades"}
}

type testEngine struct {
	engine   *Engine
	guard    *session.Guard
	accounts *mocks.MockAccounts
}

func newTestEngine(t *testing.T, rules config.GamesConfig, rnd payout.Random, deck ...payout.Card) *testEngine {
	t.Helper()
	ctrl := gomock.NewController(t)
	accounts := mocks.NewMockAccounts(ctrl)
	guard := session.NewGuard()
	engine := NewEngine(accounts, guard, rules, rnd)
	if len(deck) > 0 {
		engine.newDeck = func() *payout.Deck { return payout.StackedDeck(deck...) }
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := engine.Shutdown(ctx); err != nil {
			t.Errorf("shutdown: %v", err)
		}
	})
	return &testEngine{engine: engine, guard: guard, accounts: accounts}
}

func controlFor(t *testing.T, frame models.Result, action Action) string {
	t.Helper()
	for _, c := range frame.Controls {
		if c.Action == string(action) {
			return c.ID
		}
	}
	t.Fatalf("no %q control in frame %+v", action, frame.Controls)
	return ""
}

func withTimeout(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestEngine_Blackjack(t *testing.T) {
	testCases := []struct {
		Name            string
		Deck            []payout.Card
		Moves           []Action
		SetupMocks      func(m *mocks.MockAccounts)
		ExpectedOutcome int64
		ExpectedColor   models.Color
	}{
		{
			Name:  "Dealer 21 beats player 20 #1",
			Deck:  []payout.Card{card("K"), card("A"), card("Q"), card("K")},
			Moves: []Action{ActionStand},
			SetupMocks: func(m *mocks.MockAccounts) {
				m.EXPECT().GetAccount(gomock.Any(), int64(1)).Return(&models.Account{UserID: 1, Money: 500}, nil)
				m.EXPECT().AdjustMoney(gomock.Any(), int64(1), int64(-100)).Return(&models.Account{UserID: 1, Money: 400}, nil).Times(1)
			},
			ExpectedOutcome: -100,
			ExpectedColor:   models.ColorRed,
		},
		{
			Name: "Natural on the deal pays one and a half #2",
			Deck: []payout.Card{card("A"), card("9"), card("K"), card("7")},
			SetupMocks: func(m *mocks.MockAccounts) {
				m.EXPECT().GetAccount(gomock.Any(), int64(1)).Return(&models.Account{UserID: 1, Money: 500}, nil)
				m.EXPECT().AdjustMoney(gomock.Any(), int64(1), int64(150)).Return(&models.Account{UserID: 1, Money: 650}, nil)
			},
			ExpectedOutcome: 150,
			ExpectedColor:   models.ColorGold,
		},
		{
			Name:  "Push writes nothing #3",
			Deck:  []payout.Card{card("K"), card("K"), card("Q"), card("Q")},
			Moves: []Action{ActionStand},
			SetupMocks: func(m *mocks.MockAccounts) {
				m.EXPECT().GetAccount(gomock.Any(), int64(1)).Return(&models.Account{UserID: 1, Money: 500}, nil)
			},
			ExpectedOutcome: 0,
			ExpectedColor:   models.ColorDefault,
		},
		{
			Name:  "Hit into bust #4",
			Deck:  []payout.Card{card("K"), card("5"), card("6"), card("9"), card("Q")},
			Moves: []Action{ActionHit},
			SetupMocks: func(m *mocks.MockAccounts) {
				m.EXPECT().GetAccount(gomock.Any(), int64(1)).Return(&models.Account{UserID: 1, Money: 100}, nil)
				m.EXPECT().AdjustMoney(gomock.Any(), int64(1), int64(-100)).Return(&models.Account{UserID: 1}, nil)
			},
			ExpectedOutcome: -100,
			ExpectedColor:   models.ColorRed,
		},
		{
			Name:  "Hit to 21 pays one and a half #5",
			Deck:  []payout.Card{card("5"), card("9"), card("6"), card("7"), card("K")},
			Moves: []Action{ActionHit},
			SetupMocks: func(m *mocks.MockAccounts) {
				m.EXPECT().GetAccount(gomock.Any(), int64(1)).Return(&models.Account{UserID: 1, Money: 100}, nil)
				m.EXPECT().AdjustMoney(gomock.Any(), int64(1), int64(150)).Return(&models.Account{UserID: 1, Money: 250}, nil)
			},
			ExpectedOutcome: 150,
			ExpectedColor:   models.ColorGold,
		},
		{
			Name:  "Dealer draws to bust #6",
			Deck:  []payout.Card{card("K"), card("6"), card("8"), card("K"), card("9")},
			Moves: []Action{ActionStand},
			SetupMocks: func(m *mocks.MockAccounts) {
				m.EXPECT().GetAccount(gomock.Any(), int64(1)).Return(&models.Account{UserID: 1, Money: 100}, nil)
				m.EXPECT().AdjustMoney(gomock.Any(), int64(1), int64(100)).Return(&models.Account{UserID: 1, Money: 200}, nil)
			},
			ExpectedOutcome: 100,
			ExpectedColor:   models.ColorGreen,
		},
		{
			Name:  "Higher hand wins #7",
			Deck:  []payout.Card{card("K"), card("10"), card("9"), card("8")},
			Moves: []Action{ActionStand},
			SetupMocks: func(m *mocks.MockAccounts) {
				m.EXPECT().GetAccount(gomock.Any(), int64(1)).Return(&models.Account{UserID: 1, Money: 100}, nil)
				m.EXPECT().AdjustMoney(gomock.Any(), int64(1), int64(100)).Return(&models.Account{UserID: 1, Money: 200}, nil)
			},
			ExpectedOutcome: 100,
			ExpectedColor:   models.ColorGreen,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			te := newTestEngine(t, testRules(), payout.NewSeededRandom(1), tc.Deck...)
			tc.SetupMocks(te.accounts)
			ctx := withTimeout(t)

			frame, err := te.engine.Play(ctx, models.Command{UserID: 1, Game: "bj", Stake: 100})
			if err != nil {
				t.Fatalf("Expected no error, got: '%v'", err)
			}
			for _, move := range tc.Moves {
				frame, err = te.engine.Input(ctx, models.InputEvent{UserID: 1, ControlID: controlFor(t, frame, move)})
				if err != nil {
					t.Fatalf("move %s: %v", move, err)
				}
			}

			if !frame.Final {
				t.Fatalf("expected final frame, got %+v", frame)
			}
			if frame.Outcome != tc.ExpectedOutcome {
				t.Errorf("expected outcome %d, got %d", tc.ExpectedOutcome, frame.Outcome)
			}
			if frame.Color != tc.ExpectedColor {
				t.Errorf("expected color %s, got %s", tc.ExpectedColor, frame.Color)
			}
			if len(frame.Controls) != 0 {
				t.Errorf("final frame must not carry controls: %+v", frame.Controls)
			}
			if te.guard.Active(1) {
				t.Error("guard must be released after settlement")
			}
		})
	}
}

func TestEngine_BlackjackHidesHoleCard(t *testing.T) {
	te := newTestEngine(t, testRules(), payout.NewSeededRandom(1), card("K"), card("5"), card("6"), card("Q"))
	te.accounts.EXPECT().GetAccount(gomock.Any(), int64(1)).Return(&models.Account{UserID: 1, Money: 100}, nil)

	frame, err := te.engine.Play(withTimeout(t), models.Command{UserID: 1, Game: "blackjack", Stake: 10})
	if err != nil {
		t.Fatal(err)
	}
	table, ok := frame.Payload.(models.TablePayload)
	if !ok {
		t.Fatalf("unexpected payload %T", frame.Payload)
	}
	want := []models.CardView{{Rank: "5", Suit: "spades", FaceUp: true}, {FaceUp: false}}
	if diff := cmp.Diff(want, table.Dealer); diff != "" {
		t.Errorf("dealer hand mismatch (-want +got):\n%s", diff)
	}
	if table.DealerValue != 5 || table.PlayerValue != 16 {
		t.Errorf("unexpected values dealer=%d player=%d", table.DealerValue, table.PlayerValue)
	}
	if len(frame.Controls) != 2 {
		t.Errorf("expected hit and stand controls, got %+v", frame.Controls)
	}
}

func TestEngine_Rejections(t *testing.T) {
	testCases := []struct {
		Name          string
		Command       models.Command
		SetupMocks    func(m *mocks.MockAccounts)
		ExpectedError error
	}{
		{
			Name:          "Error. Unknown game #1",
			Command:       models.Command{UserID: 1, Game: "poker", Stake: 10},
			SetupMocks:    func(m *mocks.MockAccounts) {},
			ExpectedError: ledger.ErrInvalidArgument,
		},
		{
			Name:          "Error. Non-positive stake #2",
			Command:       models.Command{UserID: 1, Game: "blackjack", Stake: 0},
			SetupMocks:    func(m *mocks.MockAccounts) {},
			ExpectedError: ledger.ErrInvalidArgument,
		},
		{
			Name:    "Error. Stake above balance #3",
			Command: models.Command{UserID: 1, Game: "blackjack", Stake: 100},
			SetupMocks: func(m *mocks.MockAccounts) {
				m.EXPECT().GetAccount(gomock.Any(), int64(1)).Return(&models.Account{UserID: 1, Money: 50}, nil)
			},
			ExpectedError: &ledger.InsufficientFundsError{Current: 50, Requested: 100},
		},
		{
			Name:          "Error. Bad roulette target #4",
			Command:       models.Command{UserID: 1, Game: "roulette", Stake: 10, Target: "green"},
			SetupMocks:    func(m *mocks.MockAccounts) {},
			ExpectedError: ledger.ErrInvalidArgument,
		},
		{
			Name:          "Error. Slots bet above range #5",
			Command:       models.Command{UserID: 1, Game: "slots", Stake: 4},
			SetupMocks:    func(m *mocks.MockAccounts) {},
			ExpectedError: ledger.ErrInvalidArgument,
		},
		{
			Name:    "Error. Not enough credits #6",
			Command: models.Command{UserID: 1, Game: "slots", Stake: 3},
			SetupMocks: func(m *mocks.MockAccounts) {
				m.EXPECT().Transfer(gomock.Any(), int64(1), int64(0), int64(-3)).
					Return(nil, &ledger.InsufficientFundsError{Current: 1, Requested: 3})
			},
			ExpectedError: ledger.ErrInsufficientFunds,
		},
		{
			Name:    "Error. Store failure is reported #7",
			Command: models.Command{UserID: 1, Game: "roulette", Stake: 10, Target: "r"},
			SetupMocks: func(m *mocks.MockAccounts) {
				m.EXPECT().GetAccount(gomock.Any(), int64(1)).
					Return(nil, &ledger.StoreError{Op: "GetAccount", Attempts: 5, Err: errors.New("database is locked")})
			},
			ExpectedError: ledger.ErrStore,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			te := newTestEngine(t, testRules(), payout.NewSeededRandom(1))
			tc.SetupMocks(te.accounts)

			_, err := te.engine.Play(withTimeout(t), tc.Command)
			if !errors.Is(err, tc.ExpectedError) {
				t.Fatalf("expected %v, got %v", tc.ExpectedError, err)
			}
			var ife *ledger.InsufficientFundsError
			if want, ok := tc.ExpectedError.(*ledger.InsufficientFundsError); ok {
				if !errors.As(err, &ife) || *ife != *want {
					t.Errorf("expected %v, got %v", want, err)
				}
			}
			if te.guard.Active(1) {
				t.Error("guard must be released after rejection")
			}
		})
	}
}

func TestEngine_ActiveGameAndShutdown(t *testing.T) {
	te := newTestEngine(t, testRules(), payout.NewSeededRandom(1), card("K"), card("5"), card("6"), card("Q"))
	te.accounts.EXPECT().GetAccount(gomock.Any(), int64(1)).Return(&models.Account{UserID: 1, Money: 100}, nil)
	ctx := withTimeout(t)

	if _, err := te.engine.Play(ctx, models.Command{UserID: 1, Game: "blackjack", Stake: 10}); err != nil {
		t.Fatal(err)
	}
	_, err := te.engine.Play(ctx, models.Command{UserID: 1, Game: "roulette", Stake: 10, Target: "red"})
	if !errors.Is(err, session.ErrActiveGame) {
		t.Fatalf("expected ErrActiveGame, got %v", err)
	}

	// брошенная карточная игра не пишет в реестр
	if err := te.engine.Shutdown(ctx); err != nil {
		t.Fatal(err)
	}
	if te.guard.Active(1) {
		t.Error("guard must be released on shutdown")
	}
	if te.engine.ActiveControls() != 0 {
		t.Error("controls must be dropped on shutdown")
	}
	if _, err := te.engine.Play(ctx, models.Command{UserID: 1, Game: "blackjack", Stake: 10}); !errors.Is(err, ErrEngineStopped) {
		t.Errorf("expected ErrEngineStopped, got %v", err)
	}
}

func TestEngine_ControlOwnership(t *testing.T) {
	te := newTestEngine(t, testRules(), payout.NewSeededRandom(1),
		card("2"), card("K"), card("3"), card("Q"), card("4"))
	te.accounts.EXPECT().GetAccount(gomock.Any(), int64(1)).Return(&models.Account{UserID: 1, Money: 100}, nil)
	te.accounts.EXPECT().AdjustMoney(gomock.Any(), int64(1), int64(-10)).Return(&models.Account{UserID: 1, Money: 90}, nil)
	ctx := withTimeout(t)

	frame, err := te.engine.Play(ctx, models.Command{UserID: 1, Game: "blackjack", Stake: 10})
	if err != nil {
		t.Fatal(err)
	}
	hit := controlFor(t, frame, ActionHit)

	if _, err := te.engine.Input(ctx, models.InputEvent{UserID: 2, ControlID: hit}); !errors.Is(err, ErrForeignControl) {
		t.Errorf("expected ErrForeignControl, got %v", err)
	}
	if _, err := te.engine.Input(ctx, models.InputEvent{UserID: 1, ControlID: "missing"}); !errors.Is(err, ErrUnknownControl) {
		t.Errorf("expected ErrUnknownControl, got %v", err)
	}

	frame, err = te.engine.Input(ctx, models.InputEvent{UserID: 1, ControlID: hit})
	if err != nil {
		t.Fatal(err)
	}
	if frame.Final {
		t.Fatal("9 must not end the round")
	}
	// прежний элемент управления больше не действует
	if _, err := te.engine.Input(ctx, models.InputEvent{UserID: 1, ControlID: hit}); !errors.Is(err, ErrUnknownControl) {
		t.Errorf("expected ErrUnknownControl for stale control, got %v", err)
	}

	frame, err = te.engine.Input(ctx, models.InputEvent{UserID: 1, ControlID: controlFor(t, frame, ActionStand)})
	if err != nil {
		t.Fatal(err)
	}
	if frame.Outcome != -10 {
		t.Errorf("9 against 20 must lose, got %+v", frame)
	}
}

func TestEngine_RouletteReplay(t *testing.T) {
	rules := testRules()
	rules.ReplayTimeout = time.Minute
	// индекс 23 - ячейка 1 (красная), индекс 0 - ноль
	te := newTestEngine(t, rules, &fakeRandom{ints: []int{23, 0}})
	gomock.InOrder(
		te.accounts.EXPECT().GetAccount(gomock.Any(), int64(1)).Return(&models.Account{UserID: 1, Money: 100}, nil),
		te.accounts.EXPECT().AdjustMoney(gomock.Any(), int64(1), int64(10)).Return(&models.Account{UserID: 1, Money: 110}, nil),
		te.accounts.EXPECT().GetAccount(gomock.Any(), int64(1)).Return(&models.Account{UserID: 1, Money: 110}, nil),
		te.accounts.EXPECT().AdjustMoney(gomock.Any(), int64(1), int64(-10)).Return(&models.Account{UserID: 1, Money: 100}, nil),
	)
	ctx := withTimeout(t)

	frame, err := te.engine.Play(ctx, models.Command{UserID: 1, Game: "roulette", Stake: 10, Target: "red"})
	if err != nil {
		t.Fatal(err)
	}
	if frame.Outcome != 10 || !frame.Final {
		t.Fatalf("expected settled win, got %+v", frame)
	}
	if diff := cmp.Diff(models.WheelPayload{Pocket: 1, Target: "red", Balance: 110}, frame.Payload); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
	if te.guard.Active(1) {
		t.Error("guard must not be held while the replay offer is open")
	}

	frame, err = te.engine.Input(ctx, models.InputEvent{UserID: 1, ControlID: controlFor(t, frame, ActionReplay)})
	if err != nil {
		t.Fatal(err)
	}
	if frame.Outcome != -10 {
		t.Errorf("zero must lose a red bet, got %+v", frame)
	}
	if len(frame.Controls) != 1 {
		t.Errorf("expected a new replay control, got %+v", frame.Controls)
	}
}

func TestEngine_ReplayRefusedWhileAnotherGameRuns(t *testing.T) {
	rules := testRules()
	rules.ReplayTimeout = time.Minute
	te := newTestEngine(t, rules, &fakeRandom{ints: []int{23}}, card("K"), card("5"), card("6"), card("Q"))
	te.accounts.EXPECT().GetAccount(gomock.Any(), int64(1)).Return(&models.Account{UserID: 1, Money: 100}, nil).Times(2)
	te.accounts.EXPECT().AdjustMoney(gomock.Any(), int64(1), int64(350)).Return(&models.Account{UserID: 1, Money: 450}, nil)
	ctx := withTimeout(t)

	roulette, err := te.engine.Play(ctx, models.Command{UserID: 1, Game: "roulette", Stake: 10, Target: "1"})
	if err != nil {
		t.Fatal(err)
	}
	if roulette.Outcome != 350 {
		t.Fatalf("expected straight hit, got %+v", roulette)
	}
	if _, err := te.engine.Play(ctx, models.Command{UserID: 1, Game: "blackjack", Stake: 10}); err != nil {
		t.Fatal(err)
	}

	replay := controlFor(t, roulette, ActionReplay)
	if _, err := te.engine.Input(ctx, models.InputEvent{UserID: 1, ControlID: replay}); !errors.Is(err, session.ErrActiveGame) {
		t.Fatalf("expected ErrActiveGame, got %v", err)
	}
}

func TestEngine_ReplayOfferExpires(t *testing.T) {
	rules := testRules()
	rules.ReplayTimeout = 20 * time.Millisecond
	te := newTestEngine(t, rules, &fakeRandom{floats: []float64{0.5}, ints: []int{0, 1, 2}})
	te.accounts.EXPECT().Transfer(gomock.Any(), int64(1), int64(0), int64(-2)).Return(&models.Account{UserID: 1, Credits: 8}, nil)
	ctx := withTimeout(t)

	frame, err := te.engine.Play(ctx, models.Command{UserID: 1, Game: "slots", Stake: 2})
	if err != nil {
		t.Fatal(err)
	}
	if frame.Outcome != -2 || !frame.Final {
		t.Fatalf("expected settled loss, got %+v", frame)
	}
	reroll := controlFor(t, frame, ActionReplay)

	deadline := time.Now().Add(time.Second)
	for te.engine.ActiveControls() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if _, err := te.engine.Input(ctx, models.InputEvent{UserID: 1, ControlID: reroll}); !errors.Is(err, ErrUnknownControl) {
		t.Errorf("expected ErrUnknownControl after expiry, got %v", err)
	}
}

func TestEngine_SlotsForcedWin(t *testing.T) {
	te := newTestEngine(t, testRules(), &fakeRandom{floats: []float64{0.05, 0.02}, ints: []int{0, 4, 8}})
	gomock.InOrder(
		te.accounts.EXPECT().Transfer(gomock.Any(), int64(1), int64(0), int64(-2)).Return(&models.Account{UserID: 1, Credits: 8}, nil),
		te.accounts.EXPECT().AdjustCredits(gomock.Any(), int64(1), int64(160)).Return(&models.Account{UserID: 1, Credits: 168}, nil),
	)

	frame, err := te.engine.Play(withTimeout(t), models.Command{UserID: 1, Game: "slots", Stake: 2})
	if err != nil {
		t.Fatal(err)
	}
	if frame.Outcome != 158 || frame.Color != models.ColorGold {
		t.Errorf("unexpected frame %+v", frame)
	}
	want := models.ReelsPayload{Stops: [3]int{6, 30, 54}, Classes: [3]int{1, 1, 1}, Balance: 168}
	if diff := cmp.Diff(want, frame.Payload); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_PanicReleasesGuard(t *testing.T) {
	te := newTestEngine(t, testRules(), payout.NewSeededRandom(1))
	te.accounts.EXPECT().GetAccount(gomock.Any(), int64(1)).DoAndReturn(
		func(context.Context, int64) (*models.Account, error) { panic("boom") })

	_, err := te.engine.Play(withTimeout(t), models.Command{UserID: 1, Game: "roulette", Stake: 1, Target: "odd"})
	if !errors.Is(err, ErrGameCrashed) {
		t.Fatalf("expected ErrGameCrashed, got %v", err)
	}
	if te.guard.Active(1) {
		t.Error("guard must be released after panic")
	}
}

func TestEngine_CallerTimeoutReleasesGuard(t *testing.T) {
	te := newTestEngine(t, testRules(), payout.NewSeededRandom(1), card("K"), card("5"), card("6"), card("Q"))
	gomock.InOrder(
		te.accounts.EXPECT().GetAccount(gomock.Any(), int64(1)).DoAndReturn(
			func(context.Context, int64) (*models.Account, error) {
				time.Sleep(50 * time.Millisecond)
				return &models.Account{UserID: 1, Money: 100}, nil
			}),
		te.accounts.EXPECT().GetAccount(gomock.Any(), int64(1)).Return(&models.Account{UserID: 1, Money: 100}, nil),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := te.engine.Play(ctx, models.Command{UserID: 1, Game: "blackjack", Stake: 10})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for te.guard.Active(1) || te.engine.ActiveControls() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("guard active=%v, live controls=%d after the caller left", te.guard.Active(1), te.engine.ActiveControls())
		}
		time.Sleep(5 * time.Millisecond)
	}

	frame, err := te.engine.Play(withTimeout(t), models.Command{UserID: 1, Game: "blackjack", Stake: 10})
	if err != nil {
		t.Fatalf("next game must be admitted, got %v", err)
	}
	if len(frame.Controls) != 2 {
		t.Errorf("expected hit and stand controls, got %+v", frame.Controls)
	}
}

func TestEngine_StakeLimit(t *testing.T) {
	testCases := []struct {
		Name  string
		Cmd   models.Command
		Limit int64
	}{
		{
			Name:  "Error. Straight bet above payout limit #1",
			Cmd:   models.Command{UserID: 1, Game: "roulette", Stake: math.MaxInt64/35 + 1, Target: "7"},
			Limit: math.MaxInt64 / 35,
		},
		{
			Name:  "Error. Blackjack stake above natural payout limit #2",
			Cmd:   models.Command{UserID: 1, Game: "blackjack", Stake: math.MaxInt64},
			Limit: payout.NaturalStakeLimit(config.DefaultGamesConfig().NaturalMultiplier),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			te := newTestEngine(t, testRules(), payout.NewSeededRandom(1))

			_, err := te.engine.Play(withTimeout(t), tc.Cmd)
			if !errors.Is(err, ledger.ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
			if !strings.Contains(err.Error(), strconv.FormatInt(tc.Limit, 10)) {
				t.Errorf("error must name the limit %d: %v", tc.Limit, err)
			}
			if te.guard.Active(1) {
				t.Error("guard must be released after a refused stake")
			}
		})
	}
}

func TestEngine_SlotsWinNotCredited(t *testing.T) {
	te := newTestEngine(t, testRules(), &fakeRandom{floats: []float64{0.05, 0.02}, ints: []int{0, 4, 8}})
	storeErr := &ledger.StoreError{Op: "AdjustCredits", Attempts: 5, Err: errors.New("disk full")}
	gomock.InOrder(
		te.accounts.EXPECT().Transfer(gomock.Any(), int64(1), int64(0), int64(-2)).Return(&models.Account{UserID: 1, Credits: 8}, nil),
		te.accounts.EXPECT().AdjustCredits(gomock.Any(), int64(1), int64(160)).Return(nil, storeErr),
	)

	_, err := te.engine.Play(withTimeout(t), models.Command{UserID: 1, Game: "slots", Stake: 2})
	if !errors.Is(err, ledger.ErrStore) {
		t.Fatalf("expected ErrStore, got %v", err)
	}
	if !strings.Contains(err.Error(), "stake of 2 credits charged, win of 160 not credited") {
		t.Errorf("error must report the charged stake: %v", err)
	}
	if te.guard.Active(1) {
		t.Error("guard must be released after a failed settlement")
	}
}

// testRules - правила по умолчанию без предложения повтора
func testRules() config.GamesConfig {
	rules := config.DefaultGamesConfig()
	rules.ReplayTimeout = 0
	return rules
}
