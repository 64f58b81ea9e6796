package games

import (
	"context"
	"errors"
	"testing"

	"github.com/NiteMackfly/Discord-Casino-Bot/internal/ledger"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/ledger/mocks"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/models"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/payout"
	"go.uber.org/mock/gomock"
)

func TestResolveGame(t *testing.T) {
	testCases := []struct {
		Input         string
		Expected      string
		ExpectedError error
	}{
		{Input: "blackjack", Expected: GameBlackjack},
		{Input: " BJ ", Expected: GameBlackjack},
		{Input: "Roulette", Expected: GameRoulette},
		{Input: "slot", Expected: GameSlots},
		{Input: "dice", ExpectedError: ledger.ErrInvalidArgument},
	}
	for _, tc := range testCases {
		t.Run(tc.Input, func(t *testing.T) {
			got, err := ResolveGame(tc.Input)
			if !errors.Is(err, tc.ExpectedError) {
				t.Fatalf("expected %v, got %v", tc.ExpectedError, err)
			}
			if got != tc.Expected {
				t.Errorf("expected %q, got %q", tc.Expected, got)
			}
		})
	}
}

func TestBlackjack_SettleOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mocks.NewMockAccounts(ctrl)
	accounts.EXPECT().GetAccount(gomock.Any(), int64(1)).Return(&models.Account{UserID: 1, Money: 100}, nil)
	accounts.EXPECT().AdjustMoney(gomock.Any(), int64(1), int64(15)).Return(&models.Account{UserID: 1, Money: 115}, nil).Times(1)

	deck := payout.StackedDeck(card("A"), card("9"), card("Q"), card("7"))
	game := NewBlackjack(accounts, testRules(), deck, models.Command{UserID: 1, Stake: 10})
	ctx := context.Background()

	if _, err := game.Settle(ctx); err == nil {
		t.Fatal("settle before the deal must fail")
	}
	if err := game.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if !game.IsTerminal() {
		t.Fatal("natural must end the round on the deal")
	}
	if err := game.HandleInput(ctx, ActionHit); !errors.Is(err, ledger.ErrInvalidArgument) {
		t.Errorf("expected no move after settlement, got %v", err)
	}
	first, err := game.Settle(ctx)
	if err != nil {
		t.Fatal(err)
	}
	second, err := game.Settle(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if first != second || first.Delta != 15 {
		t.Errorf("settlement must be written once: %+v %+v", first, second)
	}
}

func TestBlackjack_DeckExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mocks.NewMockAccounts(ctrl)
	accounts.EXPECT().GetAccount(gomock.Any(), int64(1)).Return(&models.Account{UserID: 1, Money: 100}, nil)

	game := NewBlackjack(accounts, testRules(), payout.StackedDeck(card("2"), card("3")), models.Command{UserID: 1, Stake: 10})
	if err := game.Start(context.Background()); !errors.Is(err, payout.ErrDeckEmpty) {
		t.Errorf("expected ErrDeckEmpty, got %v", err)
	}
}

func TestRoulette_StraightHitFrame(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mocks.NewMockAccounts(ctrl)
	accounts.EXPECT().GetAccount(gomock.Any(), int64(1)).Return(&models.Account{UserID: 1, Money: 100}, nil)
	accounts.EXPECT().AdjustMoney(gomock.Any(), int64(1), int64(70)).Return(&models.Account{UserID: 1, Money: 170}, nil)

	// индекс 6 - ячейка 2
	game := NewRoulette(accounts, testRules(), &fakeRandom{ints: []int{6}}, models.Command{UserID: 1, Stake: 2, Target: "2"})
	ctx := context.Background()
	if err := game.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := game.Settle(ctx); err != nil {
		t.Fatal(err)
	}
	frame := game.Frame()
	if frame.Outcome != 70 || frame.Color != models.ColorGold || !frame.Final {
		t.Errorf("unexpected frame %+v", frame)
	}
}
