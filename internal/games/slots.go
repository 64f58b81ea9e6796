package games

import (
	"context"
	"fmt"

	"github.com/NiteMackfly/Discord-Casino-Bot/internal/config"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/ledger"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/models"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/payout"
)

// Slots - автомат на кредитах: ставка списывается до вращения, выигрыш зачисляется после
type Slots struct {
	accounts ledger.Accounts
	rules    config.GamesConfig
	rnd      payout.Random
	userID   int64
	stake    int64

	spin       payout.ReelSpin
	spun       bool
	balance    int64
	settlement *Settlement
}

func NewSlots(accounts ledger.Accounts, rules config.GamesConfig, rnd payout.Random, cmd models.Command) *Slots {
	return &Slots{
		accounts: accounts,
		rules:    rules,
		rnd:      rnd,
		userID:   cmd.UserID,
		stake:    cmd.Stake,
	}
}

func (g *Slots) Name() string {
	return GameSlots
}

func (g *Slots) Replayable() bool {
	return true
}

func (g *Slots) reelConfig() payout.ReelConfig {
	return payout.ReelConfig{
		Items:           g.rules.ReelItems,
		ForcedWinChance: g.rules.ForcedWinChance,
		Weights:         g.rules.ForcedWinWeights,
		Multipliers:     g.rules.SlotMultipliers,
	}
}

func (g *Slots) Start(ctx context.Context) error {
	if g.stake < g.rules.SlotsMinBet || g.stake > g.rules.SlotsMaxBet {
		return ledger.InvalidArgument("bet between %d and %d credits, got %d", g.rules.SlotsMinBet, g.rules.SlotsMaxBet, g.stake)
	}
	// ставка списывается при любом исходе
	acc, err := g.accounts.Transfer(ctx, g.userID, 0, -g.stake)
	if err != nil {
		return err
	}
	g.balance = acc.Credits

	g.spin = payout.SpinReels(g.rnd, g.reelConfig())
	g.spun = true
	return nil
}

func (g *Slots) HandleInput(ctx context.Context, action Action) error {
	return ledger.InvalidArgument("no move expected")
}

func (g *Slots) IsTerminal() bool {
	return g.spun
}

func (g *Slots) winnings() int64 {
	return payout.ReelPayout(g.spin, g.stake, g.rules.SlotMultipliers)
}

func (g *Slots) Settle(ctx context.Context) (*Settlement, error) {
	if !g.spun {
		return nil, fmt.Errorf("slots: settle before the reels stop")
	}
	if g.settlement != nil {
		return g.settlement, nil
	}
	win := g.winnings()
	s := &Settlement{Delta: win - g.stake, Currency: CurrencyCredits}
	if win > 0 {
		acc, err := g.accounts.AdjustCredits(ctx, g.userID, win)
		if err != nil {
			return nil, fmt.Errorf("slots: stake of %d credits charged, win of %d not credited: %w", g.stake, win, err)
		}
		s.Account = acc
		g.balance = acc.Credits
	}
	g.settlement = s
	return s, nil
}

func (g *Slots) Actions() []Action {
	return nil
}

func (g *Slots) Frame() models.Result {
	res := models.Result{
		Game:  GameSlots,
		Title: "Slots",
		Color: models.ColorBlue,
	}
	if !g.spun {
		res.Description = "Reels are spinning..."
		return res
	}
	res.Payload = models.ReelsPayload{Stops: g.spin.Stops, Classes: g.spin.Classes, Balance: g.balance}
	res.Final = g.settlement != nil

	win := g.winnings()
	res.Outcome = win - g.stake
	if win > 0 {
		res.Description = fmt.Sprintf("Three of a kind! You win %d credits. Credits left: %d.", win, g.balance)
		res.Color = models.ColorGold
		return res
	}
	res.Description = fmt.Sprintf("No luck this time, %d credits spent. Credits left: %d.", g.stake, g.balance)
	res.Color = models.ColorRed
	return res
}
