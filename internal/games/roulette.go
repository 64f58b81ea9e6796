package games

import (
	"context"
	"fmt"

	"github.com/NiteMackfly/Discord-Casino-Bot/internal/config"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/ledger"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/models"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/payout"
)

// Roulette - ставка на число или категорию, одно вращение колеса
type Roulette struct {
	accounts ledger.Accounts
	rules    config.GamesConfig
	rnd      payout.Random
	userID   int64
	stake    int64
	rawBet   string

	target     payout.Target
	pocket     int
	spun       bool
	settlement *Settlement
}

func NewRoulette(accounts ledger.Accounts, rules config.GamesConfig, rnd payout.Random, cmd models.Command) *Roulette {
	return &Roulette{
		accounts: accounts,
		rules:    rules,
		rnd:      rnd,
		userID:   cmd.UserID,
		stake:    cmd.Stake,
		rawBet:   cmd.Target,
	}
}

func (g *Roulette) Name() string {
	return GameRoulette
}

func (g *Roulette) Replayable() bool {
	return true
}

func (g *Roulette) Start(ctx context.Context) error {
	if err := checkStake(g.stake, g.rules.MinStake); err != nil {
		return err
	}
	target, err := payout.ParseTarget(g.rawBet)
	if err != nil {
		return ledger.InvalidArgument("bet on a number 0-36 or red, black, even, odd, low, high; got %q", g.rawBet)
	}
	g.target = target
	limit := payout.StakeLimit(g.rules.CategoryMultiplier)
	if target.IsNumber() {
		limit = payout.StakeLimit(g.rules.ExactMultiplier)
	}
	if err := checkStakeLimit(g.stake, limit); err != nil {
		return err
	}

	acc, err := g.accounts.GetAccount(ctx, g.userID)
	if err != nil {
		return err
	}
	if acc.Money < g.stake {
		return &ledger.InsufficientFundsError{Current: acc.Money, Requested: g.stake}
	}

	g.pocket, _ = payout.SpinWheel(g.rnd)
	g.spun = true
	return nil
}

func (g *Roulette) HandleInput(ctx context.Context, action Action) error {
	return ledger.InvalidArgument("no move expected")
}

func (g *Roulette) IsTerminal() bool {
	return g.spun
}

func (g *Roulette) delta() int64 {
	return payout.WheelDelta(g.target, g.pocket, g.stake, payout.WheelMultipliers{
		Exact:    g.rules.ExactMultiplier,
		Category: g.rules.CategoryMultiplier,
	})
}

func (g *Roulette) Settle(ctx context.Context) (*Settlement, error) {
	if !g.spun {
		return nil, fmt.Errorf("roulette: settle before the wheel is spun")
	}
	if g.settlement != nil {
		return g.settlement, nil
	}
	s := &Settlement{Delta: g.delta(), Currency: CurrencyMoney}
	acc, err := g.accounts.AdjustMoney(ctx, g.userID, s.Delta)
	if err != nil {
		return nil, err
	}
	s.Account = acc
	g.settlement = s
	return s, nil
}

func (g *Roulette) Actions() []Action {
	return nil
}

func pocketColor(n int) string {
	switch {
	case n == 0:
		return "green"
	case payout.IsRed(n):
		return "red"
	}
	return "black"
}

func (g *Roulette) Frame() models.Result {
	res := models.Result{
		Game:  GameRoulette,
		Title: "Roulette",
		Color: models.ColorBlue,
	}
	if !g.spun {
		res.Description = "The wheel is spinning..."
		return res
	}
	payload := models.WheelPayload{Pocket: g.pocket, Target: g.target.String()}
	if g.settlement != nil && g.settlement.Account != nil {
		payload.Balance = g.settlement.Account.Money
	}
	res.Payload = payload
	res.Outcome = g.delta()
	res.Final = g.settlement != nil

	landed := fmt.Sprintf("The ball landed on %d %s.", g.pocket, pocketColor(g.pocket))
	switch {
	case res.Outcome > 0 && g.target.IsNumber():
		res.Description = fmt.Sprintf("%s Straight hit! You win %d.", landed, res.Outcome)
		res.Color = models.ColorGold
	case res.Outcome > 0:
		res.Description = fmt.Sprintf("%s You win %d.", landed, res.Outcome)
		res.Color = models.ColorGreen
	default:
		res.Description = fmt.Sprintf("%s You lose %d.", landed, g.stake)
		res.Color = models.ColorRed
	}
	return res
}
