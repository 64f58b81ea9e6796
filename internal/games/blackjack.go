package games

import (
	"context"
	"fmt"

	"github.com/NiteMackfly/Discord-Casino-Bot/internal/config"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/ledger"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/models"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/payout"
)

type blackjackState int

const (
	stateDealing blackjackState = iota
	statePlayerTurn
	stateDealerTurn
	stateSettled
)

type blackjackOutcome int

const (
	outcomeNone blackjackOutcome = iota
	outcomeNatural
	outcomeBust
	outcomeDealer21
	outcomeDealerBust
	outcomePush
	outcomeWin
	outcomeLose
)

// Blackjack - карточная игра против дилера
type Blackjack struct {
	accounts ledger.Accounts
	rules    config.GamesConfig
	deck     *payout.Deck
	userID   int64
	stake    int64

	player  []payout.Card
	dealer  []payout.Card
	state   blackjackState
	outcome blackjackOutcome

	settlement *Settlement
}

func NewBlackjack(accounts ledger.Accounts, rules config.GamesConfig, deck *payout.Deck, cmd models.Command) *Blackjack {
	return &Blackjack{
		accounts: accounts,
		rules:    rules,
		deck:     deck,
		userID:   cmd.UserID,
		stake:    cmd.Stake,
		state:    stateDealing,
	}
}

func (g *Blackjack) Name() string {
	return GameBlackjack
}

func (g *Blackjack) Replayable() bool {
	return false
}

func (g *Blackjack) Start(ctx context.Context) error {
	if err := checkStake(g.stake, g.rules.MinStake); err != nil {
		return err
	}
	if err := checkStakeLimit(g.stake, payout.NaturalStakeLimit(g.rules.NaturalMultiplier)); err != nil {
		return err
	}
	acc, err := g.accounts.GetAccount(ctx, g.userID)
	if err != nil {
		return err
	}
	if acc.Money < g.stake {
		return &ledger.InsufficientFundsError{Current: acc.Money, Requested: g.stake}
	}

	// игрок, дилер (открыта), игрок, дилер (закрыта)
	for i := 0; i < 4; i++ {
		c, err := g.deck.Draw()
		if err != nil {
			return err
		}
		if i%2 == 0 {
			g.player = append(g.player, c)
			continue
		}
		c.FaceUp = i == 1
		g.dealer = append(g.dealer, c)
	}
	g.state = statePlayerTurn
	g.checkPlayer()
	return nil
}

// checkPlayer - 21 выигрывает сразу, перебор проигрывает
func (g *Blackjack) checkPlayer() {
	switch v := payout.HandValue(g.player); {
	case v == 21:
		g.outcome = outcomeNatural
		g.state = stateSettled
	case v > 21:
		g.outcome = outcomeBust
		g.state = stateSettled
	}
}

func (g *Blackjack) HandleInput(ctx context.Context, action Action) error {
	if g.state != statePlayerTurn {
		return ledger.InvalidArgument("no move expected")
	}
	switch action {
	case ActionHit:
		c, err := g.deck.Draw()
		if err != nil {
			return err
		}
		g.player = append(g.player, c)
		g.checkPlayer()
	case ActionStand:
		g.state = stateDealerTurn
		return g.dealerTurn()
	default:
		return ledger.InvalidArgument("unknown move %q", action)
	}
	return nil
}

func (g *Blackjack) dealerTurn() error {
	for i := range g.dealer {
		g.dealer[i].FaceUp = true
	}
	for payout.HandValue(g.dealer) < 17 {
		c, err := g.deck.Draw()
		if err != nil {
			return err
		}
		g.dealer = append(g.dealer, c)
	}

	player, dealer := payout.HandValue(g.player), payout.HandValue(g.dealer)
	switch {
	case dealer == 21:
		g.outcome = outcomeDealer21
	case dealer > 21:
		g.outcome = outcomeDealerBust
	case dealer == player:
		g.outcome = outcomePush
	case player > dealer:
		g.outcome = outcomeWin
	default:
		g.outcome = outcomeLose
	}
	g.state = stateSettled
	return nil
}

func (g *Blackjack) IsTerminal() bool {
	return g.state == stateSettled
}

// delta - знаковое изменение денег по итогу раунда
func (g *Blackjack) delta() int64 {
	switch g.outcome {
	case outcomeNatural:
		return payout.NaturalPayout(g.stake, g.rules.NaturalMultiplier)
	case outcomeDealerBust, outcomeWin:
		return g.stake
	case outcomeBust, outcomeDealer21, outcomeLose:
		return -g.stake
	}
	return 0
}

func (g *Blackjack) Settle(ctx context.Context) (*Settlement, error) {
	if !g.IsTerminal() {
		return nil, fmt.Errorf("blackjack: settle before the round ends")
	}
	if g.settlement != nil {
		return g.settlement, nil
	}
	s := &Settlement{Delta: g.delta(), Currency: CurrencyMoney}
	// ничья ничего не меняет в реестре
	if s.Delta != 0 {
		acc, err := g.accounts.AdjustMoney(ctx, g.userID, s.Delta)
		if err != nil {
			return nil, err
		}
		s.Account = acc
	}
	g.settlement = s
	return s, nil
}

func (g *Blackjack) Actions() []Action {
	if g.state == statePlayerTurn {
		return []Action{ActionHit, ActionStand}
	}
	return nil
}

func (g *Blackjack) Frame() models.Result {
	player, dealer := payout.HandValue(g.player), payout.HandValue(g.dealer)
	res := models.Result{
		Game:  GameBlackjack,
		Title: "Blackjack",
		Color: models.ColorBlue,
		Payload: models.TablePayload{
			Dealer:      payout.Views(g.dealer),
			Player:      payout.Views(g.player),
			DealerValue: dealer,
			PlayerValue: player,
		},
	}
	if !g.IsTerminal() {
		res.Description = fmt.Sprintf("Your hand is %d, dealer shows %d. Stake %d.", player, dealer, g.stake)
		return res
	}

	delta := g.delta()
	res.Outcome = delta
	res.Final = g.settlement != nil
	switch g.outcome {
	case outcomeNatural:
		res.Description = fmt.Sprintf("Blackjack! You win %d.", delta)
		res.Color = models.ColorGold
	case outcomeBust:
		res.Description = fmt.Sprintf("Bust with %d. You lose %d.", player, g.stake)
		res.Color = models.ColorRed
	case outcomeDealer21:
		res.Description = fmt.Sprintf("Dealer has 21. You lose %d.", g.stake)
		res.Color = models.ColorRed
	case outcomeDealerBust:
		res.Description = fmt.Sprintf("Dealer busts with %d. You win %d.", dealer, g.stake)
		res.Color = models.ColorGreen
	case outcomePush:
		res.Description = fmt.Sprintf("Push at %d. Stake returned.", player)
		res.Color = models.ColorDefault
	case outcomeWin:
		res.Description = fmt.Sprintf("%d beats %d. You win %d.", player, dealer, g.stake)
		res.Color = models.ColorGreen
	case outcomeLose:
		res.Description = fmt.Sprintf("%d loses to %d. You lose %d.", player, dealer, g.stake)
		res.Color = models.ColorRed
	}
	return res
}
