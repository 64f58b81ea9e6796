package payout

import (
	"errors"
	"math"

	"github.com/NiteMackfly/Discord-Casino-Bot/internal/models"
	"github.com/shopspring/decimal"
)

// ErrDeckEmpty - в колоде не осталось карт, колода в пределах раунда не пополняется
var ErrDeckEmpty = errors.New("deck is empty")

var (
	Ranks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
	Suits = []string{"hearts", "diamonds", "clubs", "spades"}
)

// DeckSize - размер стандартной колоды
const DeckSize = 52

type Card struct {
	Rank   string
	Suit   string
	FaceUp bool
}

// View - карта для отрисовки, у закрытой карты скрыты ранг и масть
func (c Card) View() models.CardView {
	if !c.FaceUp {
		return models.CardView{FaceUp: false}
	}
	return models.CardView{Rank: c.Rank, Suit: c.Suit, FaceUp: true}
}

// Deck - колода, карты снимаются с конца
type Deck struct {
	cards []Card
}

// NewDeck - 52 карты в равномерно перемешанном порядке
func NewDeck(rnd Random) *Deck {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, Card{Rank: rank, Suit: suit, FaceUp: true})
		}
	}
	rnd.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	return &Deck{cards: cards}
}

// StackedDeck - колода с заданным порядком: первая карта в списке снимается первой
func StackedDeck(cards ...Card) *Deck {
	stacked := make([]Card, len(cards))
	for i, c := range cards {
		c.FaceUp = true
		stacked[len(cards)-1-i] = c
	}
	return &Deck{cards: stacked}
}

// Draw - снять верхнюю карту
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckEmpty
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c, nil
}

func (d *Deck) Len() int {
	return len(d.cards)
}

// HandValue - сумма очков руки.
//
// Сначала считаются все карты кроме тузов: J, Q, K по 10, числовые по номиналу.
// Затем тузы по очереди: 11, если текущая сумма не больше 10, иначе 1.
// Закрытые карты не учитываются.
func HandValue(hand []Card) int {
	total := 0
	aces := 0
	for _, c := range hand {
		if !c.FaceUp {
			continue
		}
		switch c.Rank {
		case "A":
			aces++
		case "J", "Q", "K":
			total += 10
		default:
			total += numeral(c.Rank)
		}
	}
	for i := 0; i < aces; i++ {
		if total <= 10 {
			total += 11
		} else {
			total++
		}
	}
	return total
}

func numeral(rank string) int {
	n := 0
	for _, r := range rank {
		n = n*10 + int(r-'0')
	}
	return n
}

// Views - рука для отрисовки
func Views(hand []Card) []models.CardView {
	views := make([]models.CardView, 0, len(hand))
	for _, c := range hand {
		views = append(views, c.View())
	}
	return views
}

// NaturalPayout - выигрыш за 21 на руке игрока: stake * multiplier с отбрасыванием дробной части.
// Результат за пределами int64 насыщается.
func NaturalPayout(stake int64, multiplier decimal.Decimal) int64 {
	win := decimal.NewFromInt(stake).Mul(multiplier).Truncate(0)
	if win.GreaterThan(maxInt64) {
		return math.MaxInt64
	}
	if win.LessThan(decimal.NewFromInt(math.MinInt64)) {
		return math.MinInt64
	}
	return win.IntPart()
}
