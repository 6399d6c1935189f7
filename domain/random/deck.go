package random

import "fmt"

// Suit of a playing card.
type Suit string

const (
	SuitSpades   Suit = "♠"
	SuitHearts   Suit = "♥"
	SuitDiamonds Suit = "♦"
	SuitClubs    Suit = "♣"
)

// Card is one playing card. Rank 1 is the ace, 11-13 are face cards.
type Card struct {
	Suit Suit
	Rank int
}

func (c Card) String() string {
	names := map[int]string{1: "A", 11: "J", 12: "Q", 13: "K"}
	if n, ok := names[c.Rank]; ok {
		return fmt.Sprintf("%s%s", n, c.Suit)
	}
	return fmt.Sprintf("%d%s", c.Rank, c.Suit)
}

// Deck is a drawable stack of cards.
type Deck struct {
	cards []Card
}

// NewShuffledDeck builds a standard 52-card deck shuffled with the
// given picker.
func NewShuffledDeck(p *Picker) *Deck {
	cards := make([]Card, 0, 52)
	for _, s := range []Suit{SuitSpades, SuitHearts, SuitDiamonds, SuitClubs} {
		for r := 1; r <= 13; r++ {
			cards = append(cards, Card{Suit: s, Rank: r})
		}
	}
	Shuffle(p, cards)
	return &Deck{cards: cards}
}

// NewDeck builds a deck with exactly the given cards. The last card is
// the top of the deck.
func NewDeck(cards ...Card) *Deck {
	return &Deck{cards: cards}
}

// Draw removes and returns the top card. ok is false when the deck is
// exhausted.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c, true
}

// Remaining reports how many cards are left.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
