package games

import (
	"fmt"
	"strings"

	"tycoon/domain/random"
)

// BlackjackOutcome is the settled result of one hand.
type BlackjackOutcome int

const (
	BlackjackInProgress BlackjackOutcome = iota
	BlackjackPlayerWin
	BlackjackPlayerBlackjack
	BlackjackDealerWin
	BlackjackPush
)

// Blackjack is the in-memory state of one hand. It is owned
// exclusively by the command flow that created it (one player, one
// message) and holds no persistent state; the bet is debited before the
// first deal and the payout credited at settlement.
type Blackjack struct {
	Bet    int64
	Player []random.Card
	Dealer []random.Card

	deck     *random.Deck
	finished bool
}

// NewBlackjack shuffles a fresh deck and deals two cards each.
func NewBlackjack(picker *random.Picker, bet int64) *Blackjack {
	g := &Blackjack{Bet: bet, deck: random.NewShuffledDeck(picker)}
	g.Player = append(g.Player, g.mustDraw(), g.mustDraw())
	g.Dealer = append(g.Dealer, g.mustDraw(), g.mustDraw())
	if HandValue(g.Player) == 21 {
		g.finished = true
	}
	return g
}

// HandValue computes the best blackjack value of a hand: aces count 11
// unless that busts, in which case they fall back to 1.
func HandValue(cards []random.Card) int {
	value := 0
	aces := 0
	for _, c := range cards {
		switch {
		case c.Rank == 1:
			aces++
			value += 11
		case c.Rank > 10:
			value += 10
		default:
			value += c.Rank
		}
	}
	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}
	return value
}

// Hit draws one card for the player. A bust or 21 finishes the hand;
// on exactly 21 the dealer still plays out to 17.
func (g *Blackjack) Hit() error {
	if g.finished {
		return fmt.Errorf("hand is already finished")
	}
	g.Player = append(g.Player, g.mustDraw())
	switch value := HandValue(g.Player); {
	case value > 21:
		g.finished = true
	case value == 21:
		g.Stand()
	}
	return nil
}

// Stand ends the player's turn; the dealer draws to 17.
func (g *Blackjack) Stand() {
	if g.finished && HandValue(g.Player) > 21 {
		return
	}
	g.finished = true
	for HandValue(g.Dealer) < 17 {
		g.Dealer = append(g.Dealer, g.mustDraw())
	}
}

// Finished reports whether the hand can be settled.
func (g *Blackjack) Finished() bool {
	return g.finished
}

// Outcome settles the hand. A natural two-card 21 pays 3:2.
func (g *Blackjack) Outcome() BlackjackOutcome {
	if !g.finished {
		return BlackjackInProgress
	}

	player := HandValue(g.Player)
	if player > 21 {
		return BlackjackDealerWin
	}
	if player == 21 && len(g.Player) == 2 {
		return BlackjackPlayerBlackjack
	}

	dealer := HandValue(g.Dealer)
	switch {
	case dealer > 21 || player > dealer:
		return BlackjackPlayerWin
	case dealer > player:
		return BlackjackDealerWin
	default:
		return BlackjackPush
	}
}

// Payout returns the gross amount returned to the player (bet included)
// for the current outcome.
func (g *Blackjack) Payout() int64 {
	switch g.Outcome() {
	case BlackjackPlayerBlackjack:
		return g.Bet + g.Bet*3/2
	case BlackjackPlayerWin:
		return g.Bet * 2
	case BlackjackPush:
		return g.Bet
	default:
		return 0
	}
}

// DescribeHand renders cards as a compact one-line string.
func DescribeHand(cards []random.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func (g *Blackjack) mustDraw() random.Card {
	c, ok := g.deck.Draw()
	if !ok {
		// A single hand cannot exhaust 52 cards; re-shuffling mid-hand
		// would change odds silently, so treat this as a programming
		// error.
		panic("blackjack: deck exhausted")
	}
	return c
}
