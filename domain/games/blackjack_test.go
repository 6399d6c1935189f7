package games

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tycoon/domain/random"
)

// zeroSource always picks index 0, which makes the shuffled deck draw
// in a known order: A♠, K♣, Q♣, J♣, 10♣, ...
type zeroSource struct{}

func (zeroSource) Intn(int) int     { return 0 }
func (zeroSource) Float64() float64 { return 0 }

func zeroDeck() *random.Deck {
	return random.NewShuffledDeck(random.NewPicker(zeroSource{}))
}

func TestHandValue(t *testing.T) {
	cases := []struct {
		name  string
		ranks []int
		want  int
	}{
		{"faces count ten", []int{13, 12}, 20},
		{"soft ace counts eleven", []int{1, 6}, 17},
		{"ace falls back to one on bust", []int{1, 6, 10}, 17},
		{"two aces use one soft", []int{1, 1}, 12},
		{"natural twenty-one", []int{1, 13}, 21},
		{"all aces go hard", []int{1, 1, 1, 10}, 13},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hand := make([]random.Card, len(tc.ranks))
			for i, r := range tc.ranks {
				hand[i] = random.Card{Suit: random.SuitSpades, Rank: r}
			}
			assert.Equal(t, tc.want, HandValue(hand))
		})
	}
}

func TestNewBlackjack_NaturalFinishesOnDeal(t *testing.T) {
	game := NewBlackjack(random.NewPicker(zeroSource{}), 100)

	assert.Equal(t, 21, HandValue(game.Player))
	assert.True(t, game.Finished())
	assert.Equal(t, BlackjackPlayerBlackjack, game.Outcome())
	assert.Equal(t, int64(250), game.Payout())
}

func TestBlackjack_HitUntilBust(t *testing.T) {
	game := &Blackjack{
		Bet:    100,
		Player: []random.Card{{Suit: random.SuitSpades, Rank: 10}, {Suit: random.SuitSpades, Rank: 6}},
		Dealer: []random.Card{{Suit: random.SuitHearts, Rank: 10}, {Suit: random.SuitHearts, Rank: 9}},
		deck:   zeroDeck(),
	}

	// First draw is the ace, which counts as one here.
	assert.NoError(t, game.Hit())
	assert.Equal(t, 17, HandValue(game.Player))
	assert.False(t, game.Finished())

	// The king busts the hand.
	assert.NoError(t, game.Hit())
	assert.True(t, game.Finished())
	assert.Equal(t, BlackjackDealerWin, game.Outcome())
	assert.Equal(t, int64(0), game.Payout())

	assert.Error(t, game.Hit())
}

func TestBlackjack_HitToTwentyOneDealerStillPlays(t *testing.T) {
	// Top of the deck first: the 7♦ completes the player's 21, then
	// the dealer draws the 5♦ off his 16 and pushes.
	game := &Blackjack{
		Bet:    100,
		Player: []random.Card{{Suit: random.SuitSpades, Rank: 7}, {Suit: random.SuitHearts, Rank: 7}},
		Dealer: []random.Card{{Suit: random.SuitClubs, Rank: 10}, {Suit: random.SuitClubs, Rank: 6}},
		deck:   random.NewDeck(random.Card{Suit: random.SuitDiamonds, Rank: 5}, random.Card{Suit: random.SuitDiamonds, Rank: 7}),
	}

	assert.NoError(t, game.Hit())
	assert.True(t, game.Finished())
	assert.Equal(t, 21, HandValue(game.Player))
	assert.Len(t, game.Dealer, 3)
	assert.Equal(t, 21, HandValue(game.Dealer))
	assert.Equal(t, BlackjackPush, game.Outcome())
	assert.Equal(t, int64(100), game.Payout())
}

func TestBlackjack_StandDealerDrawsToSeventeen(t *testing.T) {
	game := &Blackjack{
		Bet:    100,
		Player: []random.Card{{Suit: random.SuitSpades, Rank: 10}, {Suit: random.SuitSpades, Rank: 10}},
		Dealer: []random.Card{{Suit: random.SuitHearts, Rank: 10}, {Suit: random.SuitHearts, Rank: 6}},
		deck:   zeroDeck(),
	}

	game.Stand()

	assert.True(t, game.Finished())
	assert.Equal(t, 17, HandValue(game.Dealer))
	assert.Equal(t, BlackjackPlayerWin, game.Outcome())
	assert.Equal(t, int64(200), game.Payout())
}

func TestBlackjack_StandOnPush(t *testing.T) {
	game := &Blackjack{
		Bet:    100,
		Player: []random.Card{{Suit: random.SuitSpades, Rank: 10}, {Suit: random.SuitSpades, Rank: 8}},
		Dealer: []random.Card{{Suit: random.SuitHearts, Rank: 10}, {Suit: random.SuitHearts, Rank: 8}},
	}

	game.Stand()

	assert.Equal(t, BlackjackPush, game.Outcome())
	assert.Equal(t, int64(100), game.Payout())
}

func TestBlackjack_OutcomeInProgress(t *testing.T) {
	game := &Blackjack{
		Bet:    100,
		Player: []random.Card{{Suit: random.SuitSpades, Rank: 10}, {Suit: random.SuitSpades, Rank: 5}},
		Dealer: []random.Card{{Suit: random.SuitHearts, Rank: 10}, {Suit: random.SuitHearts, Rank: 8}},
	}

	assert.Equal(t, BlackjackInProgress, game.Outcome())
	assert.Equal(t, int64(0), game.Payout())
}
