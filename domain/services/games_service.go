package services

import (
	"context"
	"fmt"

	"tycoon/config"
	"tycoon/domain/entities"
	"tycoon/domain/games"
	"tycoon/domain/interfaces"
	"tycoon/domain/random"
)

type gamesService struct {
	ledger interfaces.LedgerService
	picker *random.Picker
	cfg    *config.Config
}

// NewGamesService creates a new games service on top of the ledger.
func NewGamesService(ledger interfaces.LedgerService, picker *random.Picker, cfg *config.Config) interfaces.GamesService {
	return &gamesService{
		ledger: ledger,
		picker: picker,
		cfg:    cfg,
	}
}

func (s *gamesService) Coinflip(ctx context.Context, discordID, bet int64, pick entities.CoinSide) (*entities.GameResult, error) {
	if err := validateBet(bet); err != nil {
		return nil, err
	}
	if !pick.Valid() {
		return nil, fmt.Errorf("unknown coin side %q", pick)
	}

	// The bet is debited before the flip so the outcome can never be
	// credited against funds the player no longer has.
	if _, err := s.ledger.AdjustAudited(ctx, discordID, entities.BalanceCash, -bet, entities.TransactionTypeWager, map[string]any{"game": "coinflip", "pick": string(pick)}); err != nil {
		return nil, err
	}

	landed := entities.CoinHeads
	if s.picker.Chance(0.5) {
		landed = entities.CoinTails
	}

	result := &entities.GameResult{
		Bet:    bet,
		Detail: fmt.Sprintf("the coin landed on %s", landed),
	}
	if landed == pick {
		result.Won = true
		result.Payout = bet
		newBalance, err := s.ledger.AdjustAudited(ctx, discordID, entities.BalanceCash, bet*2, entities.TransactionTypeCoinflipWin, map[string]any{"pick": string(pick)})
		if err != nil {
			return nil, fmt.Errorf("failed to credit coinflip payout: %w", err)
		}
		result.NewBalance = newBalance
		return result, nil
	}

	result.Payout = -bet
	balances, err := s.ledger.Balances(ctx, discordID, "")
	if err != nil {
		return nil, err
	}
	result.NewBalance = balances.Cash
	return result, nil
}

func (s *gamesService) RPS(ctx context.Context, discordID, bet int64, move entities.RPSMove) (*entities.GameResult, error) {
	if err := validateBet(bet); err != nil {
		return nil, err
	}
	if !move.Valid() {
		return nil, fmt.Errorf("unknown move %q", move)
	}

	if _, err := s.ledger.AdjustAudited(ctx, discordID, entities.BalanceCash, -bet, entities.TransactionTypeWager, map[string]any{"game": "rps", "move": string(move)}); err != nil {
		return nil, err
	}

	house, _ := random.UniformPick(s.picker, []entities.RPSMove{entities.RPSRock, entities.RPSPaper, entities.RPSScissors})

	result := &entities.GameResult{
		Bet:    bet,
		Detail: fmt.Sprintf("%s vs %s", move, house),
	}
	switch {
	case move.Beats(house):
		result.Won = true
		result.Payout = bet
		newBalance, err := s.ledger.AdjustAudited(ctx, discordID, entities.BalanceCash, bet*2, entities.TransactionTypeRPSWin, map[string]any{"move": string(move), "house": string(house)})
		if err != nil {
			return nil, fmt.Errorf("failed to credit rps payout: %w", err)
		}
		result.NewBalance = newBalance
	case house.Beats(move):
		result.Payout = -bet
		balances, err := s.ledger.Balances(ctx, discordID, "")
		if err != nil {
			return nil, err
		}
		result.NewBalance = balances.Cash
	default:
		// Push returns the stake.
		result.Push = true
		newBalance, err := s.ledger.Adjust(ctx, discordID, entities.BalanceCash, bet)
		if err != nil {
			return nil, fmt.Errorf("failed to return rps stake: %w", err)
		}
		result.NewBalance = newBalance
	}
	return result, nil
}

func (s *gamesService) StartBlackjack(ctx context.Context, discordID, bet int64) (*games.Blackjack, error) {
	if err := validateBet(bet); err != nil {
		return nil, err
	}
	if _, err := s.ledger.AdjustAudited(ctx, discordID, entities.BalanceCash, -bet, entities.TransactionTypeWager, map[string]any{"game": "blackjack", "bet": bet}); err != nil {
		return nil, err
	}
	return games.NewBlackjack(s.picker, bet), nil
}

func (s *gamesService) SettleBlackjack(ctx context.Context, discordID int64, game *games.Blackjack) (*entities.GameResult, error) {
	if game == nil || !game.Finished() {
		return nil, fmt.Errorf("hand is not finished: %w", entities.ErrInvalidState)
	}

	outcome := game.Outcome()
	payout := game.Payout()

	result := &entities.GameResult{
		Bet: game.Bet,
		Detail: fmt.Sprintf("you %d (%s), dealer %d (%s)",
			games.HandValue(game.Player), games.DescribeHand(game.Player),
			games.HandValue(game.Dealer), games.DescribeHand(game.Dealer)),
	}

	switch outcome {
	case games.BlackjackPlayerWin, games.BlackjackPlayerBlackjack:
		result.Won = true
		result.Payout = payout - game.Bet
		newBalance, err := s.ledger.AdjustAudited(ctx, discordID, entities.BalanceCash, payout, entities.TransactionTypeBlackjackWin, map[string]any{"bet": game.Bet, "blackjack": outcome == games.BlackjackPlayerBlackjack})
		if err != nil {
			return nil, fmt.Errorf("failed to credit blackjack payout: %w", err)
		}
		result.NewBalance = newBalance
	case games.BlackjackPush:
		result.Push = true
		newBalance, err := s.ledger.Adjust(ctx, discordID, entities.BalanceCash, payout)
		if err != nil {
			return nil, fmt.Errorf("failed to return blackjack stake: %w", err)
		}
		result.NewBalance = newBalance
	default:
		result.Payout = -game.Bet
		balances, err := s.ledger.Balances(ctx, discordID, "")
		if err != nil {
			return nil, err
		}
		result.NewBalance = balances.Cash
	}
	return result, nil
}

func validateBet(bet int64) error {
	if bet <= 0 {
		return fmt.Errorf("bet must be positive")
	}
	return nil
}
