package entities

// RPSMove is one throw in rock-paper-scissors.
type RPSMove string

const (
	RPSRock     RPSMove = "rock"
	RPSPaper    RPSMove = "paper"
	RPSScissors RPSMove = "scissors"
)

// Valid reports whether the move is one of the three throws.
func (m RPSMove) Valid() bool {
	switch m {
	case RPSRock, RPSPaper, RPSScissors:
		return true
	}
	return false
}

// Beats reports whether the move wins against other.
func (m RPSMove) Beats(other RPSMove) bool {
	switch m {
	case RPSRock:
		return other == RPSScissors
	case RPSPaper:
		return other == RPSRock
	case RPSScissors:
		return other == RPSPaper
	}
	return false
}

// CoinSide is one face of a flipped coin.
type CoinSide string

const (
	CoinHeads CoinSide = "heads"
	CoinTails CoinSide = "tails"
)

// Valid reports whether the side is heads or tails.
func (c CoinSide) Valid() bool {
	return c == CoinHeads || c == CoinTails
}
