package entities

import "time"

// CooldownStatus is the outcome of a check-and-consume call. When Ready
// is true the stamp has already been advanced in the same operation.
type CooldownStatus struct {
	Ready      bool
	RetryAfter time.Duration
}

// Balances is a read-only snapshot of every balance field for one user
// in one guild.
type Balances struct {
	Cash     int64
	Bank     int64
	Dirty    int64
	Diamonds int64
	Energy   int
}

// WorkResult reports the outcome of a completed shift.
type WorkResult struct {
	JobName    string
	Salary     int64
	NewCash    int64
	EnergyLeft int
}

// CrimeOutcome classifies what the weighted crime roll produced.
type CrimeOutcome string

const (
	CrimeOutcomeScore    CrimeOutcome = "score"
	CrimeOutcomeNothing  CrimeOutcome = "nothing"
	CrimeOutcomeFined    CrimeOutcome = "fined"
	CrimeOutcomeArrested CrimeOutcome = "arrested"
)

// CrimeResult reports the outcome of a crime attempt.
type CrimeResult struct {
	Outcome       CrimeOutcome
	Amount        int64
	ArrestedUntil *time.Time
}

// RobResult reports the outcome of a robbery attempt.
type RobResult struct {
	Success bool
	Amount  int64
}

// GameResult reports the outcome of a simple game of chance.
type GameResult struct {
	Won        bool
	Push       bool
	Bet        int64
	Payout     int64 // net change applied to the player's cash
	NewBalance int64
	Detail     string // game-specific description of what happened
}

// HarvestResult reports what a full-farm harvest yielded.
type HarvestResult struct {
	Harvested int            // plots cleared
	Yields    map[int64]int64 // yield item ID -> amount added
}
