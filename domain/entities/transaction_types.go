package entities

// TransactionType classifies an audit ledger entry.
type TransactionType string

const (
	// Gambling. The stake is debited as a neutral wager before the
	// outcome is known; only wins append a second entry.
	TransactionTypeWager        TransactionType = "wager"
	TransactionTypeBlackjackWin TransactionType = "blackjack_win"
	TransactionTypeCoinflipWin  TransactionType = "coinflip_win"
	TransactionTypeRPSWin       TransactionType = "rps_win"

	// Crime
	TransactionTypeCrimeGain TransactionType = "crime_gain"
	TransactionTypeCrimeFine TransactionType = "crime_fine"
	TransactionTypeRobGain   TransactionType = "rob_gain"
	TransactionTypeRobLoss   TransactionType = "rob_loss"
	TransactionTypeLaunder   TransactionType = "launder"

	// Transfers and shop
	TransactionTypeTransferIn  TransactionType = "transfer_in"
	TransactionTypeTransferOut TransactionType = "transfer_out"
	TransactionTypePurchase    TransactionType = "purchase"

	// System
	TransactionTypeSalary  TransactionType = "salary"
	TransactionTypeDaily   TransactionType = "daily"
	TransactionTypeBankFee TransactionType = "bank_fee"
)

// TransactionStatus records the outcome of the audited action.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusRejected  TransactionStatus = "rejected"
)

// IsGamblingRelated reports whether the type came from a game of chance.
func (tt TransactionType) IsGamblingRelated() bool {
	switch tt {
	case TransactionTypeWager, TransactionTypeBlackjackWin,
		TransactionTypeCoinflipWin, TransactionTypeRPSWin:
		return true
	}
	return false
}

// IsCrimeRelated reports whether the type came from a crime action.
func (tt TransactionType) IsCrimeRelated() bool {
	switch tt {
	case TransactionTypeCrimeGain, TransactionTypeCrimeFine,
		TransactionTypeRobGain, TransactionTypeRobLoss, TransactionTypeLaunder:
		return true
	}
	return false
}

func (tt TransactionType) String() string { return string(tt) }
