package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeGrowth(t *testing.T) {
	planted := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		minutes int
		current int
		elapsed time.Duration
		want    int
	}{
		{"just planted", 60, 0, 0, 0},
		{"halfway", 60, 0, 30 * time.Minute, 50},
		{"fully grown", 60, 0, 60 * time.Minute, 100},
		{"clamped past full", 60, 0, 5 * time.Hour, 100},
		{"never decreases", 60, 80, 10 * time.Minute, 80},
		{"clock skew clamps to zero", 60, 0, -time.Hour, 0},
		{"instant growth item", 0, 0, 0, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeGrowth(planted, tc.minutes, tc.current, planted.Add(tc.elapsed))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFarmPlot_IsRipe(t *testing.T) {
	assert.False(t, (&FarmPlot{GrowthRate: 99}).IsRipe())
	assert.True(t, (&FarmPlot{GrowthRate: 100}).IsRipe())
}

func TestRPSMove_Beats(t *testing.T) {
	assert.True(t, RPSRock.Beats(RPSScissors))
	assert.True(t, RPSPaper.Beats(RPSRock))
	assert.True(t, RPSScissors.Beats(RPSPaper))

	assert.False(t, RPSRock.Beats(RPSRock))
	assert.False(t, RPSRock.Beats(RPSPaper))
	assert.False(t, RPSMove("lizard").Beats(RPSRock))
}

func TestRPSMove_Valid(t *testing.T) {
	assert.True(t, RPSRock.Valid())
	assert.True(t, RPSPaper.Valid())
	assert.True(t, RPSScissors.Valid())
	assert.False(t, RPSMove("lizard").Valid())
	assert.False(t, RPSMove("").Valid())
}

func TestCoinSide_Valid(t *testing.T) {
	assert.True(t, CoinHeads.Valid())
	assert.True(t, CoinTails.Valid())
	assert.False(t, CoinSide("edge").Valid())
}

func TestUser_IsArrested(t *testing.T) {
	now := time.Now().UTC()

	free := &User{}
	assert.False(t, free.IsArrested(now))
	assert.Equal(t, time.Duration(0), free.ArrestRemaining(now))

	until := now.Add(20 * time.Minute)
	jailed := &User{ArrestedUntil: &until}
	assert.True(t, jailed.IsArrested(now))
	assert.Equal(t, 20*time.Minute, jailed.ArrestRemaining(now))

	expired := now.Add(-time.Minute)
	released := &User{ArrestedUntil: &expired}
	assert.False(t, released.IsArrested(now))
}

func TestGuildProfile_Balance(t *testing.T) {
	p := &GuildProfile{Cash: 100, Bank: 200, Dirty: 50}

	cash, err := p.Balance(BalanceCash)
	assert.NoError(t, err)
	assert.Equal(t, int64(100), cash)

	bank, err := p.Balance(BalanceBank)
	assert.NoError(t, err)
	assert.Equal(t, int64(200), bank)

	dirty, err := p.Balance(BalanceDirty)
	assert.NoError(t, err)
	assert.Equal(t, int64(50), dirty)

	_, err = p.Balance(BalanceDiamonds)
	assert.Error(t, err, "diamonds are account-global, not profile state")
}

func TestGuildProfile_EmployeeSlots(t *testing.T) {
	p := &GuildProfile{}
	assert.True(t, p.HasFreeEmployeeSlot())
	assert.False(t, p.Employs(42))

	for i := 0; i < EmployeeSlots; i++ {
		p.Employees = append(p.Employees, Employee{DiscordID: int64(i + 1)})
	}
	assert.False(t, p.HasFreeEmployeeSlot())
	assert.True(t, p.Employs(1))
}

func TestItem_Predicates(t *testing.T) {
	seed := &Item{Kind: ItemKindSeed, GrowthMinutes: 60}
	assert.True(t, seed.IsPlantable())

	crop := &Item{Kind: ItemKindCrop}
	assert.False(t, crop.IsPlantable())

	brokenSeed := &Item{Kind: ItemKindSeed}
	assert.False(t, brokenSeed.IsPlantable())

	premium := &Item{Currency: CurrencyDiamonds}
	assert.True(t, premium.IsPremium())
	assert.False(t, (&Item{Currency: CurrencyCash}).IsPremium())
}
