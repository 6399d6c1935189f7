package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tycoon/config"
	"tycoon/domain/entities"
	"tycoon/domain/interfaces"
	"tycoon/domain/random"
	"tycoon/domain/testhelpers"
)

// fixedSource feeds predetermined values to the picker so outcome rolls
// are deterministic.
type fixedSource struct {
	floats []float64
	ints   []int
}

func (s *fixedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *fixedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

type crimeServiceMocks struct {
	userRepo       *testhelpers.MockUserRepository
	profileRepo    *testhelpers.MockProfileRepository
	txRepo         *testhelpers.MockTransactionRepository
	eventPublisher *testhelpers.MockEventPublisher
}

func newCrimeServiceForTest(src *fixedSource) (interfaces.CrimeService, *crimeServiceMocks) {
	m := &crimeServiceMocks{
		userRepo:       new(testhelpers.MockUserRepository),
		profileRepo:    new(testhelpers.MockProfileRepository),
		txRepo:         new(testhelpers.MockTransactionRepository),
		eventPublisher: new(testhelpers.MockEventPublisher),
	}
	cfg := config.NewTestConfig()
	m.profileRepo.On("GetOrCreate", mock.Anything, mock.AnythingOfType("int64")).
		Return(&entities.GuildProfile{}, nil).Maybe()
	ledger := NewLedgerService(m.userRepo, m.profileRepo, m.txRepo, testhelpers.NoopEventPublisher{}, cfg)
	service := NewCrimeService(
		m.userRepo,
		m.profileRepo,
		ledger,
		NewCooldownService(m.profileRepo),
		m.eventPublisher,
		random.NewPicker(src),
		cfg,
	)
	return service, m
}

func TestCrimeService_Crime_ScoreCreditsDirtyCash(t *testing.T) {
	ctx := context.Background()

	// Roll 0.0 lands on the score outcome; 75 makes the gain 50+75=125.
	service, m := newCrimeServiceForTest(&fixedSource{floats: []float64{0.0}, ints: []int{75}})

	m.userRepo.On("GetByDiscordID", ctx, int64(123456)).Return(nil, nil)
	m.profileRepo.On("CheckAndConsumeCooldown", ctx, int64(123456), entities.CooldownCrime, time.Hour).
		Return(entities.CooldownStatus{Ready: true}, nil)
	m.profileRepo.On("AdjustBalance", ctx, int64(123456), entities.BalanceDirty, int64(125)).Return(int64(125), nil)
	m.txRepo.On("Record", ctx, mock.MatchedBy(func(tx *entities.Transaction) bool {
		return tx.Type == entities.TransactionTypeCrimeGain && tx.Amount == 125
	})).Return(nil)

	result, err := service.Crime(ctx, 123456)

	assert.NoError(t, err)
	assert.Equal(t, entities.CrimeOutcomeScore, result.Outcome)
	assert.Equal(t, int64(125), result.Amount)
	m.profileRepo.AssertExpectations(t)
}

func TestCrimeService_Crime_ArrestStampsUserAndPublishes(t *testing.T) {
	ctx := context.Background()

	// Roll 0.99 lands past every other outcome weight.
	service, m := newCrimeServiceForTest(&fixedSource{floats: []float64{0.99}})

	m.userRepo.On("GetByDiscordID", ctx, int64(123456)).Return(nil, nil)
	m.profileRepo.On("CheckAndConsumeCooldown", ctx, int64(123456), entities.CooldownCrime, time.Hour).
		Return(entities.CooldownStatus{Ready: true}, nil)
	m.userRepo.On("SetArrestedUntil", ctx, int64(123456), mock.AnythingOfType("*time.Time")).Return(nil)
	m.eventPublisher.On("Publish", mock.AnythingOfType("events.UserArrestedEvent")).Return()

	result, err := service.Crime(ctx, 123456)

	assert.NoError(t, err)
	assert.Equal(t, entities.CrimeOutcomeArrested, result.Outcome)
	assert.NotNil(t, result.ArrestedUntil)
	assert.True(t, result.ArrestedUntil.After(time.Now()))
	m.userRepo.AssertExpectations(t)
	m.eventPublisher.AssertExpectations(t)
}

func TestCrimeService_Crime_BrokeOffenderArrestedInsteadOfFined(t *testing.T) {
	ctx := context.Background()

	// Roll 0.75 lands on the fine outcome.
	service, m := newCrimeServiceForTest(&fixedSource{floats: []float64{0.75}})

	m.userRepo.On("GetByDiscordID", ctx, int64(123456)).Return(nil, nil)
	m.profileRepo.On("CheckAndConsumeCooldown", ctx, int64(123456), entities.CooldownCrime, time.Hour).
		Return(entities.CooldownStatus{Ready: true}, nil)
	m.profileRepo.On("AdjustBalance", ctx, int64(123456), entities.BalanceCash, int64(-150)).
		Return(int64(0), entities.ErrInsufficientFunds)
	m.txRepo.On("Record", ctx, mock.MatchedBy(func(tx *entities.Transaction) bool {
		return tx.Status == entities.TransactionStatusRejected
	})).Return(nil)
	m.userRepo.On("SetArrestedUntil", ctx, int64(123456), mock.AnythingOfType("*time.Time")).Return(nil)
	m.eventPublisher.On("Publish", mock.AnythingOfType("events.UserArrestedEvent")).Return()

	result, err := service.Crime(ctx, 123456)

	assert.NoError(t, err)
	assert.Equal(t, entities.CrimeOutcomeArrested, result.Outcome)
	m.userRepo.AssertExpectations(t)
}

func TestCrimeService_Crime_ArrestedUserBlocked(t *testing.T) {
	ctx := context.Background()

	service, m := newCrimeServiceForTest(&fixedSource{})

	until := time.Now().UTC().Add(20 * time.Minute)
	m.userRepo.On("GetByDiscordID", ctx, int64(123456)).
		Return(&entities.User{DiscordID: 123456, ArrestedUntil: &until}, nil)

	_, err := service.Crime(ctx, 123456)

	assert.ErrorIs(t, err, entities.ErrInvalidState)
	m.profileRepo.AssertNotCalled(t, "CheckAndConsumeCooldown", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCrimeService_Rob_SuccessMovesCappedShare(t *testing.T) {
	ctx := context.Background()

	// 0.1 < 0.35 wins the success roll; 149 makes the take 1+149=150
	// within the 20% cap of the victim's 1000 cash.
	service, m := newCrimeServiceForTest(&fixedSource{floats: []float64{0.1}, ints: []int{149}})

	m.userRepo.On("GetByDiscordID", ctx, int64(111)).Return(nil, nil)
	m.profileRepo.On("CheckAndConsumeCooldown", ctx, int64(111), entities.CooldownRob, 2*time.Hour).
		Return(entities.CooldownStatus{Ready: true}, nil)
	m.profileRepo.On("Get", ctx, int64(222)).
		Return(&entities.GuildProfile{DiscordID: 222, Cash: 1000}, nil)
	m.profileRepo.On("AdjustBalance", ctx, int64(222), entities.BalanceCash, int64(-150)).Return(int64(850), nil)
	m.profileRepo.On("AdjustBalance", ctx, int64(111), entities.BalanceDirty, int64(150)).Return(int64(150), nil)
	m.txRepo.On("Record", ctx, mock.AnythingOfType("*entities.Transaction")).Return(nil)

	result, err := service.Rob(ctx, 111, 222)

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, int64(150), result.Amount)
	m.profileRepo.AssertExpectations(t)
}

func TestCrimeService_Rob_FailurePaysFine(t *testing.T) {
	ctx := context.Background()

	service, m := newCrimeServiceForTest(&fixedSource{floats: []float64{0.9}})

	m.userRepo.On("GetByDiscordID", ctx, int64(111)).Return(nil, nil)
	m.profileRepo.On("CheckAndConsumeCooldown", ctx, int64(111), entities.CooldownRob, 2*time.Hour).
		Return(entities.CooldownStatus{Ready: true}, nil)
	m.profileRepo.On("Get", ctx, int64(222)).
		Return(&entities.GuildProfile{DiscordID: 222, Cash: 1000}, nil)
	m.profileRepo.On("AdjustBalance", ctx, int64(111), entities.BalanceCash, int64(-150)).Return(int64(50), nil)
	m.txRepo.On("Record", ctx, mock.MatchedBy(func(tx *entities.Transaction) bool {
		return tx.Type == entities.TransactionTypeRobLoss
	})).Return(nil)

	result, err := service.Rob(ctx, 111, 222)

	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, int64(150), result.Amount)
	m.profileRepo.AssertNotCalled(t, "AdjustBalance", ctx, int64(222), mock.Anything, mock.Anything)
}

func TestCrimeService_Rob_VictimWithoutCash(t *testing.T) {
	ctx := context.Background()

	service, m := newCrimeServiceForTest(&fixedSource{})

	m.userRepo.On("GetByDiscordID", ctx, int64(111)).Return(nil, nil)
	m.profileRepo.On("CheckAndConsumeCooldown", ctx, int64(111), entities.CooldownRob, 2*time.Hour).
		Return(entities.CooldownStatus{Ready: true}, nil)
	m.profileRepo.On("Get", ctx, int64(222)).Return(nil, nil)

	_, err := service.Rob(ctx, 111, 222)

	assert.ErrorIs(t, err, entities.ErrInvalidState)
}

func TestCrimeService_Rob_RejectsSelf(t *testing.T) {
	service, _ := newCrimeServiceForTest(&fixedSource{})

	_, err := service.Rob(context.Background(), 111, 111)

	assert.Error(t, err)
}

func TestCrimeService_Launder_TakesConfiguredFee(t *testing.T) {
	ctx := context.Background()

	service, m := newCrimeServiceForTest(&fixedSource{})

	m.profileRepo.On("AdjustBalance", ctx, int64(123456), entities.BalanceDirty, int64(-200)).Return(int64(0), nil)
	m.profileRepo.On("AdjustBalance", ctx, int64(123456), entities.BalanceCash, int64(150)).Return(int64(650), nil)
	m.txRepo.On("Record", ctx, mock.MatchedBy(func(tx *entities.Transaction) bool {
		return tx.Type == entities.TransactionTypeLaunder && tx.Amount == -200
	})).Return(nil)

	clean, fee, err := service.Launder(ctx, 123456, 200)

	assert.NoError(t, err)
	assert.Equal(t, int64(150), clean)
	assert.Equal(t, int64(50), fee)
	m.profileRepo.AssertExpectations(t)
}

func TestCrimeService_Launder_InsufficientDirtyCash(t *testing.T) {
	ctx := context.Background()

	service, m := newCrimeServiceForTest(&fixedSource{})

	m.profileRepo.On("AdjustBalance", ctx, int64(123456), entities.BalanceDirty, int64(-200)).
		Return(int64(0), entities.ErrInsufficientFunds)
	m.txRepo.On("Record", ctx, mock.AnythingOfType("*entities.Transaction")).Return(nil)

	_, _, err := service.Launder(ctx, 123456, 200)

	assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
	m.profileRepo.AssertNotCalled(t, "AdjustBalance", ctx, int64(123456), entities.BalanceCash, mock.Anything)
}
