package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tycoon/domain/entities"
	"tycoon/domain/interfaces"
	"tycoon/domain/testhelpers"
)

type moderationServiceMocks struct {
	userRepo      *testhelpers.MockUserRepository
	blacklistRepo *testhelpers.MockBlacklistRepository
	publisher     *testhelpers.MockEventPublisher
}

func newModerationServiceForTest() (interfaces.ModerationService, *moderationServiceMocks) {
	m := &moderationServiceMocks{
		userRepo:      new(testhelpers.MockUserRepository),
		blacklistRepo: new(testhelpers.MockBlacklistRepository),
		publisher:     new(testhelpers.MockEventPublisher),
	}
	return NewModerationService(m.userRepo, m.blacklistRepo, m.publisher), m
}

func TestModerationService_Arrest_SetsDeadlineAndPublishes(t *testing.T) {
	ctx := context.Background()

	service, m := newModerationServiceForTest()

	m.userRepo.On("GetByDiscordID", ctx, int64(2)).Return(&entities.User{DiscordID: 2}, nil)
	m.userRepo.On("SetArrestedUntil", ctx, int64(2), mock.MatchedBy(func(until *time.Time) bool {
		return until != nil && until.After(time.Now().UTC())
	})).Return(nil)
	m.publisher.On("Publish", mock.AnythingOfType("events.UserArrestedEvent")).Return()

	until, err := service.Arrest(ctx, 2, 30*time.Minute)

	assert.NoError(t, err)
	assert.True(t, until.After(time.Now().UTC()))
	m.userRepo.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
}

func TestModerationService_Arrest_UnknownUser(t *testing.T) {
	ctx := context.Background()

	service, m := newModerationServiceForTest()

	m.userRepo.On("GetByDiscordID", ctx, int64(2)).Return((*entities.User)(nil), nil)

	_, err := service.Arrest(ctx, 2, 30*time.Minute)

	assert.ErrorIs(t, err, entities.ErrNotFound)
	m.userRepo.AssertNotCalled(t, "SetArrestedUntil", mock.Anything, mock.Anything, mock.Anything)
}

func TestModerationService_Arrest_RejectsNonPositiveDuration(t *testing.T) {
	ctx := context.Background()

	service, _ := newModerationServiceForTest()

	_, err := service.Arrest(ctx, 2, 0)
	assert.Error(t, err)
}

func TestModerationService_Release_ClearsArrest(t *testing.T) {
	ctx := context.Background()

	service, m := newModerationServiceForTest()

	until := time.Now().UTC().Add(time.Hour)
	m.userRepo.On("GetByDiscordID", ctx, int64(2)).
		Return(&entities.User{DiscordID: 2, ArrestedUntil: &until}, nil)
	m.userRepo.On("SetArrestedUntil", ctx, int64(2), (*time.Time)(nil)).Return(nil)

	err := service.Release(ctx, 2)

	assert.NoError(t, err)
	m.userRepo.AssertExpectations(t)
}

func TestModerationService_Release_NotArrested(t *testing.T) {
	ctx := context.Background()

	service, m := newModerationServiceForTest()

	m.userRepo.On("GetByDiscordID", ctx, int64(2)).Return(&entities.User{DiscordID: 2}, nil)

	err := service.Release(ctx, 2)

	assert.ErrorIs(t, err, entities.ErrInvalidState)
	m.userRepo.AssertNotCalled(t, "SetArrestedUntil", mock.Anything, mock.Anything, mock.Anything)
}

func TestModerationService_Blacklist_AddsEntry(t *testing.T) {
	ctx := context.Background()

	service, m := newModerationServiceForTest()

	m.blacklistRepo.On("IsBlacklisted", ctx, int64(2)).Return(false, nil)
	m.blacklistRepo.On("Add", ctx, mock.MatchedBy(func(e *entities.BlacklistEntry) bool {
		return e.DiscordID == 2 && e.CreatedBy == 1 && e.Reason == "alt account farming"
	})).Return(nil)

	err := service.Blacklist(ctx, 2, 1, "alt account farming")

	assert.NoError(t, err)
	m.blacklistRepo.AssertExpectations(t)
}

func TestModerationService_Blacklist_AlreadyBlacklisted(t *testing.T) {
	ctx := context.Background()

	service, m := newModerationServiceForTest()

	m.blacklistRepo.On("IsBlacklisted", ctx, int64(2)).Return(true, nil)

	err := service.Blacklist(ctx, 2, 1, "")

	assert.ErrorIs(t, err, entities.ErrInvalidState)
	m.blacklistRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestModerationService_Blacklist_RejectsSelf(t *testing.T) {
	ctx := context.Background()

	service, _ := newModerationServiceForTest()

	err := service.Blacklist(ctx, 1, 1, "")
	assert.Error(t, err)
}

func TestModerationService_Unblacklist_RemovesEntry(t *testing.T) {
	ctx := context.Background()

	service, m := newModerationServiceForTest()

	m.blacklistRepo.On("IsBlacklisted", ctx, int64(2)).Return(true, nil)
	m.blacklistRepo.On("Remove", ctx, int64(2)).Return(nil)

	err := service.Unblacklist(ctx, 2)

	assert.NoError(t, err)
	m.blacklistRepo.AssertExpectations(t)
}

func TestModerationService_Unblacklist_NotBlacklisted(t *testing.T) {
	ctx := context.Background()

	service, m := newModerationServiceForTest()

	m.blacklistRepo.On("IsBlacklisted", ctx, int64(2)).Return(false, nil)

	err := service.Unblacklist(ctx, 2)

	assert.ErrorIs(t, err, entities.ErrInvalidState)
	m.blacklistRepo.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}
