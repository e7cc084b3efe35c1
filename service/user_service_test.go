package service

import (
	"context"
	"errors"
	"testing"

	"drinkmeter/config"
	"drinkmeter/events"
	"drinkmeter/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUserService_GetOrCreateUser_ExistingUser(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockGroupRepo := new(MockGroupRepository)
	mockUoW.SetRepositories(mockUserRepo, mockGroupRepo, nil)

	caches := newTestCacheSet(config.CacheModeCached, 16)
	service := NewUserService(mockFactory, caches)

	existingUser := &models.User{
		UserID:      123456,
		Username:    "testuser",
		TotalDrinks: 42,
		Level:       2,
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, int64(123456)).Return(existingUser, nil)

	user, err := service.GetOrCreateUser(ctx, 123456, "testuser")

	assert.NoError(t, err)
	assert.Equal(t, existingUser, user)

	// No insert and no commit for a known user
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestUserService_GetOrCreateUser_NewUser(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockGroupRepo := new(MockGroupRepository)
	mockEvents := new(MockEventPublisher)
	mockUoW.SetRepositories(mockUserRepo, mockGroupRepo, mockEvents)

	caches := newTestCacheSet(config.CacheModeCached, 16)
	service := NewUserService(mockFactory, caches)

	createdUser := &models.User{
		UserID:   123456,
		Username: "newuser",
		Level:    1,
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, int64(123456)).Return(nil, nil)
	mockUserRepo.On("Create", ctx, int64(123456), "newuser").Return(createdUser, nil)

	mockEvents.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		uc, ok := e.(events.UserCreatedEvent)
		return ok && uc.UserID == 123456 && uc.Username == "newuser"
	})).Return()

	user, err := service.GetOrCreateUser(ctx, 123456, "newuser")

	assert.NoError(t, err)
	assert.Equal(t, createdUser, user)
	assert.Equal(t, 1, user.Level)

	mockUserRepo.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestUserService_GetUser_ServesCachedSnapshot(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	caches := newTestCacheSet(config.CacheModeCached, 16)
	service := NewUserService(mockFactory, caches)

	caches.putUser(&models.User{UserID: 123456, Username: "cached"})

	// The factory is never touched on a cache hit
	user, err := service.GetUser(ctx, 123456)

	assert.NoError(t, err)
	assert.Equal(t, "cached", user.Username)
	mockFactory.AssertNotCalled(t, "Create")
}

func TestUserService_GetUser_UnknownReturnsNil(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockGroupRepo := new(MockGroupRepository)
	mockUoW.SetRepositories(mockUserRepo, mockGroupRepo, nil)

	caches := newTestCacheSet(config.CacheModeCached, 16)
	service := NewUserService(mockFactory, caches)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, int64(999)).Return(nil, nil)

	user, err := service.GetUser(ctx, 999)

	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserService_GetUserByUsername_StripsLeadingAt(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockGroupRepo := new(MockGroupRepository)
	mockUoW.SetRepositories(mockUserRepo, mockGroupRepo, nil)

	caches := newTestCacheSet(config.CacheModeCached, 16)
	service := NewUserService(mockFactory, caches)

	existingUser := &models.User{UserID: 123456, Username: "testuser"}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	// The lookup sees the bare username
	mockUserRepo.On("GetByUsername", ctx, "testuser").Return(existingUser, nil)

	user, err := service.GetUserByUsername(ctx, "@testuser")

	assert.NoError(t, err)
	assert.Equal(t, existingUser, user)
	mockUserRepo.AssertExpectations(t)
}

func TestUserService_GetOrCreateUser_StorageError(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockGroupRepo := new(MockGroupRepository)
	mockUoW.SetRepositories(mockUserRepo, mockGroupRepo, nil)

	caches := newTestCacheSet(config.CacheModeCached, 16)
	service := NewUserService(mockFactory, caches)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, int64(123456)).Return(nil, errors.New("connection lost"))

	user, err := service.GetOrCreateUser(ctx, 123456, "testuser")

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.Contains(t, err.Error(), "connection lost")
}
