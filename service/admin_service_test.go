package service

import (
	"context"
	"testing"

	"drinkmeter/config"
	"drinkmeter/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAdminService_AddVodka(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockGroupRepo := new(MockGroupRepository)
	mockUoW.SetRepositories(mockUserRepo, mockGroupRepo, nil)

	caches := newTestCacheSet(config.CacheModeCached, 16)
	service := NewAdminService(mockFactory, caches)

	existingUser := &models.User{UserID: 123456, Username: "testuser", VodkaLiters: 5}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, int64(123456)).Return(existingUser, nil)
	// No clamp on additions, even past the per-drink pour maximum
	mockUserRepo.On("AddVodka", ctx, int64(123456), float64(50)).Return(nil)

	user, err := service.AddVodka(ctx, 123456, 50)

	assert.NoError(t, err)
	assert.Equal(t, float64(55), user.VodkaLiters)
	mockUserRepo.AssertExpectations(t)
}

func TestAdminService_RemoveVodka_ClampsAmount(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockGroupRepo := new(MockGroupRepository)
	mockUoW.SetRepositories(mockUserRepo, mockGroupRepo, nil)

	caches := newTestCacheSet(config.CacheModeCached, 16)
	service := NewAdminService(mockFactory, caches)

	existingUser := &models.User{UserID: 123456, Username: "testuser", VodkaLiters: 40}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, int64(123456)).Return(existingUser, nil)
	// A requested 25 is clamped to 10, so 40 becomes 30
	mockUserRepo.On("SetVodka", ctx, int64(123456), float64(30)).Return(nil)

	user, err := service.RemoveVodka(ctx, 123456, 25)

	assert.NoError(t, err)
	assert.Equal(t, float64(30), user.VodkaLiters)
	mockUserRepo.AssertExpectations(t)
}

func TestAdminService_RemoveVodka_FloorsAtZero(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockGroupRepo := new(MockGroupRepository)
	mockUoW.SetRepositories(mockUserRepo, mockGroupRepo, nil)

	caches := newTestCacheSet(config.CacheModeCached, 16)
	service := NewAdminService(mockFactory, caches)

	existingUser := &models.User{UserID: 123456, Username: "testuser", VodkaLiters: 3.5}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, int64(123456)).Return(existingUser, nil)
	// Removing more than the tank holds leaves zero, never negative
	mockUserRepo.On("SetVodka", ctx, int64(123456), float64(0)).Return(nil)

	user, err := service.RemoveVodka(ctx, 123456, 10)

	assert.NoError(t, err)
	assert.Equal(t, float64(0), user.VodkaLiters)
	mockUserRepo.AssertExpectations(t)
}

func TestAdminService_AddLevels_NoClampNoRederivation(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockGroupRepo := new(MockGroupRepository)
	mockUoW.SetRepositories(mockUserRepo, mockGroupRepo, nil)

	caches := newTestCacheSet(config.CacheModeCached, 16)
	service := NewAdminService(mockFactory, caches)

	existingUser := &models.User{UserID: 123456, Username: "testuser", TotalDrinks: 3, Level: 1}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, int64(123456)).Return(existingUser, nil)
	mockUserRepo.On("AddLevels", ctx, int64(123456), 10).Return(nil)

	user, err := service.AddLevels(ctx, 123456, 10)

	assert.NoError(t, err)
	// The override can push past MaxLevel; the drink table is not consulted
	assert.Equal(t, 11, user.Level)
	mockUserRepo.AssertNotCalled(t, "UpdateLevel", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminService_UnknownTarget(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockGroupRepo := new(MockGroupRepository)
	mockUoW.SetRepositories(mockUserRepo, mockGroupRepo, nil)

	caches := newTestCacheSet(config.CacheModeCached, 16)
	service := NewAdminService(mockFactory, caches)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, int64(999)).Return(nil, nil)

	user, err := service.AddVodka(ctx, 999, 5)

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.Contains(t, err.Error(), "not found")
	mockUserRepo.AssertNotCalled(t, "AddVodka", mock.Anything, mock.Anything, mock.Anything)
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestAdminService_RemoveVodka_InvalidatesCachedSnapshot(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockGroupRepo := new(MockGroupRepository)
	mockUoW.SetRepositories(mockUserRepo, mockGroupRepo, nil)

	caches := newTestCacheSet(config.CacheModeCached, 16)
	service := NewAdminService(mockFactory, caches)

	existingUser := &models.User{UserID: 123456, VodkaLiters: 20}
	caches.putUser(existingUser)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, int64(123456)).Return(existingUser, nil)
	mockUserRepo.On("SetVodka", ctx, int64(123456), float64(15)).Return(nil)

	_, err := service.RemoveVodka(ctx, 123456, 5)
	assert.NoError(t, err)

	_, ok := caches.getUser(123456)
	assert.False(t, ok)
}
