package test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"socialfeed/internal/identity"
	"socialfeed/internal/models"
	"socialfeed/internal/service"
)

type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) ListFeed(ctx context.Context, page, pageSize int) ([]models.FeedPost, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FeedPost), args.Error(1)
}

func (m *MockFeedService) GetPost(ctx context.Context, postID string) (*models.FeedPost, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeedPost), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, ident *identity.Identity, req service.CreatePostRequest) (*models.FeedPost, error) {
	args := m.Called(ctx, ident, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeedPost), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, postID, callerID string, patch service.UpdatePostRequest) (*models.FeedPost, error) {
	args := m.Called(ctx, postID, callerID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeedPost), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, postID, callerID string) ([]string, error) {
	args := m.Called(ctx, postID, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPostService) ToggleLike(ctx context.Context, postID, callerID string) (int, bool, error) {
	args := m.Called(ctx, postID, callerID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) EnsureUser(ctx context.Context, ident *identity.Identity) (*models.User, error) {
	args := m.Called(ctx, ident)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockProfileService) GetProfile(ctx context.Context, ident *identity.Identity) (*models.Profile, error) {
	args := m.Called(ctx, ident)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, uid string, patch service.UpdateProfileRequest) (*models.Profile, int64, error) {
	args := m.Called(ctx, uid, patch)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).(*models.Profile), args.Get(1).(int64), args.Error(2)
}
