package test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"socialfeed/internal/apperrors"
	"socialfeed/internal/models"
)

func TestGoogleAuthHandler(t *testing.T) {
	t.Run("первый вход создает пользователя", func(t *testing.T) {
		mockProfile := new(MockProfileService)
		handler := createTestHandlers(new(MockFeedService), new(MockPostService), mockProfile)

		mockProfile.On("EnsureUser", mock.Anything, testIdent).Return(&models.User{
			UID:         testIdent.UID,
			DisplayName: testIdent.DisplayName,
			Email:       testIdent.Email,
			AvatarRef:   testIdent.AvatarRef,
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/google", nil)
		req = withIdentity(req, testIdent)

		rr := httptest.NewRecorder()
		handler.GoogleAuth(rr, req)

		response := assertJSONSuccess(t, rr, http.StatusOK)
		assert.Equal(t, true, response["success"])

		user, ok := response["user"].(map[string]interface{})
		assert.True(t, ok)
		assert.Equal(t, testIdent.UID, user["uid"])
		assert.Equal(t, testIdent.Email, user["email"])

		mockProfile.AssertExpectations(t)
	})

	t.Run("без проверенной личности", func(t *testing.T) {
		handler := createTestHandlers(new(MockFeedService), new(MockPostService), new(MockProfileService))

		req := httptest.NewRequest(http.MethodPost, "/api/google", nil)
		rr := httptest.NewRecorder()
		handler.GoogleAuth(rr, req)

		assertJSONError(t, rr, http.StatusUnauthorized, "Требуется аутентификация")
	})

	t.Run("инфраструктурная ошибка", func(t *testing.T) {
		mockProfile := new(MockProfileService)
		handler := createTestHandlers(new(MockFeedService), new(MockPostService), mockProfile)

		mockProfile.On("EnsureUser", mock.Anything, testIdent).
			Return(nil, apperrors.ErrInfrastructure)

		req := httptest.NewRequest(http.MethodPost, "/api/google", nil)
		req = withIdentity(req, testIdent)

		rr := httptest.NewRecorder()
		handler.GoogleAuth(rr, req)

		assertJSONError(t, rr, http.StatusInternalServerError, "")
		mockProfile.AssertExpectations(t)
	})
}

func TestGetCurrentUserHandler(t *testing.T) {
	t.Run("текущий пользователь", func(t *testing.T) {
		mockProfile := new(MockProfileService)
		handler := createTestHandlers(new(MockFeedService), new(MockPostService), mockProfile)

		mockProfile.On("EnsureUser", mock.Anything, testIdent).Return(&models.User{
			UID:         testIdent.UID,
			DisplayName: testIdent.DisplayName,
			Email:       testIdent.Email,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req = withIdentity(req, testIdent)

		rr := httptest.NewRecorder()
		handler.GetCurrentUser(rr, req)

		response := assertJSONSuccess(t, rr, http.StatusOK)
		assert.Equal(t, true, response["success"])

		mockProfile.AssertExpectations(t)
	})

	t.Run("без проверенной личности", func(t *testing.T) {
		handler := createTestHandlers(new(MockFeedService), new(MockPostService), new(MockProfileService))

		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		rr := httptest.NewRecorder()
		handler.GetCurrentUser(rr, req)

		assertJSONError(t, rr, http.StatusUnauthorized, "Требуется аутентификация")
	})
}
