package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Izioneves/Facilapp-1.2/internal/api/handlers"
	appErrors "github.com/Izioneves/Facilapp-1.2/internal/errors"
	"github.com/Izioneves/Facilapp-1.2/internal/models"
	svcMocks "github.com/Izioneves/Facilapp-1.2/internal/services/mocks"
	"github.com/Izioneves/Facilapp-1.2/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		userService := new(svcMocks.UserService)
		handler := handlers.NewUserHandler(userService)

		userService.On("Register", mock.Anything, mock.MatchedBy(func(req *models.RegisterRequest) bool {
			return req.Email == "maria@example.com" && req.Role == models.RoleClient
		})).Return(&models.User{ID: uuid.New(), Email: "maria@example.com", Role: models.RoleClient}, nil).Once()

		body := []byte(`{"email":"maria@example.com","password":"s3nh4forte","name":"Maria Silva","role":"client"}`)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/register", bytes.NewReader(body), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Register().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		userService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Role", func(t *testing.T) {
		// Arrange
		userService := new(svcMocks.UserService)
		handler := handlers.NewUserHandler(userService)

		body := []byte(`{"email":"maria@example.com","password":"s3nh4forte","name":"Maria Silva","role":"admin"}`)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/register", bytes.NewReader(body), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Register().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		userService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Duplicate Email", func(t *testing.T) {
		// Arrange
		userService := new(svcMocks.UserService)
		handler := handlers.NewUserHandler(userService)
		userService.On("Register", mock.Anything, mock.Anything).
			Return(nil, appErrors.DuplicateEntryError("Email already registered")).Once()

		body := []byte(`{"email":"maria@example.com","password":"s3nh4forte","name":"Maria Silva","role":"client"}`)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/register", bytes.NewReader(body), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Register().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	body := []byte(`{"email":"maria@example.com","password":"s3nh4forte"}`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		userService := new(svcMocks.UserService)
		handler := handlers.NewUserHandler(userService)
		userService.On("Login", mock.Anything, mock.Anything).
			Return(&models.LoginResponse{Success: true, Token: "jwt", Role: models.RoleClient, ExpiresIn: 86400}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/login", bytes.NewReader(body), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Invalid Credentials", func(t *testing.T) {
		// Arrange
		userService := new(svcMocks.UserService)
		handler := handlers.NewUserHandler(userService)
		userService.On("Login", mock.Anything, mock.Anything).
			Return(&models.LoginResponse{Success: false, Message: "Invalid email or password", RemainingTries: 3}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/login", bytes.NewReader(body), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		var resp models.LoginResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 3, resp.RemainingTries)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		// Arrange
		userService := new(svcMocks.UserService)
		handler := handlers.NewUserHandler(userService)
		userService.On("Login", mock.Anything, mock.Anything).
			Return(&models.LoginResponse{Success: false, RetryAfter: 120}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/login", bytes.NewReader(body), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	})
}

func TestProfileHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		userService := new(svcMocks.UserService)
		handler := handlers.NewUserHandler(userService)
		userService.On("GetUserByID", mock.Anything, userID).
			Return(&models.User{ID: userID, Name: "Maria Silva"}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/users/profile", nil, userID, models.RoleClient, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Profile().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Missing Authentication", func(t *testing.T) {
		userService := new(svcMocks.UserService)
		handler := handlers.NewUserHandler(userService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/users/profile", nil, nil)
		rr := httptest.NewRecorder()

		handler.Profile().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		userService.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
	})
}
