package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"clientdesk/internal/auth"
	errs "clientdesk/internal/errors"
	"clientdesk/internal/model"
)

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "admin",
			password: "admin123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByCredentials", mock.Anything, "admin", auth.HashPassword("admin123")).
					Return(&model.User{ID: 1, Username: "admin", Role: model.RoleAdmin}, nil)
				m.On("UpdateLastLogin", mock.Anything, uint(1)).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "wrong password",
			username: "admin",
			password: "nope",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByCredentials", mock.Anything, "admin", auth.HashPassword("nope")).
					Return(nil, errs.ErrNotFound)
			},
			expectedError: errs.ErrInvalidCredentials,
		},
		{
			name:     "unknown username",
			username: "ghost",
			password: "admin123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByCredentials", mock.Anything, "ghost", auth.HashPassword("admin123")).
					Return(nil, errs.ErrNotFound)
			},
			expectedError: errs.ErrInvalidCredentials,
		},
		{
			name:          "empty credentials rejected without lookup",
			username:      "",
			password:      "",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errs.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, zerolog.Nop())
			user, err := service.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_LastLoginFailureIsNotFatal(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByCredentials", mock.Anything, "admin", auth.HashPassword("admin123")).
		Return(&model.User{ID: 1, Username: "admin"}, nil)
	mockRepo.On("UpdateLastLogin", mock.Anything, uint(1)).
		Return(errors.New("connection reset"))

	service := NewAuthService(mockRepo, zerolog.Nop())
	user, err := service.Login(context.Background(), "admin", "admin123")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	mockRepo.AssertExpectations(t)
}
