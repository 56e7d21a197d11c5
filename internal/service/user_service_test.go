package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"clientdesk/internal/auth"
	errs "clientdesk/internal/errors"
	"clientdesk/internal/model"
)

func TestUserService_Create(t *testing.T) {
	tests := []struct {
		name          string
		input         UserInput
		setupMock     func(*MockUserRepository)
		expectedRole  string
		expectedError error
	}{
		{
			name:  "admin role kept",
			input: UserInput{Username: "boss", Password: "secret", Role: model.RoleAdmin},
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedRole: model.RoleAdmin,
		},
		{
			name:  "unknown role coerced to user",
			input: UserInput{Username: "intern", Password: "secret", Role: "superuser"},
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedRole: model.RoleUser,
		},
		{
			name:          "missing password",
			input:         UserInput{Username: "boss"},
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errs.NewValidation("username and password are required"),
		},
		{
			name:  "duplicate username",
			input: UserInput{Username: "boss", Password: "secret"},
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
					Return(errs.ErrDuplicateUsername)
			},
			expectedError: errs.ErrDuplicateUsername,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewUserService(mockRepo, zerolog.Nop())
			user, err := service.Create(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedRole, user.Role)
				assert.True(t, user.IsActive)
				assert.Equal(t, auth.HashPassword(tt.input.Password), user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_Delete(t *testing.T) {
	t.Run("self delete forbidden", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, zerolog.Nop())

		err := service.Delete(context.Background(), 7, 7)

		assert.ErrorIs(t, err, errs.ErrSelfDelete)
		mockRepo.AssertNotCalled(t, "Delete")
	})

	t.Run("other account deleted", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("Delete", mock.Anything, uint(3)).Return(nil)

		service := NewUserService(mockRepo, zerolog.Nop())

		assert.NoError(t, service.Delete(context.Background(), 7, 3))
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	tests := []struct {
		name          string
		current       string
		newPassword   string
		confirm       string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:        "successful change",
			current:     "old-pass",
			newPassword: "new-pass",
			confirm:     "new-pass",
			setupMock: func(m *MockUserRepository) {
				m.On("MatchesPassword", mock.Anything, uint(1), auth.HashPassword("old-pass")).Return(true, nil)
				m.On("UpdatePasswordHash", mock.Anything, uint(1), auth.HashPassword("new-pass")).Return(nil)
			},
		},
		{
			name:          "confirmation mismatch fails before any lookup",
			current:       "old-pass",
			newPassword:   "new-pass",
			confirm:       "typo",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errs.ErrPasswordMismatch,
		},
		{
			name:        "wrong current password",
			current:     "wrong",
			newPassword: "new-pass",
			confirm:     "new-pass",
			setupMock: func(m *MockUserRepository) {
				m.On("MatchesPassword", mock.Anything, uint(1), auth.HashPassword("wrong")).Return(false, nil)
			},
			expectedError: errs.NewValidation("current password is incorrect"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewUserService(mockRepo, zerolog.Nop())
			err := service.ChangePassword(context.Background(), 1, tt.current, tt.newPassword, tt.confirm)

			if tt.expectedError != nil {
				assert.Error(t, err)
				mockRepo.AssertNotCalled(t, "UpdatePasswordHash")
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
