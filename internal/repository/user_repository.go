package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"clientdesk/internal/db"
	errs "clientdesk/internal/errors"
	"clientdesk/internal/model"
)

// UserRepository defines account persistence operations.
type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByCredentials(ctx context.Context, username, passwordHash string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateDetails(ctx context.Context, id uint, email, fullName, role string, active bool) error
	Delete(ctx context.Context, id uint) error
	UpdateLastLogin(ctx context.Context, id uint) error
	MatchesPassword(ctx context.Context, id uint, passwordHash string) (bool, error)
	UpdatePasswordHash(ctx context.Context, id uint, passwordHash string) error
}

type userRepository struct {
	db *db.Manager
}

// NewUserRepository builds a repository over the shared connection manager.
func NewUserRepository(manager *db.Manager) UserRepository {
	return &userRepository{db: manager}
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	tx, err := r.db.Session(ctx)
	if err != nil {
		return nil, err
	}
	var users []model.User
	if err := tx.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	tx, err := r.db.Session(ctx)
	if err != nil {
		return nil, err
	}
	var user model.User
	if err := tx.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByCredentials matches username and password digest in one predicate so
// a wrong username and a wrong password are indistinguishable to callers.
// Inactive accounts never match.
func (r *userRepository) FindByCredentials(ctx context.Context, username, passwordHash string) (*model.User, error) {
	tx, err := r.db.Session(ctx)
	if err != nil {
		return nil, err
	}
	var user model.User
	err = tx.Where("username = ? AND password_hash = ? AND is_active = ?", username, passwordHash, true).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	tx, err := r.db.Session(ctx)
	if err != nil {
		return err
	}
	if err := tx.Create(user).Error; err != nil {
		if db.IsDuplicateEntry(err) {
			return errs.ErrDuplicateUsername
		}
		return err
	}
	return nil
}

func (r *userRepository) UpdateDetails(ctx context.Context, id uint, email, fullName, role string, active bool) error {
	tx, err := r.db.Session(ctx)
	if err != nil {
		return err
	}
	res := tx.Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"email":     email,
		"full_name": fullName,
		"role":      role,
		"is_active": active,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	tx, err := r.db.Session(ctx)
	if err != nil {
		return err
	}
	res := tx.Delete(&model.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id uint) error {
	tx, err := r.db.Session(ctx)
	if err != nil {
		return err
	}
	return tx.Model(&model.User{}).Where("id = ?", id).
		Update("last_login", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

// MatchesPassword reports whether the stored digest for id equals passwordHash.
func (r *userRepository) MatchesPassword(ctx context.Context, id uint, passwordHash string) (bool, error) {
	tx, err := r.db.Session(ctx)
	if err != nil {
		return false, err
	}
	var count int64
	err = tx.Model(&model.User{}).
		Where("id = ? AND password_hash = ?", id, passwordHash).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, id uint, passwordHash string) error {
	tx, err := r.db.Session(ctx)
	if err != nil {
		return err
	}
	return tx.Model(&model.User{}).Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}
