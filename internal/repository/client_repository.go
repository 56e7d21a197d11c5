package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"clientdesk/internal/db"
	errs "clientdesk/internal/errors"
	"clientdesk/internal/model"
)

// ClientRepository defines client persistence operations.
type ClientRepository interface {
	List(ctx context.Context) ([]model.Client, error)
	ListForExport(ctx context.Context) ([]model.Client, error)
	FindByID(ctx context.Context, id uint) (*model.Client, error)
	Create(ctx context.Context, client *model.Client) error
	CreateBatch(ctx context.Context, clients []model.Client) error
	Update(ctx context.Context, client *model.Client) error
	Delete(ctx context.Context, id uint) error
	DeleteBulk(ctx context.Context, ids []uint) (int64, error)
	DeleteByCategory(ctx context.Context, category string) (int64, error)
	UpdateCategoryBulk(ctx context.Context, ids []uint, category string) (int64, error)
	CategoryCounts(ctx context.Context) ([]model.CategoryStat, error)
	CountAll(ctx context.Context) (int64, error)
	CountCategories(ctx context.Context) (int64, error)
	Recent(ctx context.Context, limit int) ([]model.RecentClient, error)
	Optimize(ctx context.Context) error
}

type clientRepository struct {
	db *db.Manager
}

// NewClientRepository builds a repository over the shared connection manager.
func NewClientRepository(manager *db.Manager) ClientRepository {
	return &clientRepository{db: manager}
}

// List returns all clients, newest first.
func (r *clientRepository) List(ctx context.Context) ([]model.Client, error) {
	tx, err := r.db.Session(ctx)
	if err != nil {
		return nil, err
	}
	var clients []model.Client
	if err := tx.Order("id DESC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// ListForExport returns all clients in insertion order.
func (r *clientRepository) ListForExport(ctx context.Context) ([]model.Client, error) {
	tx, err := r.db.Session(ctx)
	if err != nil {
		return nil, err
	}
	var clients []model.Client
	if err := tx.Order("id ASC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *clientRepository) FindByID(ctx context.Context, id uint) (*model.Client, error) {
	tx, err := r.db.Session(ctx)
	if err != nil {
		return nil, err
	}
	var client model.Client
	if err := tx.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	tx, err := r.db.Session(ctx)
	if err != nil {
		return err
	}
	return tx.Create(client).Error
}

// CreateBatch inserts all clients inside one transaction so a failed import
// never leaves a partial batch behind.
func (r *clientRepository) CreateBatch(ctx context.Context, clients []model.Client) error {
	if len(clients) == 0 {
		return nil
	}
	tx, err := r.db.Session(ctx)
	if err != nil {
		return err
	}
	return tx.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&clients).Error
	})
}

func (r *clientRepository) Update(ctx context.Context, client *model.Client) error {
	tx, err := r.db.Session(ctx)
	if err != nil {
		return err
	}
	res := tx.Model(&model.Client{}).Where("id = ?", client.ID).Updates(map[string]interface{}{
		"name":     client.Name,
		"category": client.Category,
		"email":    client.Email,
		"phone":    client.Phone,
		"address":  client.Address,
		"notes":    client.Notes,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id uint) error {
	tx, err := r.db.Session(ctx)
	if err != nil {
		return err
	}
	res := tx.Delete(&model.Client{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// DeleteBulk removes every client in ids and reports how many rows went away.
// The predicate is parameter-bound, never string-built.
func (r *clientRepository) DeleteBulk(ctx context.Context, ids []uint) (int64, error) {
	tx, err := r.db.Session(ctx)
	if err != nil {
		return 0, err
	}
	res := tx.Where("id IN ?", ids).Delete(&model.Client{})
	return res.RowsAffected, res.Error
}

// DeleteByCategory cascades a category deletion: every client holding the
// label is removed, which erases the category itself from all aggregates.
func (r *clientRepository) DeleteByCategory(ctx context.Context, category string) (int64, error) {
	tx, err := r.db.Session(ctx)
	if err != nil {
		return 0, err
	}
	res := tx.Where("category = ?", category).Delete(&model.Client{})
	return res.RowsAffected, res.Error
}

func (r *clientRepository) UpdateCategoryBulk(ctx context.Context, ids []uint, category string) (int64, error) {
	tx, err := r.db.Session(ctx)
	if err != nil {
		return 0, err
	}
	res := tx.Model(&model.Client{}).Where("id IN ?", ids).Update("category", category)
	return res.RowsAffected, res.Error
}

// CategoryCounts returns the per-category distribution, largest first.
func (r *clientRepository) CategoryCounts(ctx context.Context) ([]model.CategoryStat, error) {
	tx, err := r.db.Session(ctx)
	if err != nil {
		return nil, err
	}
	var stats []model.CategoryStat
	err = tx.Model(&model.Client{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("count DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *clientRepository) CountAll(ctx context.Context) (int64, error) {
	tx, err := r.db.Session(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := tx.Model(&model.Client{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *clientRepository) CountCategories(ctx context.Context) (int64, error) {
	tx, err := r.db.Session(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := tx.Model(&model.Client{}).Distinct("category").Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *clientRepository) Recent(ctx context.Context, limit int) ([]model.RecentClient, error) {
	tx, err := r.db.Session(ctx)
	if err != nil {
		return nil, err
	}
	var recent []model.RecentClient
	err = tx.Model(&model.Client{}).
		Select("name, category").
		Order("id DESC").
		Limit(limit).
		Scan(&recent).Error
	if err != nil {
		return nil, err
	}
	return recent, nil
}

// Optimize runs a table maintenance pass.
func (r *clientRepository) Optimize(ctx context.Context) error {
	tx, err := r.db.Session(ctx)
	if err != nil {
		return err
	}
	return tx.Exec("OPTIMIZE TABLE clients").Error
}
