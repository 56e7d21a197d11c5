package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"clientdesk/internal/model"
)

func newTestDashboard(repo *MockClientRepository) (*dashboardService, time.Time) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	svc := NewDashboardService(repo, nil, zerolog.Nop()).(*dashboardService)
	svc.now = func() time.Time { return now }
	return svc, now
}

func TestDashboardService_Summarize(t *testing.T) {
	stats := []model.CategoryStat{
		{Category: "Enterprise", Count: 8},
		{Category: "SMB", Count: 3},
	}
	recent := []model.RecentClient{{Name: "Acme", Category: "Enterprise"}}

	mockRepo := new(MockClientRepository)
	mockRepo.On("CategoryCounts", mock.Anything).Return(stats, nil)
	mockRepo.On("CountAll", mock.Anything).Return(int64(11), nil)
	mockRepo.On("CountCategories", mock.Anything).Return(int64(2), nil)
	mockRepo.On("Recent", mock.Anything, recentLimit).Return(recent, nil)

	svc, now := newTestDashboard(mockRepo)
	summary := svc.Summarize(context.Background())

	assert.Equal(t, int64(11), summary.TotalClients)
	assert.Equal(t, int64(2), summary.TotalCategories)
	// 11 / 2 = 5.5, rounded to one decimal
	assert.Equal(t, 5.5, summary.AvgClientsPerCategory)
	assert.Equal(t, int64(8), summary.LargestCategory)
	assert.Equal(t, stats, summary.Categories)
	assert.Equal(t, recent, summary.RecentClients)
	assert.Equal(t, now, summary.GeneratedAt)
	mockRepo.AssertExpectations(t)
}

func TestDashboardService_Summarize_EmptyDatabase(t *testing.T) {
	mockRepo := new(MockClientRepository)
	mockRepo.On("CategoryCounts", mock.Anything).Return([]model.CategoryStat{}, nil)
	mockRepo.On("CountAll", mock.Anything).Return(int64(0), nil)
	mockRepo.On("CountCategories", mock.Anything).Return(int64(0), nil)
	mockRepo.On("Recent", mock.Anything, recentLimit).Return([]model.RecentClient{}, nil)

	svc, _ := newTestDashboard(mockRepo)
	summary := svc.Summarize(context.Background())

	// no division by zero when there are no categories
	assert.Zero(t, summary.AvgClientsPerCategory)
	assert.Zero(t, summary.LargestCategory)
	mockRepo.AssertExpectations(t)
}

func TestDashboardService_Summarize_FailSoft(t *testing.T) {
	mockRepo := new(MockClientRepository)
	mockRepo.On("CategoryCounts", mock.Anything).Return(nil, errors.New("driver: bad connection"))

	svc, now := newTestDashboard(mockRepo)
	summary := svc.Summarize(context.Background())

	assert.NotNil(t, summary.Categories)
	assert.Empty(t, summary.Categories)
	assert.NotNil(t, summary.RecentClients)
	assert.Empty(t, summary.RecentClients)
	assert.Zero(t, summary.TotalClients)
	assert.Equal(t, now, summary.GeneratedAt)
	mockRepo.AssertExpectations(t)
}
