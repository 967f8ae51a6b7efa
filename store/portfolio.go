package store

import (
	"context"

	"gorm.io/gorm"

	"coin-tracker/models"
)

type PortfolioStore struct {
	db *gorm.DB
}

func NewPortfolioStore(db *gorm.DB) *PortfolioStore {
	return &PortfolioStore{db: db}
}

// Add records a new lot. Plain insert: multiple lots of the same coin are
// allowed.
func (s *PortfolioStore) Add(ctx context.Context, item *models.PortfolioItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *PortfolioStore) List(ctx context.Context, userID uint) ([]models.PortfolioItem, error) {
	var items []models.PortfolioItem
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&items).Error
	return items, err
}
