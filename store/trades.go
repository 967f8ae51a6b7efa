package store

import (
	"context"

	"gorm.io/gorm"

	"coin-tracker/models"
)

type TradeStore struct {
	db *gorm.DB
}

func NewTradeStore(db *gorm.DB) *TradeStore {
	return &TradeStore{db: db}
}

func (s *TradeStore) Add(ctx context.Context, trade *models.Trade) error {
	return s.db.WithContext(ctx).Create(trade).Error
}

func (s *TradeStore) List(ctx context.Context, userID uint) ([]models.Trade, error) {
	var trades []models.Trade
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&trades).Error
	return trades, err
}
