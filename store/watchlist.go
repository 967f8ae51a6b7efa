package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coin-tracker/models"
)

type WatchlistStore struct {
	db *gorm.DB
}

func NewWatchlistStore(db *gorm.DB) *WatchlistStore {
	return &WatchlistStore{db: db}
}

// Add inserts the (user, coin) pair if it is not tracked yet. The insert
// runs as a single ON CONFLICT DO NOTHING statement against the composite
// unique index, so concurrent identical calls cannot race: the database
// picks one winner and everyone else sees added=false. Callers never see a
// uniqueness violation.
func (s *WatchlistStore) Add(ctx context.Context, userID uint, coinID string) (added bool, err error) {
	item := models.WatchlistItem{UserID: userID, CoinID: coinID}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "coin_id"}},
		DoNothing: true,
	}).Create(&item)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *WatchlistStore) List(ctx context.Context, userID uint) ([]models.WatchlistItem, error) {
	var items []models.WatchlistItem
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("coin_id").
		Find(&items).Error
	return items, err
}
