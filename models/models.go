package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// WatchlistItem is one tracked coin for a user. The composite unique index
// is what makes the add operation idempotent: the database, not the
// handler, decides who inserted first.
type WatchlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_watchlist_user_coin" json:"-"`
	CoinID    string    `gorm:"not null;uniqueIndex:idx_watchlist_user_coin" json:"coin_id"`
	CreatedAt time.Time `json:"-"`
}

// PortfolioItem is one lot of a coin. No uniqueness constraint: a user may
// hold several lots of the same coin at different buy prices.
type PortfolioItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"-"`
	CoinID    string    `gorm:"not null" json:"coin_id"`
	Amount    float64   `gorm:"not null" json:"amount"`
	BuyPrice  float64   `gorm:"not null" json:"buy_price"`
	CreatedAt time.Time `json:"created_at"`
}

type Trade struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"-"`
	CoinID     string    `gorm:"not null" json:"coin_id"`
	EntryPrice float64   `gorm:"not null" json:"entry_price"`
	ExitPrice  float64   `gorm:"not null" json:"exit_price"`
	TradeType  string    `gorm:"not null" json:"trade_type"`
	Outcome    string    `gorm:"not null" json:"outcome"`
	CreatedAt  time.Time `json:"created_at"`
}
