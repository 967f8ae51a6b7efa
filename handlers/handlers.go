// Package handlers holds the HTTP layer. Handlers receive their
// collaborators through constructors and talk to them via the small
// interfaces below, so tests can swap in fakes.
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"coin-tracker/coingecko"
	"coin-tracker/middleware"
	"coin-tracker/models"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Delete(ctx context.Context, userID uint) error
}

type WatchlistStore interface {
	Add(ctx context.Context, userID uint, coinID string) (added bool, err error)
	List(ctx context.Context, userID uint) ([]models.WatchlistItem, error)
}

type PortfolioStore interface {
	Add(ctx context.Context, item *models.PortfolioItem) error
	List(ctx context.Context, userID uint) ([]models.PortfolioItem, error)
}

type TradeStore interface {
	Add(ctx context.Context, trade *models.Trade) error
	List(ctx context.Context, userID uint) ([]models.Trade, error)
}

type SessionManager interface {
	Issue(ctx context.Context, userID uint) (string, error)
	Authenticate(ctx context.Context, token string) (uint, error)
	Revoke(ctx context.Context, token string) error
}

type PriceClient interface {
	GetCoin(ctx context.Context, coinID string) (*coingecko.Coin, error)
}

// currentUserID reads the user ID set by the auth middleware. Only valid
// on routes behind RequireAuth.
func currentUserID(c *gin.Context) uint {
	return c.MustGet(middleware.CtxUserIDKey).(uint)
}
