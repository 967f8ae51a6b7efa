package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"coin-tracker/models"
)

type WatchlistHandler struct {
	watchlist WatchlistStore
	log       *logrus.Logger
}

func NewWatchlistHandler(watchlist WatchlistStore, log *logrus.Logger) *WatchlistHandler {
	return &WatchlistHandler{watchlist: watchlist, log: log}
}

type addWatchInput struct {
	CoinID string `json:"coin_id" binding:"required"`
}

// Add tracks a coin for the calling user. Add-if-absent: submitting the
// same coin twice (or fifty times concurrently) leaves one row and tells
// the losers it was already there.
func (h *WatchlistHandler) Add(c *gin.Context) {
	var input addWatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coin_id is required"})
		return
	}

	// Normalize so BTC and btc are the same coin.
	coinID := strings.ToLower(strings.TrimSpace(input.CoinID))
	if coinID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coin_id is required"})
		return
	}

	added, err := h.watchlist.Add(c.Request.Context(), currentUserID(c), coinID)
	if err != nil {
		h.log.WithError(err).WithField("coin_id", coinID).Error("failed to add watchlist item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update watchlist"})
		return
	}

	if !added {
		c.JSON(http.StatusOK, gin.H{"message": "coin already in watchlist"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "coin added to watchlist"})
}

func (h *WatchlistHandler) List(c *gin.Context) {
	items, err := h.watchlist.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.log.WithError(err).Error("failed to list watchlist")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load watchlist"})
		return
	}
	if items == nil {
		items = []models.WatchlistItem{}
	}
	c.JSON(http.StatusOK, items)
}
