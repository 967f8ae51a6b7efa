package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"coin-tracker/models"
)

type TradesHandler struct {
	trades TradeStore
	log    *logrus.Logger
}

func NewTradesHandler(trades TradeStore, log *logrus.Logger) *TradesHandler {
	return &TradesHandler{trades: trades, log: log}
}

type logTradeInput struct {
	CoinID     string  `json:"coin_id" binding:"required"`
	EntryPrice float64 `json:"entry_price" binding:"required,gt=0"`
	ExitPrice  float64 `json:"exit_price" binding:"required,gt=0"`
	TradeType  string  `json:"trade_type" binding:"required,oneof=long short"`
}

// Add logs a trade. Outcome is derived here, never taken from the client.
func (h *TradesHandler) Add(c *gin.Context) {
	var input logTradeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coinID := strings.ToLower(strings.TrimSpace(input.CoinID))
	if coinID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coin_id is required"})
		return
	}

	trade := &models.Trade{
		UserID:     currentUserID(c),
		CoinID:     coinID,
		EntryPrice: input.EntryPrice,
		ExitPrice:  input.ExitPrice,
		TradeType:  input.TradeType,
		Outcome:    models.TradeOutcome(input.TradeType, input.EntryPrice, input.ExitPrice),
	}

	if err := h.trades.Add(c.Request.Context(), trade); err != nil {
		h.log.WithError(err).WithField("coin_id", coinID).Error("failed to log trade")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log trade"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "trade logged", "outcome": trade.Outcome})
}

func (h *TradesHandler) List(c *gin.Context) {
	trades, err := h.trades.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.log.WithError(err).Error("failed to list trades")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load trades"})
		return
	}
	if trades == nil {
		trades = []models.Trade{}
	}
	c.JSON(http.StatusOK, trades)
}
