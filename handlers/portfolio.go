package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"coin-tracker/models"
)

type PortfolioHandler struct {
	portfolio PortfolioStore
	log       *logrus.Logger
}

func NewPortfolioHandler(portfolio PortfolioStore, log *logrus.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio, log: log}
}

type addHoldingInput struct {
	CoinID   string  `json:"coin_id" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	BuyPrice float64 `json:"buy_price" binding:"required,gt=0"`
}

func (h *PortfolioHandler) Add(c *gin.Context) {
	var input addHoldingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := &models.PortfolioItem{
		UserID:   currentUserID(c),
		CoinID:   strings.ToLower(strings.TrimSpace(input.CoinID)),
		Amount:   input.Amount,
		BuyPrice: input.BuyPrice,
	}
	if item.CoinID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coin_id is required"})
		return
	}

	if err := h.portfolio.Add(c.Request.Context(), item); err != nil {
		h.log.WithError(err).WithField("coin_id", item.CoinID).Error("failed to add portfolio item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update portfolio"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "coin added to portfolio", "id": item.ID})
}

func (h *PortfolioHandler) List(c *gin.Context) {
	items, err := h.portfolio.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.log.WithError(err).Error("failed to list portfolio")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load portfolio"})
		return
	}
	if items == nil {
		items = []models.PortfolioItem{}
	}
	c.JSON(http.StatusOK, items)
}
