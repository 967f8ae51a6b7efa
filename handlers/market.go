package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"coin-tracker/coingecko"
)

type MarketHandler struct {
	prices PriceClient
	log    *logrus.Logger
}

func NewMarketHandler(prices PriceClient, log *logrus.Logger) *MarketHandler {
	return &MarketHandler{prices: prices, log: log}
}

// Analyze forwards a coin lookup to the price service. Unknown coin and
// unreachable upstream are distinct failures (404 vs 502).
func (h *MarketHandler) Analyze(c *gin.Context) {
	coinID := strings.ToLower(strings.TrimSpace(c.Param("coin")))
	if coinID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coin id is required"})
		return
	}

	coin, err := h.prices.GetCoin(c.Request.Context(), coinID)
	if err != nil {
		if errors.Is(err, coingecko.ErrCoinNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown coin id"})
			return
		}
		h.log.WithError(err).WithField("coin_id", coinID).Error("price lookup failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "price service unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"coin_symbol":   strings.ToUpper(coin.Symbol),
		"name":          coin.Name,
		"current_price": coin.MarketData.CurrentPrice["usd"],
		"market_cap":    coin.MarketData.MarketCap["usd"],
		"volume_24h":    coin.MarketData.TotalVolume["usd"],
	})
}
