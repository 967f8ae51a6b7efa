package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"coin-tracker/auth"
	"coin-tracker/coingecko"
	"coin-tracker/config"
	"coin-tracker/handlers"
	"coin-tracker/middleware"
	"coin-tracker/models"
	"coin-tracker/store"
)

func newLogger(env string) *logrus.Logger {
	log := logrus.New()
	if env == "development" {
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("failed to load config: ", err)
	}
	log := newLogger(cfg.Env)

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get database instance: ", err)
	}
	defer sqlDB.Close()

	if err := db.AutoMigrate(&models.User{}, &models.WatchlistItem{}, &models.PortfolioItem{}, &models.Trade{}); err != nil {
		log.Fatal("failed to migrate models: ", err)
	}

	rdb, err := config.OpenRedis(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer rdb.Close()

	sessions := auth.NewSessionManager(rdb, cfg.JWTSecret, cfg.SessionTTL)
	prices := coingecko.NewClient(cfg.CoinGeckoAPIKey)

	authH := handlers.NewAuthHandler(store.NewUserStore(db), sessions, log)
	watchlistH := handlers.NewWatchlistHandler(store.NewWatchlistStore(db), log)
	portfolioH := handlers.NewPortfolioHandler(store.NewPortfolioStore(db), log)
	tradesH := handlers.NewTradesHandler(store.NewTradeStore(db), log)
	marketH := handlers.NewMarketHandler(prices, log)
	healthH := handlers.NewHealthHandler(db)

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(log), gin.Recovery(), cors.Default())

	router.GET("/health", healthH.Check)

	api := router.Group("/api")
	api.POST("/register", authH.Register)
	api.POST("/login", authH.Login)
	api.POST("/logout", authH.Logout)
	api.GET("/analyze/:coin", marketH.Analyze)

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(sessions))
	protected.GET("/watchlist", watchlistH.List)
	protected.POST("/watchlist/add", watchlistH.Add)
	protected.GET("/portfolio", portfolioH.List)
	protected.POST("/portfolio/add", portfolioH.Add)
	protected.GET("/trades", tradesH.List)
	protected.POST("/trades/add", tradesH.Add)
	protected.DELETE("/account", authH.DeleteAccount)

	log.WithField("port", cfg.Port).Info("starting server")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped: ", err)
	}
}
