package handlers

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"coin-tracker/auth"
	"coin-tracker/coingecko"
	"coin-tracker/middleware"
	"coin-tracker/models"
	"coin-tracker/store"
)

// ============ Mock user store ============

type mockUserStore struct {
	mu        sync.Mutex
	users     map[string]*models.User
	nextID    uint
	createErr error
	deleteErr error
	deleted   []uint
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[string]*models.User), nextID: 1}
}

func (m *mockUserStore) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.users[user.Username]; exists {
		return store.ErrDuplicateUsername
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.Username] = user
	return nil
}

func (m *mockUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStore) Delete(_ context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, userID)
	for name, u := range m.users {
		if u.ID == userID {
			delete(m.users, name)
		}
	}
	return nil
}

// ============ Mock session manager ============

type mockSessionManager struct {
	mu       sync.Mutex
	sessions map[string]uint
	counter  int
	issueErr error
}

func newMockSessionManager() *mockSessionManager {
	return &mockSessionManager{sessions: make(map[string]uint)}
}

func (m *mockSessionManager) Issue(_ context.Context, userID uint) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.issueErr != nil {
		return "", m.issueErr
	}
	m.counter++
	token := fmt.Sprintf("token-%d", m.counter)
	m.sessions[token] = userID
	return token, nil
}

func (m *mockSessionManager) Authenticate(_ context.Context, token string) (uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	userID, ok := m.sessions[token]
	if !ok {
		return 0, auth.ErrUnauthenticated
	}
	return userID, nil
}

func (m *mockSessionManager) Revoke(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, token)
	return nil
}

// ============ Mock watchlist store ============

// mockWatchlistStore mirrors the database contract: Add is atomic under a
// single lock, so concurrent identical calls see exactly one added=true.
type mockWatchlistStore struct {
	mu      sync.Mutex
	items   map[uint]map[string]uint
	nextID  uint
	addErr  error
	listErr error
}

func newMockWatchlistStore() *mockWatchlistStore {
	return &mockWatchlistStore{items: make(map[uint]map[string]uint), nextID: 1}
}

func (m *mockWatchlistStore) Add(_ context.Context, userID uint, coinID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.addErr != nil {
		return false, m.addErr
	}
	if m.items[userID] == nil {
		m.items[userID] = make(map[string]uint)
	}
	if _, exists := m.items[userID][coinID]; exists {
		return false, nil
	}
	m.items[userID][coinID] = m.nextID
	m.nextID++
	return true, nil
}

func (m *mockWatchlistStore) List(_ context.Context, userID uint) ([]models.WatchlistItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.listErr != nil {
		return nil, m.listErr
	}
	var items []models.WatchlistItem
	for coinID, id := range m.items[userID] {
		items = append(items, models.WatchlistItem{ID: id, UserID: userID, CoinID: coinID})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CoinID < items[j].CoinID })
	return items, nil
}

func (m *mockWatchlistStore) count(userID uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items[userID])
}

// ============ Mock portfolio store ============

type mockPortfolioStore struct {
	mu      sync.Mutex
	items   []models.PortfolioItem
	nextID  uint
	addErr  error
	listErr error
}

func newMockPortfolioStore() *mockPortfolioStore {
	return &mockPortfolioStore{nextID: 1}
}

func (m *mockPortfolioStore) Add(_ context.Context, item *models.PortfolioItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.addErr != nil {
		return m.addErr
	}
	item.ID = m.nextID
	m.nextID++
	m.items = append(m.items, *item)
	return nil
}

func (m *mockPortfolioStore) List(_ context.Context, userID uint) ([]models.PortfolioItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.listErr != nil {
		return nil, m.listErr
	}
	var items []models.PortfolioItem
	for _, item := range m.items {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

// ============ Mock trade store ============

type mockTradeStore struct {
	mu      sync.Mutex
	trades  []models.Trade
	nextID  uint
	addErr  error
	listErr error
}

func newMockTradeStore() *mockTradeStore {
	return &mockTradeStore{nextID: 1}
}

func (m *mockTradeStore) Add(_ context.Context, trade *models.Trade) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.addErr != nil {
		return m.addErr
	}
	trade.ID = m.nextID
	m.nextID++
	m.trades = append(m.trades, *trade)
	return nil
}

func (m *mockTradeStore) List(_ context.Context, userID uint) ([]models.Trade, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.listErr != nil {
		return nil, m.listErr
	}
	var trades []models.Trade
	for _, trade := range m.trades {
		if trade.UserID == userID {
			trades = append(trades, trade)
		}
	}
	return trades, nil
}

// ============ Mock price client ============

type mockPriceClient struct {
	coin *coingecko.Coin
	err  error
}

func (m *mockPriceClient) GetCoin(_ context.Context, _ string) (*coingecko.Coin, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.coin, nil
}

// ============ Test app wiring ============

type testApp struct {
	router    *gin.Engine
	users     *mockUserStore
	sessions  *mockSessionManager
	watchlist *mockWatchlistStore
	portfolio *mockPortfolioStore
	trades    *mockTradeStore
	prices    *mockPriceClient
}

// newTestApp wires all handlers onto the same routes main uses, with mocks
// behind them.
func newTestApp() *testApp {
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	app := &testApp{
		users:     newMockUserStore(),
		sessions:  newMockSessionManager(),
		watchlist: newMockWatchlistStore(),
		portfolio: newMockPortfolioStore(),
		trades:    newMockTradeStore(),
		prices:    &mockPriceClient{},
	}

	authH := NewAuthHandler(app.users, app.sessions, log)
	watchlistH := NewWatchlistHandler(app.watchlist, log)
	portfolioH := NewPortfolioHandler(app.portfolio, log)
	tradesH := NewTradesHandler(app.trades, log)
	marketH := NewMarketHandler(app.prices, log)

	router := gin.New()
	api := router.Group("/api")
	api.POST("/register", authH.Register)
	api.POST("/login", authH.Login)
	api.POST("/logout", authH.Logout)
	api.GET("/analyze/:coin", marketH.Analyze)

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(app.sessions))
	protected.GET("/watchlist", watchlistH.List)
	protected.POST("/watchlist/add", watchlistH.Add)
	protected.GET("/portfolio", portfolioH.List)
	protected.POST("/portfolio/add", portfolioH.Add)
	protected.GET("/trades", tradesH.List)
	protected.POST("/trades/add", tradesH.Add)
	protected.DELETE("/account", authH.DeleteAccount)

	app.router = router
	return app
}
