// internal/interfaces/http/handlers/handlers_test.go
package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/your-org/viber-store/internal/config"
	"github.com/your-org/viber-store/internal/domain/cart"
	"github.com/your-org/viber-store/internal/domain/product"
	"github.com/your-org/viber-store/internal/domain/session"
	"github.com/your-org/viber-store/internal/interfaces/http/middleware"
)

// In-memory doubles for the storage layer, so handler tests run the full
// middleware-handler-service path without Postgres or Redis.

type memoryCartRepo struct {
	mu     sync.Mutex
	nextID uint
	lines  map[uint]*cart.CartLine
}

func newMemoryCartRepo() *memoryCartRepo {
	return &memoryCartRepo{nextID: 1, lines: make(map[uint]*cart.CartLine)}
}

func (m *memoryCartRepo) AddOrIncrement(ctx context.Context, ownerKey string, productID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, line := range m.lines {
		if line.OwnerKey == ownerKey && line.ProductID == productID {
			line.Quantity++
			return nil
		}
	}
	m.lines[m.nextID] = &cart.CartLine{ID: m.nextID, OwnerKey: ownerKey, ProductID: productID, Quantity: 1}
	m.nextID++
	return nil
}

func (m *memoryCartRepo) FindByID(ctx context.Context, id uint) (*cart.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	line, ok := m.lines[id]
	if !ok {
		return nil, cart.ErrLineNotFound
	}
	copied := *line
	return &copied, nil
}

func (m *memoryCartRepo) UpdateQuantity(ctx context.Context, id uint, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	line, ok := m.lines[id]
	if !ok {
		return cart.ErrLineNotFound
	}
	line.Quantity = quantity
	return nil
}

func (m *memoryCartRepo) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lines[id]; !ok {
		return cart.ErrLineNotFound
	}
	delete(m.lines, id)
	return nil
}

func (m *memoryCartRepo) DeleteByOwner(ctx context.Context, ownerKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, line := range m.lines {
		if line.OwnerKey == ownerKey {
			delete(m.lines, id)
		}
	}
	return nil
}

func (m *memoryCartRepo) ListByOwner(ctx context.Context, ownerKey string) ([]cart.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []cart.CartLine
	for _, line := range m.lines {
		if line.OwnerKey == ownerKey {
			result = append(result, *line)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *memoryCartRepo) SumQuantities(ctx context.Context, ownerKey string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, line := range m.lines {
		if line.OwnerKey == ownerKey {
			total += line.Quantity
		}
	}
	return total, nil
}

type staticCatalog struct {
	products map[uint]*product.Product
}

func (s *staticCatalog) FindByID(ctx context.Context, id uint) (*product.Product, error) {
	prod, ok := s.products[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return prod, nil
}

func (s *staticCatalog) List(ctx context.Context, f *product.Filter) ([]product.Product, int64, error) {
	var all []product.Product
	for _, prod := range s.products {
		all = append(all, *prod)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, int64(len(all)), nil
}

type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]string
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]string)}
}

func (m *memorySessionStore) Put(ctx context.Context, sessionID, username string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = username
	return nil
}

func (m *memorySessionStore) Get(ctx context.Context, sessionID string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	username, ok := m.sessions[sessionID]
	return username, ok, nil
}

func (m *memorySessionStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "Viber Store", Environment: "test"},
		Session: config.SessionConfig{
			Secret:     "0123456789abcdef0123456789abcdef",
			CookieName: "viber_session",
			Lifetime:   time.Hour,
		},
	}
}

type testEnv struct {
	router   *gin.Engine
	cfg      *config.Config
	cartRepo *memoryCartRepo
}

// setupEnv builds the API route table on in-memory storage, mirroring the
// production wiring.
func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	catalog := &staticCatalog{products: map[uint]*product.Product{
		1: {ID: 1, Name: "Fedora", Price: 4999},
		2: {ID: 2, Name: "Straw Hat", Price: 2999},
	}}
	cartRepo := newMemoryCartRepo()

	productService := product.NewService(catalog)
	cartService := cart.NewService(cartRepo, catalog)
	bridge := session.NewBridge(cfg, newMemorySessionStore(), cartService)

	authHandler := NewAuthHandler(bridge, cfg)
	productHandler := NewProductHandler(productService)
	cartHandler := NewCartHandler(cartService)

	router := gin.New()
	apiV1 := router.Group("/api/v1")

	auth := apiV1.Group("/auth")
	auth.GET("/login", authHandler.ShowLogin)
	auth.POST("/login", authHandler.Login)
	auth.GET("/logout", authHandler.Logout)
	auth.GET("/logout/clear-cart", authHandler.LogoutClearCart)

	products := apiV1.Group("/products")
	products.GET("", productHandler.GetProducts)
	products.GET("/:id", productHandler.GetProduct)

	cartRoutes := apiV1.Group("/cart")
	cartRoutes.Use(middleware.RequireLogin(cfg, bridge))
	cartRoutes.GET("", cartHandler.GetCart)
	cartRoutes.GET("/count", cartHandler.GetCartCount)
	cartRoutes.POST("/add/:productID", cartHandler.AddToCart)
	cartRoutes.POST("/update/:itemID", cartHandler.UpdateLine)
	cartRoutes.POST("/remove/:itemID", cartHandler.RemoveLine)

	return &testEnv{router: router, cfg: cfg, cartRepo: cartRepo}
}

// login posts the login form and returns the session cookie
func (e *testEnv) login(t *testing.T, username string) *http.Cookie {
	t.Helper()

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", "anything")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == e.cfg.Session.CookieName && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

// do runs a request with an optional session cookie and returns the recorder
func (e *testEnv) do(method, target string, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
