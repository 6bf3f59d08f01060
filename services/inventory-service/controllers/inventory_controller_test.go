package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webshoplabs/webshop-backend/services/common/logger"
	"github.com/webshoplabs/webshop-backend/services/inventory-service/models"
	"github.com/webshoplabs/webshop-backend/services/inventory-service/repository"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Initialize("test")
	os.Exit(m.Run())
}

type mockInventoryRepo struct {
	mu    sync.Mutex
	items map[string]models.Inventory
}

func newMockInventoryRepo() *mockInventoryRepo {
	return &mockInventoryRepo{items: make(map[string]models.Inventory)}
}

func (m *mockInventoryRepo) ListItems(context.Context) ([]models.Inventory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Inventory
	for _, item := range m.items {
		out = append(out, item)
	}
	return out, nil
}

func (m *mockInventoryRepo) GetItemByID(_ context.Context, itemID string) (*models.Inventory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[itemID]
	if !ok {
		return nil, repository.ErrItemNotFound
	}
	return &item, nil
}

func (m *mockInventoryRepo) AddItem(_ context.Context, item *models.Inventory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item.ID == "" {
		return repository.ErrInvalidItemID
	}
	if _, ok := m.items[item.ID]; ok {
		return repository.ErrItemExists
	}
	m.items[item.ID] = *item
	return nil
}

func (m *mockInventoryRepo) ReplaceItem(_ context.Context, itemID string, item *models.Inventory) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if itemID == "" {
		return false, repository.ErrInvalidItemID
	}
	if _, ok := m.items[itemID]; !ok {
		return false, nil
	}
	item.ID = itemID
	m.items[itemID] = *item
	return true, nil
}

func (m *mockInventoryRepo) DeleteItem(_ context.Context, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, itemID)
	return nil
}

func (m *mockInventoryRepo) AddQuantity(_ context.Context, itemID string, amount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[itemID]
	if !ok {
		return repository.ErrItemNotFound
	}
	item.Quantity += amount
	m.items[itemID] = item
	return nil
}

func (m *mockInventoryRepo) SubtractQuantity(_ context.Context, itemID string, amount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[itemID]
	if !ok {
		return repository.ErrItemNotFound
	}
	if item.Quantity < amount {
		return repository.ErrInsufficientStock
	}
	item.Quantity -= amount
	m.items[itemID] = item
	return nil
}

func (m *mockInventoryRepo) ChangePrice(_ context.Context, itemID string, price float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[itemID]
	if !ok {
		return repository.ErrItemNotFound
	}
	item.Price = price
	m.items[itemID] = item
	return nil
}

func (m *mockInventoryRepo) GetComments(ctx context.Context, itemID string) ([]models.Comment, error) {
	item, err := m.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return item.Comments, nil
}

func (m *mockInventoryRepo) GetRatings(ctx context.Context, itemID string) ([]models.Rating, error) {
	item, err := m.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return item.Ratings, nil
}

func setupRouter(repo repository.InventoryRepository) *gin.Engine {
	r := gin.New()
	controller := NewInventoryController(repo)
	r.GET("/inventory", controller.GetAllItems)
	r.GET("/inventory/:itemId", controller.GetItem)
	r.POST("/inventory", controller.AddItem)
	r.PUT("/inventory/:itemId", controller.EditItem)
	r.DELETE("/inventory/:itemId", controller.DeleteItem)
	r.POST("/inventory/:itemId/quantity/add", controller.AddQuantity)
	r.POST("/inventory/:itemId/quantity/subtract", controller.SubtractQuantity)
	r.POST("/inventory/:itemId/price", controller.ChangePrice)
	r.GET("/inventory/:itemId/comments", controller.GetComments)
	r.GET("/inventory/:itemId/ratings", controller.GetRatings)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAddItem_CreatedAndDuplicateConflict(t *testing.T) {
	repo := newMockInventoryRepo()
	r := setupRouter(repo)

	body := `{"id":"I1","name":"shirt","price":12.5,"quantity":3}`
	w := doJSON(t, r, http.MethodPost, "/inventory", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/inventory", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAddItem_RejectsInvalidPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing id", `{"name":"shirt","price":1,"quantity":1}`},
		{"missing name", `{"id":"I1","price":1,"quantity":1}`},
		{"negative price", `{"id":"I1","name":"shirt","price":-1,"quantity":1}`},
		{"negative quantity", `{"id":"I1","name":"shirt","price":1,"quantity":-1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(newMockInventoryRepo())
			w := doJSON(t, r, http.MethodPost, "/inventory", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetItem_NotFound(t *testing.T) {
	r := setupRouter(newMockInventoryRepo())
	w := doJSON(t, r, http.MethodGet, "/inventory/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubtractQuantity_GuardsStock(t *testing.T) {
	repo := newMockInventoryRepo()
	repo.items["I1"] = models.Inventory{ID: "I1", Name: "shirt", Price: 10, Quantity: 5}
	r := setupRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/inventory/I1/quantity/subtract", `{"amount":3}`)
	assert.Equal(t, http.StatusOK, w.Code)

	// 2 left, asking for 3 must fail and leave stock untouched.
	w = doJSON(t, r, http.MethodPost, "/inventory/I1/quantity/subtract", `{"amount":3}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	item, err := repo.GetItemByID(context.Background(), "I1")
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
}

func TestAddQuantity_RejectsNonPositiveAmount(t *testing.T) {
	repo := newMockInventoryRepo()
	repo.items["I1"] = models.Inventory{ID: "I1", Name: "shirt", Price: 10, Quantity: 5}
	r := setupRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/inventory/I1/quantity/add", `{"amount":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/inventory/I1/quantity/add", `{"amount":-2}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChangePrice_UpdatesItem(t *testing.T) {
	repo := newMockInventoryRepo()
	repo.items["I1"] = models.Inventory{ID: "I1", Name: "shirt", Price: 10, Quantity: 5}
	r := setupRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/inventory/I1/price", `{"price":8.25}`)
	assert.Equal(t, http.StatusOK, w.Code)

	item, err := repo.GetItemByID(context.Background(), "I1")
	require.NoError(t, err)
	assert.Equal(t, 8.25, item.Price)
}

func TestChangePrice_RejectsNegative(t *testing.T) {
	repo := newMockInventoryRepo()
	repo.items["I1"] = models.Inventory{ID: "I1", Name: "shirt", Price: 10, Quantity: 5}
	r := setupRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/inventory/I1/price", `{"price":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEditItem_NoMatchReturnsNotFound(t *testing.T) {
	r := setupRouter(newMockInventoryRepo())
	w := doJSON(t, r, http.MethodPut, "/inventory/missing", `{"name":"shirt","price":1,"quantity":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetComments_EmptyListNotNull(t *testing.T) {
	repo := newMockInventoryRepo()
	repo.items["I1"] = models.Inventory{ID: "I1", Name: "shirt"}
	r := setupRouter(repo)

	w := doJSON(t, r, http.MethodGet, "/inventory/I1/comments", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}
