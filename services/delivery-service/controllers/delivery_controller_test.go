package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webshoplabs/webshop-backend/services/common/logger"
	"github.com/webshoplabs/webshop-backend/services/delivery-service/models"
	"github.com/webshoplabs/webshop-backend/services/delivery-service/repository"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Initialize("test")
	os.Exit(m.Run())
}

type mockDeliveryRepo struct {
	mu         sync.Mutex
	deliveries map[string]models.Delivery
}

func newMockDeliveryRepo() *mockDeliveryRepo {
	return &mockDeliveryRepo{deliveries: make(map[string]models.Delivery)}
}

func (m *mockDeliveryRepo) CreateDelivery(_ context.Context, d *models.Delivery) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deliveries[d.ID] = *d
	return nil
}

func (m *mockDeliveryRepo) GetDeliveryByID(_ context.Context, id string) (*models.Delivery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.deliveries[id]
	if !ok {
		return nil, repository.ErrDeliveryNotFound
	}
	return &d, nil
}

func (m *mockDeliveryRepo) GetDeliveriesByUserID(_ context.Context, userID string) ([]models.Delivery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Delivery
	for _, d := range m.deliveries {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockDeliveryRepo) ListDeliveries(context.Context) ([]models.Delivery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Delivery
	for _, d := range m.deliveries {
		out = append(out, d)
	}
	return out, nil
}

func (m *mockDeliveryRepo) ReplaceDelivery(_ context.Context, id string, d *models.Delivery) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.deliveries[id]; !ok {
		return false, nil
	}
	d.ID = id
	m.deliveries[id] = *d
	return true, nil
}

func (m *mockDeliveryRepo) DeleteDelivery(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.deliveries, id)
	return nil
}

func setupRouter(repo repository.DeliveryRepository) *gin.Engine {
	r := gin.New()
	controller := NewDeliveryController(repo)
	r.POST("/deliveries", controller.CreateDelivery)
	r.GET("/deliveries", controller.ListDeliveries)
	r.GET("/deliveries/:deliveryId", controller.GetDelivery)
	r.GET("/deliveries/user/:userId", controller.GetDeliveriesByUser)
	r.PUT("/deliveries/:deliveryId", controller.UpdateDelivery)
	r.DELETE("/deliveries/:deliveryId", controller.DeleteDelivery)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateDelivery_AssignsIDAndDefaultWindow(t *testing.T) {
	repo := newMockDeliveryRepo()
	r := setupRouter(repo)

	body := `{"user_id":"U1","payment_id":"P1","address":"1 Main St","geo_x":52.1,"geo_y":4.3}`
	w := doJSON(r, http.MethodPost, "/deliveries", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Delivery
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "U1", created.UserID)
	assert.False(t, created.DeliveryTime.IsZero())
	assert.True(t, created.DeliveryTime.After(time.Now()))
}

func TestCreateDelivery_RequiresPaymentAndAddress(t *testing.T) {
	r := setupRouter(newMockDeliveryRepo())

	w := doJSON(r, http.MethodPost, "/deliveries", `{"user_id":"U1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDelivery_NotFound(t *testing.T) {
	r := setupRouter(newMockDeliveryRepo())
	w := doJSON(r, http.MethodGet, "/deliveries/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetDeliveriesByUser_FiltersByOwner(t *testing.T) {
	repo := newMockDeliveryRepo()
	repo.deliveries["D1"] = models.Delivery{ID: "D1", UserID: "U1"}
	repo.deliveries["D2"] = models.Delivery{ID: "D2", UserID: "U2"}
	r := setupRouter(repo)

	w := doJSON(r, http.MethodGet, "/deliveries/user/U1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"D1"`)
	assert.NotContains(t, w.Body.String(), `"D2"`)
}

func TestUpdateDelivery_PartialUpdate(t *testing.T) {
	repo := newMockDeliveryRepo()
	repo.deliveries["D1"] = models.Delivery{ID: "D1", UserID: "U1", Address: "old", GeoX: 1, GeoY: 2}
	r := setupRouter(repo)

	w := doJSON(r, http.MethodPut, "/deliveries/D1", `{"address":"new address"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	d, err := repo.GetDeliveryByID(context.Background(), "D1")
	require.NoError(t, err)
	assert.Equal(t, "new address", d.Address)
	assert.Equal(t, 1.0, d.GeoX)
}

func TestDeleteDelivery_Idempotent(t *testing.T) {
	repo := newMockDeliveryRepo()
	repo.deliveries["D1"] = models.Delivery{ID: "D1"}
	r := setupRouter(repo)

	for i := 0; i < 2; i++ {
		w := doJSON(r, http.MethodDelete, "/deliveries/D1", "")
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
