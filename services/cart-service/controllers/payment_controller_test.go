package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webshoplabs/webshop-backend/services/cart-service/models"
	"github.com/webshoplabs/webshop-backend/services/cart-service/repository"
)

type stubPaymentRepo struct {
	payments []models.Payment
	err      error
	deleted  []string
}

func (s *stubPaymentRepo) InsertPayment(_ context.Context, p *models.Payment) error {
	if s.err != nil {
		return s.err
	}
	s.payments = append(s.payments, *p)
	return nil
}

func (s *stubPaymentRepo) GetPaymentsByUserID(_ context.Context, userID string) ([]models.Payment, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Payment
	for _, p := range s.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubPaymentRepo) GetAllPayments(context.Context) ([]models.Payment, error) {
	return s.payments, s.err
}

func (s *stubPaymentRepo) DeletePayment(_ context.Context, paymentID string) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, paymentID)
	return nil
}

type stubSubmitter struct {
	err      error
	accepted *models.Payment
}

func (s *stubSubmitter) AcceptExternalPayment(_ context.Context, p *models.Payment) error {
	if s.err != nil {
		return s.err
	}
	s.accepted = p
	return nil
}

func setupPaymentRouter(repo *stubPaymentRepo, submitter *stubSubmitter) *gin.Engine {
	r := gin.New()
	controller := NewPaymentController(repo, submitter)
	r.GET("/payments", controller.GetAllPayments)
	r.GET("/payments/user/:userId", controller.GetPaymentsByUser)
	r.POST("/payments", controller.SubmitPayment)
	r.DELETE("/payments/:paymentId", controller.DeletePayment)
	return r
}

func TestGetAllPayments_EmptyListNotNull(t *testing.T) {
	r := setupPaymentRouter(&stubPaymentRepo{}, &stubSubmitter{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payments", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestGetPaymentsByUser_FiltersByOwner(t *testing.T) {
	repo := &stubPaymentRepo{payments: []models.Payment{
		{ID: "P1", UserID: "U1", Amount: 5},
		{ID: "P2", UserID: "U2", Amount: 7},
	}}
	r := setupPaymentRouter(repo, &stubSubmitter{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payments/user/U1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"P1"`)
	assert.NotContains(t, w.Body.String(), `"P2"`)
}

func TestSubmitPayment_Accepted(t *testing.T) {
	submitter := &stubSubmitter{}
	r := setupPaymentRouter(&stubPaymentRepo{}, submitter)

	w := httptest.NewRecorder()
	body := `{"cart_id":"C1","user_id":"U1","amount":10,"items":[{"id":"I1","price":10}]}`
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, submitter.accepted)
	assert.Equal(t, "C1", submitter.accepted.CartID)
}

func TestSubmitPayment_VacuousRejected(t *testing.T) {
	submitter := &stubSubmitter{err: repository.ErrInvalidPayment}
	r := setupPaymentRouter(&stubPaymentRepo{}, submitter)

	w := httptest.NewRecorder()
	body := `{"cart_id":"C1","user_id":"U1","amount":0,"items":[]}`
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeletePayment_Idempotent(t *testing.T) {
	repo := &stubPaymentRepo{}
	r := setupPaymentRouter(repo, &stubSubmitter{})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/payments/P1", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, []string{"P1", "P1"}, repo.deleted)
}
