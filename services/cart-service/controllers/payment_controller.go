package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/webshoplabs/webshop-backend/services/cart-service/models"
	"github.com/webshoplabs/webshop-backend/services/cart-service/repository"
	"github.com/webshoplabs/webshop-backend/services/common/logger"
)

// PaymentSubmitter accepts an externally computed payment and reconciles the
// originating cart.
type PaymentSubmitter interface {
	AcceptExternalPayment(ctx context.Context, payment *models.Payment) error
}

type PaymentController struct {
	Repo    repository.PaymentRepository
	Service PaymentSubmitter
}

func NewPaymentController(repo repository.PaymentRepository, service PaymentSubmitter) *PaymentController {
	return &PaymentController{
		Repo:    repo,
		Service: service,
	}
}

// GetAllPayments lists every payment record
func (pc *PaymentController) GetAllPayments(c *gin.Context) {
	payments, err := pc.Repo.GetAllPayments(c.Request.Context())
	if err != nil {
		logger.Error(c, "failed to list payments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list payments"})
		return
	}
	if payments == nil {
		payments = []models.Payment{}
	}

	c.JSON(http.StatusOK, payments)
}

// GetPaymentsByUser lists payment records for one user
func (pc *PaymentController) GetPaymentsByUser(c *gin.Context) {
	userID := c.Param("userId")

	payments, err := pc.Repo.GetPaymentsByUserID(c.Request.Context(), userID)
	if err != nil {
		logger.Error(c, "failed to list payments for user", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list payments"})
		return
	}
	if payments == nil {
		payments = []models.Payment{}
	}

	c.JSON(http.StatusOK, payments)
}

// SubmitPayment records an externally computed payment and clears the
// originating cart
func (pc *PaymentController) SubmitPayment(c *gin.Context) {
	var payment models.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := pc.Service.AcceptExternalPayment(c.Request.Context(), &payment); err != nil {
		if errors.Is(err, repository.ErrInvalidPayment) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payment must contain items and a non-zero amount"})
			return
		}
		logger.Error(c, "failed to submit payment", zap.Error(err), zap.String("cart_id", payment.CartID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "payment recorded"})
}

// DeletePayment removes a payment record; deleting an absent payment succeeds
func (pc *PaymentController) DeletePayment(c *gin.Context) {
	paymentID := c.Param("paymentId")

	if err := pc.Repo.DeletePayment(c.Request.Context(), paymentID); err != nil {
		logger.Error(c, "failed to delete payment", zap.Error(err), zap.String("payment_id", paymentID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "payment deleted"})
}
