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

// CartOperations is the slice of the settlement service the cart endpoints
// need.
type CartOperations interface {
	CreateCart(ctx context.Context, userID string) (*models.Cart, error)
	GetCartByID(ctx context.Context, cartID string) (*models.Cart, error)
	GetCartByUserID(ctx context.Context, userID string) (*models.Cart, error)
	ReplaceCart(ctx context.Context, cartID string, cart *models.Cart) (bool, error)
	DeleteCart(ctx context.Context, cartID string) error
	AddItem(ctx context.Context, cartID string, item models.CartItem) error
	RemoveItem(ctx context.Context, cartID, itemID string) error
	Settle(ctx context.Context, cartID string) error
}

type CartController struct {
	Service CartOperations
}

func NewCartController(service CartOperations) *CartController {
	return &CartController{Service: service}
}

// CreateCart creates the single cart for a user
func (cc *CartController) CreateCart(c *gin.Context) {
	userID := c.Param("userId")

	cart, err := cc.Service.CreateCart(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "cart already exists for user"})
			return
		}
		if errors.Is(err, repository.ErrInvalidCartID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user id is required"})
			return
		}
		logger.Error(c, "failed to create cart", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create cart"})
		return
	}

	c.JSON(http.StatusCreated, cart)
}

// GetCartByID returns a cart by its id
func (cc *CartController) GetCartByID(c *gin.Context) {
	cartID := c.Param("cartId")

	cart, err := cc.Service.GetCartByID(c.Request.Context(), cartID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
			return
		}
		logger.Error(c, "failed to get cart", zap.Error(err), zap.String("cart_id", cartID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get cart"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

// GetCartByUser returns the cart owned by a user
func (cc *CartController) GetCartByUser(c *gin.Context) {
	userID := c.Param("userId")

	cart, err := cc.Service.GetCartByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
			return
		}
		logger.Error(c, "failed to get cart by user", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get cart"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

// EditCart fully replaces a cart document
func (cc *CartController) EditCart(c *gin.Context) {
	cartID := c.Param("cartId")

	var cart models.Cart
	if err := c.ShouldBindJSON(&cart); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	matched, err := cc.Service.ReplaceCart(c.Request.Context(), cartID, &cart)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCartID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart id is required"})
			return
		}
		logger.Error(c, "failed to replace cart", zap.Error(err), zap.String("cart_id", cartID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
		return
	}
	if !matched {
		c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cart updated"})
}

// AddItem appends an inventory snapshot to the cart and triggers the amount
// recompute
func (cc *CartController) AddItem(c *gin.Context) {
	cartID := c.Param("cartId")

	var item models.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if item.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item id is required"})
		return
	}
	if item.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item price cannot be negative"})
		return
	}
	if item.Quantity != nil && *item.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item quantity must be positive"})
		return
	}

	if err := cc.Service.AddItem(c.Request.Context(), cartID, item); err != nil {
		logger.Error(c, "failed to add item", zap.Error(err), zap.String("cart_id", cartID), zap.String("item_id", item.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item added"})
}

// RemoveItem removes an item from the cart and triggers the amount recompute
func (cc *CartController) RemoveItem(c *gin.Context) {
	cartID := c.Param("cartId")
	itemID := c.Param("itemId")

	if err := cc.Service.RemoveItem(c.Request.Context(), cartID, itemID); err != nil {
		logger.Error(c, "failed to remove item", zap.Error(err), zap.String("cart_id", cartID), zap.String("item_id", itemID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item removed"})
}

// DeleteCart deletes a cart document; deleting an absent cart succeeds
func (cc *CartController) DeleteCart(c *gin.Context) {
	cartID := c.Param("cartId")

	if err := cc.Service.DeleteCart(c.Request.Context(), cartID); err != nil {
		logger.Error(c, "failed to delete cart", zap.Error(err), zap.String("cart_id", cartID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cart deleted"})
}

// Checkout settles the cart: its contents become an immutable payment and the
// cart is emptied. An empty cart checks out as a quiet no-op.
func (cc *CartController) Checkout(c *gin.Context) {
	cartID := c.Param("cartId")

	if err := cc.Service.Settle(c.Request.Context(), cartID); err != nil {
		logger.Error(c, "failed to settle cart", zap.Error(err), zap.String("cart_id", cartID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to checkout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "checkout complete"})
}
