package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/webshoplabs/webshop-backend/services/common/logger"
	"github.com/webshoplabs/webshop-backend/services/inventory-service/models"
	"github.com/webshoplabs/webshop-backend/services/inventory-service/repository"
)

type InventoryController struct {
	Repo repository.InventoryRepository
}

func NewInventoryController(repo repository.InventoryRepository) *InventoryController {
	return &InventoryController{Repo: repo}
}

type quantityRequest struct {
	Amount int `json:"amount" binding:"required,gt=0"`
}

type priceRequest struct {
	Price float64 `json:"price" binding:"gte=0"`
}

func (ic *InventoryController) GetAllItems(c *gin.Context) {
	items, err := ic.Repo.ListItems(c.Request.Context())
	if err != nil {
		logger.Error(c, "failed to list inventory", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch inventory"})
		return
	}
	if items == nil {
		items = []models.Inventory{}
	}
	c.JSON(http.StatusOK, items)
}

func (ic *InventoryController) GetItem(c *gin.Context) {
	item, err := ic.Repo.GetItemByID(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		logger.Error(c, "failed to fetch item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (ic *InventoryController) AddItem(c *gin.Context) {
	var item models.Inventory
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item payload"})
		return
	}
	if item.ID == "" || item.Name == "" || item.Price < 0 || item.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item requires an id, a name, and non-negative price and quantity"})
		return
	}

	err := ic.Repo.AddItem(c.Request.Context(), &item)
	if err != nil {
		if errors.Is(err, repository.ErrItemExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "item already exists"})
			return
		}
		logger.Error(c, "failed to add item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (ic *InventoryController) EditItem(c *gin.Context) {
	itemID := c.Param("itemId")

	var item models.Inventory
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item payload"})
		return
	}
	if item.Price < 0 || item.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price and quantity must be non-negative"})
		return
	}

	matched, err := ic.Repo.ReplaceItem(c.Request.Context(), itemID, &item)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidItemID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
			return
		}
		logger.Error(c, "failed to replace item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to replace item"})
		return
	}
	if !matched {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (ic *InventoryController) DeleteItem(c *gin.Context) {
	if err := ic.Repo.DeleteItem(c.Request.Context(), c.Param("itemId")); err != nil {
		logger.Error(c, "failed to delete item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}

func (ic *InventoryController) AddQuantity(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive integer"})
		return
	}

	err := ic.Repo.AddQuantity(c.Request.Context(), c.Param("itemId"), req.Amount)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		logger.Error(c, "failed to add quantity", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add quantity"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "quantity updated"})
}

func (ic *InventoryController) SubtractQuantity(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive integer"})
		return
	}

	err := ic.Repo.SubtractQuantity(c.Request.Context(), c.Param("itemId"), req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		case errors.Is(err, repository.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": "insufficient stock"})
		default:
			logger.Error(c, "failed to subtract quantity", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to subtract quantity"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "quantity updated"})
}

func (ic *InventoryController) ChangePrice(c *gin.Context) {
	var req priceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be non-negative"})
		return
	}

	err := ic.Repo.ChangePrice(c.Request.Context(), c.Param("itemId"), req.Price)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		logger.Error(c, "failed to change price", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to change price"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "price updated"})
}

func (ic *InventoryController) GetComments(c *gin.Context) {
	comments, err := ic.Repo.GetComments(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		logger.Error(c, "failed to fetch comments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch comments"})
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	c.JSON(http.StatusOK, comments)
}

func (ic *InventoryController) GetRatings(c *gin.Context) {
	ratings, err := ic.Repo.GetRatings(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		logger.Error(c, "failed to fetch ratings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch ratings"})
		return
	}
	if ratings == nil {
		ratings = []models.Rating{}
	}
	c.JSON(http.StatusOK, ratings)
}
