package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/webshoplabs/webshop-backend/services/comments-service/models"
	"github.com/webshoplabs/webshop-backend/services/comments-service/repository"
	"github.com/webshoplabs/webshop-backend/services/common/logger"
)

type CommentController struct {
	Comments repository.CommentRepository
	Ratings  repository.RatingRepository
	now      func() time.Time
}

func NewCommentController(comments repository.CommentRepository, ratings repository.RatingRepository) *CommentController {
	return &CommentController{Comments: comments, Ratings: ratings, now: time.Now}
}

func (cc *CommentController) AddComment(c *gin.Context) {
	var comment models.Comment
	if err := c.ShouldBindJSON(&comment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment payload"})
		return
	}
	if err := comment.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment.ID = uuid.NewString()
	comment.CreatedAt = cc.now()

	if err := cc.Comments.AddComment(c.Request.Context(), &comment); err != nil {
		if errors.Is(err, repository.ErrDuplicateComment) {
			c.JSON(http.StatusConflict, gin.H{"error": "user has already commented on this item"})
			return
		}
		logger.Error(c, "failed to add comment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add comment"})
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (cc *CommentController) UpdateComment(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text must not be empty"})
		return
	}

	err := cc.Comments.UpdateCommentText(c.Request.Context(), c.Param("commentId"), req.Text)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
			return
		}
		logger.Error(c, "failed to update comment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update comment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment updated"})
}

func (cc *CommentController) GetCommentsByItem(c *gin.Context) {
	comments, err := cc.Comments.GetCommentsByItemID(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		logger.Error(c, "failed to fetch comments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch comments"})
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	c.JSON(http.StatusOK, comments)
}

func (cc *CommentController) GetCommentsByUser(c *gin.Context) {
	comments, err := cc.Comments.GetCommentsByUserID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		logger.Error(c, "failed to fetch comments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch comments"})
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	c.JSON(http.StatusOK, comments)
}

func (cc *CommentController) DeleteComment(c *gin.Context) {
	if err := cc.Comments.DeleteComment(c.Request.Context(), c.Param("commentId")); err != nil {
		logger.Error(c, "failed to delete comment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete comment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

func (cc *CommentController) AddRating(c *gin.Context) {
	var rating models.Rating
	if err := c.ShouldBindJSON(&rating); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rating payload"})
		return
	}
	if err := rating.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating.ID = uuid.NewString()

	if err := cc.Ratings.AddRating(c.Request.Context(), &rating); err != nil {
		if errors.Is(err, repository.ErrDuplicateRating) {
			c.JSON(http.StatusConflict, gin.H{"error": "user has already rated this item"})
			return
		}
		logger.Error(c, "failed to add rating", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add rating"})
		return
	}
	c.JSON(http.StatusCreated, rating)
}

func (cc *CommentController) GetRatingsByItem(c *gin.Context) {
	ratings, err := cc.Ratings.GetRatingsByItemID(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		logger.Error(c, "failed to fetch ratings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch ratings"})
		return
	}
	if ratings == nil {
		ratings = []models.Rating{}
	}
	c.JSON(http.StatusOK, ratings)
}

func (cc *CommentController) DeleteRating(c *gin.Context) {
	if err := cc.Ratings.DeleteRating(c.Request.Context(), c.Param("ratingId")); err != nil {
		logger.Error(c, "failed to delete rating", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete rating"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "rating deleted"})
}
