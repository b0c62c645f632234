package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketplace/models"
	"marketplace/repositories"
	"marketplace/services"
)

type ReviewController struct {
	reviewService *services.ReviewService
}

func NewReviewController(reviewService *services.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// @Summary List reviews
// @Tags Reviews
// @Produce json
// @Param productId query int false "Filter by product"
// @Param userId query int false "Filter by user"
// @Success 200 {object} models.Response
// @Router /reviews [get]
func (ctrl *ReviewController) GetReviews(c *gin.Context) {
	productID, _ := strconv.Atoi(c.Query("productId"))
	userID, _ := strconv.Atoi(c.Query("userId"))

	reviews := ctrl.reviewService.GetReviews(productID, userID)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    reviews,
	})
}

// @Summary Get review by ID
// @Tags Reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews/{id} [get]
func (ctrl *ReviewController) GetReviewByID(c *gin.Context) {
	review, err := ctrl.reviewService.GetReviewByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Review not found",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    review,
	})
}

// @Summary Create review
// @Tags Reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateReviewRequest true "Review"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews [post]
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	review, err := ctrl.reviewService.CreateReview(userID, req)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrProductNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Message: "Product not found",
			})
		case errors.Is(err, services.ErrAlreadyReviewed):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Message: err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Success: false,
				Message: "Failed to create review",
				Error:   err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Review created successfully",
		Data:    review,
	})
}

// @Summary Update review
// @Tags Reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Param request body models.UpdateReviewRequest true "Fields to update"
// @Success 200 {object} models.Response
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews/{id} [put]
func (ctrl *ReviewController) UpdateReview(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	review, err := ctrl.reviewService.UpdateReview(userID, c.Param("id"), req)
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Review updated successfully",
		Data:    review,
	})
}

// @Summary Delete review
// @Tags Reviews
// @Security BearerAuth
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} models.Response
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews/{id} [delete]
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	userID := c.GetInt("user_id")
	role := c.GetString("user_role")

	if err := ctrl.reviewService.DeleteReview(userID, role, c.Param("id")); err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Review deleted successfully",
	})
}

func respondReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Review not found",
		})
	case errors.Is(err, services.ErrNotReviewOwner):
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Success: false,
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Internal server error",
			Error:   err.Error(),
		})
	}
}
