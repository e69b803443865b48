package controllers

import (
	"net/http"

	"vastra-api/middleware"
	"vastra-api/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TryOnController struct {
	svc services.TryOnService
}

func NewTryOnController(svc services.TryOnService) *TryOnController {
	return &TryOnController{svc: svc}
}

type StartTryOnRequest struct {
	GarmentID    uuid.UUID `json:"garment_id" binding:"required"`
	ImageDataURL string    `json:"image_data_url" binding:"required"`
}

// StartTryOn queues a simulated try-on session
func (tc *TryOnController) StartTryOn(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req StartTryOnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	sess, svcErr := tc.svc.Start(c.Request.Context(), userID, services.StartTryOnInput{
		GarmentID:    req.GarmentID,
		ImageDataURL: req.ImageDataURL,
	})
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusAccepted, sess)
}

// GetTryOn polls a try-on session
func (tc *TryOnController) GetTryOn(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid UUID format"})
		return
	}

	sess, svcErr := tc.svc.Get(c.Request.Context(), userID, sessionID)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, sess)
}
