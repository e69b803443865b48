package controllers

import (
	"net/http"

	"vastra-api/middleware"
	"vastra-api/services"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	svc services.CheckoutService
}

func NewCheckoutController(svc services.CheckoutService) *CheckoutController {
	return &CheckoutController{svc: svc}
}

// Checkout places an order from the session user's cart. An Idempotency-Key
// header makes retries safe.
func (cc *CheckoutController) Checkout(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	idempotencyKey := c.GetHeader("Idempotency-Key")

	order, svcErr := cc.svc.Checkout(c.Request.Context(), userID, idempotencyKey)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Checkout successful",
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total_paise":  order.TotalPaise,
	})
}
