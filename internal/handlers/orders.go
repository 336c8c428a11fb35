package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabpaderog/maxicoffee-admin/internal/models"
	"github.com/gabpaderog/maxicoffee-admin/internal/workflow"
)

// OrderActionsHandler exposes the two fulfillment action endpoints the
// order detail page drives.
type OrderActionsHandler struct {
	Fulfillment *workflow.Fulfillment
}

// UpdateStatus handles PATCH /orders/:id/status. The target status selects
// the transition; the workflow enforces ordering and the discount gate.
func (h *OrderActionsHandler) UpdateStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, ok, err := h.Fulfillment.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var updated models.Order
	switch req.Status {
	case models.StatusReady:
		updated, err = h.Fulfillment.MarkReady(c.Request.Context(), order)
	case models.StatusCompleted:
		updated, err = h.Fulfillment.Complete(c.Request.Context(), order)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown target status"})
		return
	}
	if err != nil {
		writeWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// ApplyDiscount handles PATCH /orders/:id/apply-discount, the verification
// step confirming the customer's eligibility before the discount lands on
// the total.
func (h *OrderActionsHandler) ApplyDiscount(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	order, ok, err := h.Fulfillment.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	updated, err := h.Fulfillment.VerifyDiscount(c.Request.Context(), order)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// writeWorkflowError distinguishes rejected transitions from a transition
// the upstream refused to persist.
func writeWorkflowError(c *gin.Context, err error) {
	if errors.Is(err, workflow.ErrInvalidTransition) || errors.Is(err, workflow.ErrVerificationRequired) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}
