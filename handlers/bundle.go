package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the endpoint handlers handed to the router.
type HandlerBundle struct {
	// Slot endpoints
	SingleStaffSlotsHandler gin.HandlerFunc
	AnyStaffSlotsHandler    gin.HandlerFunc
	TeamSlotsHandler        gin.HandlerFunc

	// Travel endpoints
	EstimateTravelHandler      gin.HandlerFunc
	EstimateTravelBatchHandler gin.HandlerFunc

	CheckConflictHandler gin.HandlerFunc
}

func NewHandlerBundle(h *SlotHandler) *HandlerBundle {
	return &HandlerBundle{
		SingleStaffSlotsHandler:    h.SingleStaffSlots,
		AnyStaffSlotsHandler:       h.AnyStaffSlots,
		TeamSlotsHandler:           h.TeamSlots,
		EstimateTravelHandler:      h.EstimateTravel,
		EstimateTravelBatchHandler: h.EstimateTravelBatch,
		CheckConflictHandler:       h.CheckConflict,
	}
}
