package handlers

import (
	"net/http"

	"glowslots/models"

	"github.com/gin-gonic/gin"
)

type travelRequest struct {
	VendorID           string          `json:"vendorId" binding:"required"`
	Origin             models.GeoPoint `json:"origin"`
	Destination        models.GeoPoint `json:"destination"`
	UseExternalRouting *bool           `json:"useExternalRouting"`
}

type travelBatchRequest struct {
	VendorIDs          []string        `json:"vendorIds" binding:"required,min=1"`
	Destination        models.GeoPoint `json:"destination"`
	UseExternalRouting *bool           `json:"useExternalRouting"`
}

type batchItem struct {
	VendorID string                 `json:"vendorId"`
	Estimate *models.TravelEstimate `json:"estimate,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

func useExternal(flag *bool) bool {
	return flag == nil || *flag
}

func (h *SlotHandler) EstimateTravel(c *gin.Context) {
	var req travelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	est, err := h.Engine.EstimateTravel(c.Request.Context(), req.Origin, req.Destination, req.VendorID, useExternal(req.UseExternalRouting))
	if err != nil {
		respondError(c, "travel estimate", err)
		return
	}
	c.JSON(http.StatusOK, est)
}

func (h *SlotHandler) EstimateTravelBatch(c *gin.Context) {
	var req travelBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	results, err := h.Engine.EstimateTravelBatch(c.Request.Context(), req.Destination, req.VendorIDs, useExternal(req.UseExternalRouting))
	if err != nil {
		respondError(c, "travel estimate", err)
		return
	}
	items := make([]batchItem, len(results))
	for i, r := range results {
		items[i] = batchItem{VendorID: r.VendorID, Estimate: r.Estimate, Error: errorMessage(r.Err)}
	}
	c.JSON(http.StatusOK, gin.H{"results": items})
}
