package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"glowslots/models"
	"glowslots/services/booking"
	"glowslots/services/travel"
	"glowslots/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SlotEngine is the slot search surface the handlers expose.
type SlotEngine interface {
	GenerateSingleStaffSlots(ctx context.Context, vendorID, staffID, date string, services []models.ServiceRequirement, opts booking.Options) ([]models.CandidateSlot, error)
	GenerateAnyStaffSlots(ctx context.Context, vendorID, date string, services []models.ServiceRequirement, opts booking.Options) ([]models.MergedSlot, error)
	GenerateTeamSlots(ctx context.Context, packageID, vendorID, date string, customerLocation *models.GeoPoint, opts booking.Options) ([]models.TeamSlot, error)
	EstimateTravel(ctx context.Context, origin, destination models.GeoPoint, vendorID string, useExternalRouting bool) (models.TravelEstimate, error)
	EstimateTravelBatch(ctx context.Context, destination models.GeoPoint, vendorIDs []string, useExternalRouting bool) ([]travel.BatchResult, error)
	CheckConflict(ctx context.Context, vendorID, staffID, date string, start, end int, excludeID string) (*models.Commitment, error)
}

// ServiceCatalog resolves catalogue ids into service items.
type ServiceCatalog interface {
	GetServiceItems(ctx context.Context, vendorID string, ids []string) ([]models.ServiceItem, error)
}

// SlotHandler serves slot, travel and conflict queries.
type SlotHandler struct {
	Engine  SlotEngine
	Catalog ServiceCatalog
	// DefaultServiceMinutes replaces malformed catalogue durations.
	DefaultServiceMinutes int
}

func NewSlotHandler(engine SlotEngine, catalog ServiceCatalog) *SlotHandler {
	return &SlotHandler{Engine: engine, Catalog: catalog, DefaultServiceMinutes: 60}
}

type servicesInput struct {
	Services   []models.ServiceRequirement `json:"services"`
	ServiceIDs []string                    `json:"serviceIds"`
}

type singleSlotsRequest struct {
	VendorID string `json:"vendorId" binding:"required"`
	StaffID  string `json:"staffId" binding:"required"`
	Date     string `json:"date" binding:"required"`
	servicesInput
	Options booking.Options `json:"options"`
}

type anySlotsRequest struct {
	VendorID string `json:"vendorId" binding:"required"`
	Date     string `json:"date" binding:"required"`
	servicesInput
	Options booking.Options `json:"options"`
}

type teamSlotsRequest struct {
	PackageID        string           `json:"packageId" binding:"required"`
	VendorID         string           `json:"vendorId" binding:"required"`
	Date             string           `json:"date" binding:"required"`
	CustomerLocation *models.GeoPoint `json:"customerLocation"`
	Options          booking.Options  `json:"options"`
}

// resolveServices uses explicit requirements when given, otherwise looks the ids up
// in the vendor's catalogue.
func (h *SlotHandler) resolveServices(ctx context.Context, vendorID string, in servicesInput) ([]models.ServiceRequirement, error) {
	if len(in.Services) > 0 {
		return in.Services, nil
	}
	if len(in.ServiceIDs) == 0 {
		return nil, &booking.ValidationError{Field: "services", Message: "provide services or serviceIds"}
	}
	if h.Catalog == nil {
		return nil, errors.New("service catalogue not configured")
	}
	items, err := h.Catalog.GetServiceItems(ctx, vendorID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	reqs := make([]models.ServiceRequirement, 0, len(items))
	for _, it := range items {
		r, err := it.Requirement(h.DefaultServiceMinutes)
		if err != nil {
			return nil, &booking.ValidationError{Field: "serviceIds", Message: err.Error()}
		}
		reqs = append(reqs, r)
	}
	return reqs, nil
}

func (h *SlotHandler) SingleStaffSlots(c *gin.Context) {
	var req singleSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	ctx := c.Request.Context()
	services, err := h.resolveServices(ctx, req.VendorID, req.servicesInput)
	if err != nil {
		respondError(c, "slot search", err)
		return
	}
	slots, err := h.Engine.GenerateSingleStaffSlots(ctx, req.VendorID, req.StaffID, req.Date, services, req.Options)
	if err != nil {
		respondError(c, "slot search", err)
		return
	}
	getLogger(c).Debug("single staff slots", zap.String("staffId", req.StaffID), zap.Int("count", len(slots)))
	c.JSON(http.StatusOK, gin.H{"date": req.Date, "slots": slots})
}

func (h *SlotHandler) AnyStaffSlots(c *gin.Context) {
	var req anySlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	ctx := c.Request.Context()
	services, err := h.resolveServices(ctx, req.VendorID, req.servicesInput)
	if err != nil {
		respondError(c, "slot search", err)
		return
	}
	slots, err := h.Engine.GenerateAnyStaffSlots(ctx, req.VendorID, req.Date, services, req.Options)
	if err != nil {
		respondError(c, "slot search", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": req.Date, "slots": slots})
}

func (h *SlotHandler) TeamSlots(c *gin.Context) {
	var req teamSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	slots, err := h.Engine.GenerateTeamSlots(c.Request.Context(), req.PackageID, req.VendorID, req.Date, req.CustomerLocation, req.Options)
	if err != nil {
		respondError(c, "team slot search", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": req.Date, "packageId": req.PackageID, "slots": slots})
}

type conflictRequest struct {
	VendorID  string `json:"vendorId"`
	StaffID   string `json:"staffId" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Start     string `json:"start" binding:"required"` // "HH:MM" or "HH:MM AM"
	End       string `json:"end" binding:"required"`
	ExcludeID string `json:"excludeId"`
}

func (h *SlotHandler) CheckConflict(c *gin.Context) {
	var req conflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	start, end, err := parseRange(req.Start, req.End)
	if err != nil {
		respondError(c, "conflict check", err)
		return
	}
	conflict, err := h.Engine.CheckConflict(c.Request.Context(), req.VendorID, req.StaffID, req.Date, start, end, req.ExcludeID)
	if err != nil {
		respondError(c, "conflict check", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conflict": conflict != nil, "commitment": conflict})
}

func parseRange(start, end string) (int, int, error) {
	s, err := toMinutes("start", start)
	if err != nil {
		return 0, 0, err
	}
	e, err := toMinutes("end", end)
	if err != nil {
		return 0, 0, err
	}
	return s, e, nil
}

func toMinutes(field, value string) (int, error) {
	m, err := utils.ToMinutes(value)
	if err != nil {
		return 0, &booking.ValidationError{Field: field, Message: fmt.Sprintf("%q is not a time of day", value)}
	}
	return m, nil
}
