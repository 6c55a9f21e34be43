package handlers

import (
	"net/http"
	"strconv"

	"betting-ledger/internal/auth"
	"betting-ledger/internal/models"
	"betting-ledger/internal/services"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventService      *services.EventService
	resolutionService *services.ResolutionService
	oddsService       *services.OddsService
}

func NewEventHandler(
	eventService *services.EventService,
	resolutionService *services.ResolutionService,
	oddsService *services.OddsService,
) *EventHandler {
	return &EventHandler{
		eventService:      eventService,
		resolutionService: resolutionService,
		oddsService:       oddsService,
	}
}

// CreateEvent opens a new betting event
// POST /api/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	creatorID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), creatorID, req.Name, req.NumCandidates)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, event)
}

// GetEvent retrieves an event by its ledger index
// GET /api/events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	event, err := h.eventService.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, event)
}

// ListEvents pages through the event catalog
// GET /api/events
func (h *EventHandler) ListEvents(c *gin.Context) {
	limit, offset := pagination(c)

	events, total, err := h.eventService.ListEvents(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"total":  total,
	})
}

// GetEventCount returns the number of events ever created
// GET /api/events/count
func (h *EventHandler) GetEventCount(c *gin.Context) {
	count, err := h.eventService.EventCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// CloseBetting closes betting on an event (creator only)
// POST /api/events/:id/close
func (h *EventHandler) CloseBetting(c *gin.Context) {
	callerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	if err := h.eventService.CloseBetting(c.Request.Context(), eventID, callerID); err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"event_id": eventID, "is_open": false})
}

// ResolveEvent declares the winning candidate (creator only)
// POST /api/events/:id/resolve
func (h *EventHandler) ResolveEvent(c *gin.Context) {
	callerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	var req models.ResolveEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.resolutionService.ResolveEvent(c.Request.Context(), eventID, callerID, *req.Winner); err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"event_id": eventID, "resolved": true, "winner": *req.Winner})
}

// GetEventOdds returns display odds derived from the pool totals
// GET /api/events/:id/odds
func (h *EventHandler) GetEventOdds(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	odds, err := h.oddsService.GetEventOdds(c.Request.Context(), eventID)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"event_id": eventID, "odds": odds})
}

// pagination parses the limit/offset query params with sane bounds
func pagination(c *gin.Context) (int, int) {
	limit := 20
	offset := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	return limit, offset
}
