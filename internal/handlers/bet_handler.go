package handlers

import (
	"net/http"
	"strconv"

	"betting-ledger/internal/auth"
	"betting-ledger/internal/models"
	"betting-ledger/internal/services"

	"github.com/gin-gonic/gin"
)

type BetHandler struct {
	betService    *services.BetService
	payoutService *services.PayoutService
}

func NewBetHandler(betService *services.BetService, payoutService *services.PayoutService) *BetHandler {
	return &BetHandler{
		betService:    betService,
		payoutService: payoutService,
	}
}

// PlaceBet stakes an amount on a candidate of an open event
// POST /api/events/:id/bets
func (h *BetHandler) PlaceBet(c *gin.Context) {
	bettorID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	var req models.PlaceBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bet, err := h.betService.PlaceBet(c.Request.Context(), eventID, bettorID, *req.Candidate, req.Amount)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, bet)
}

// GetUserBet returns a user's bet on an event; "bet" is null when the user
// never staked, which is distinct from any real bet
// GET /api/events/:id/bets/:userId
func (h *BetHandler) GetUserBet(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	bet, err := h.betService.GetUserBet(c.Request.Context(), eventID, uint(userID))
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.UserBetResponse{
		EventID: eventID,
		UserID:  uint(userID),
		Bet:     bet,
	})
}

// GetEventTotals returns one pool total per candidate in index order
// GET /api/events/:id/totals
func (h *BetHandler) GetEventTotals(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	totals, err := h.betService.GetEventTotalBets(c.Request.Context(), eventID)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"event_id": eventID, "totals": totals})
}

// GetCandidateTotal returns one candidate's pool total
// GET /api/events/:id/totals/:candidate
func (h *BetHandler) GetCandidateTotal(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	candidate, err := strconv.Atoi(c.Param("candidate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid candidate"})
		return
	}

	total, err := h.betService.GetTotalBetsOnCandidate(c.Request.Context(), eventID, candidate)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"event_id": eventID, "candidate": candidate, "total": total})
}

// ClaimWinnings pays out the caller's winning bet
// POST /api/events/:id/claim
func (h *BetHandler) ClaimWinnings(c *gin.Context) {
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

	payout, err := h.payoutService.ClaimWinnings(c.Request.Context(), eventID, callerID)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.ClaimResponse{EventID: eventID, Payout: payout})
}

// GetMyBets returns all of the caller's bets across events
// GET /api/user/bets
func (h *BetHandler) GetMyBets(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit, offset := pagination(c)

	bets, total, err := h.betService.GetUserBets(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get bets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bets":  bets,
		"total": total,
	})
}
