package handlers

import (
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"raffle/internal/raffle"
)

// HTTPHandler exposes the raffle operations over HTTP. The platform gateway
// in front of this service verifies request signatures; by the time a
// request arrives here the caller identity in X-Caller-Address is trusted.
type HTTPHandler struct {
	service *raffle.Service
}

func NewHTTPHandler(service *raffle.Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// RegisterRoutes registers all the operation routes.
func (h *HTTPHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.POST("/config", h.BootstrapConfig)
	api.POST("/raffles", h.CreateRaffle)
	api.GET("/raffles/:address", h.GetRaffle)
	api.POST("/raffles/:address/ticket-balances", h.OpenTicketBalance)
	api.POST("/raffles/:address/tickets", h.BuyTickets)
	api.POST("/raffles/:address/draw", h.DrawWinner)
	api.POST("/raffles/:address/winner", h.SetWinner)
	api.POST("/raffles/:address/expire", h.ExpireRaffle)
	api.POST("/raffles/:address/reclaim", h.ReclaimTickets)
	api.POST("/raffles/:address/withdraw", h.WithdrawTreasury)
	api.POST("/raffles/:address/winner-data", h.SubmitWinnerData)
}

func caller(c *gin.Context) (string, bool) {
	address := c.GetHeader("X-Caller-Address")
	if address == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing X-Caller-Address"})
		return "", false
	}
	return address, true
}

func parseSeed(value string) ([8]byte, error) {
	var seed [8]byte
	raw, err := hex.DecodeString(value)
	if err != nil || len(raw) != len(seed) {
		return seed, errors.New("seed must be 8 bytes of hex")
	}
	copy(seed[:], raw)
	return seed, nil
}

// statusFor maps the core's error taxonomy onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case raffle.IsValidation(err), errors.Is(err, raffle.ErrOverflow):
		return http.StatusBadRequest
	case raffle.IsAuthorization(err):
		return http.StatusForbidden
	case raffle.IsNotFound(err):
		return http.StatusNotFound
	case raffle.IsState(err):
		return http.StatusConflict
	case errors.Is(err, raffle.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, raffle.ErrTransferFailed):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

type bootstrapConfigRequest struct {
	PayoutAuthority     string `json:"payout_authority" binding:"required"`
	ManagementAuthority string `json:"management_authority" binding:"required"`
}

func (h *HTTPHandler) BootstrapConfig(c *gin.Context) {
	callerAddress, ok := caller(c)
	if !ok {
		return
	}

	var req bootstrapConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	address, err := h.service.BootstrapConfig(c.Request.Context(), callerAddress, req.PayoutAuthority, req.ManagementAuthority)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"config": address})
}

type createRaffleRequest struct {
	MetadataURI string  `json:"metadata_uri" binding:"required"`
	TicketPrice uint64  `json:"ticket_price" binding:"required"`
	EndTime     int64   `json:"end_time" binding:"required"`
	MinTickets  uint64  `json:"min_tickets" binding:"required"`
	MaxTickets  *uint64 `json:"max_tickets"`
}

func (h *HTTPHandler) CreateRaffle(c *gin.Context) {
	callerAddress, ok := caller(c)
	if !ok {
		return
	}

	var req createRaffleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	address, err := h.service.CreateRaffle(c.Request.Context(), callerAddress, raffle.CreateRaffleParams{
		MetadataURI: req.MetadataURI,
		TicketPrice: req.TicketPrice,
		EndTime:     req.EndTime,
		MinTickets:  req.MinTickets,
		MaxTickets:  req.MaxTickets,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"raffle": address})
}

func (h *HTTPHandler) GetRaffle(c *gin.Context) {
	record, err := h.service.GetRaffle(c.Request.Context(), c.Param("address"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"raffle": record,
		"state":  record.State.String(),
	})
}

func (h *HTTPHandler) OpenTicketBalance(c *gin.Context) {
	callerAddress, ok := caller(c)
	if !ok {
		return
	}

	address, err := h.service.OpenTicketBalance(c.Request.Context(), callerAddress, c.Param("address"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ticket_balance": address})
}

// TicketCount carries no "required" binding; a zero count must reach the
// core's own count check.
type buyTicketsRequest struct {
	TicketCount uint64 `json:"ticket_count"`
	Seed        string `json:"seed" binding:"required"`
}

func (h *HTTPHandler) BuyTickets(c *gin.Context) {
	callerAddress, ok := caller(c)
	if !ok {
		return
	}

	var req buyTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	seed, err := parseSeed(req.Seed)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.service.BuyTickets(c.Request.Context(), callerAddress, c.Param("address"), req.TicketCount, seed)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

func (h *HTTPHandler) DrawWinner(c *gin.Context) {
	winningTicket, err := h.service.DrawWinner(c.Request.Context(), c.Param("address"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"winning_ticket": winningTicket})
}

type setWinnerRequest struct {
	Seed string `json:"seed" binding:"required"`
}

func (h *HTTPHandler) SetWinner(c *gin.Context) {
	var req setWinnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	seed, err := parseSeed(req.Seed)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	winner, err := h.service.SetWinner(c.Request.Context(), c.Param("address"), seed)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"winner": winner})
}

func (h *HTTPHandler) ExpireRaffle(c *gin.Context) {
	if err := h.service.ExpireRaffle(c.Request.Context(), c.Param("address")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": raffle.StateExpired.String()})
}

func (h *HTTPHandler) ReclaimTickets(c *gin.Context) {
	callerAddress, ok := caller(c)
	if !ok {
		return
	}

	refund, err := h.service.ReclaimTickets(c.Request.Context(), callerAddress, c.Param("address"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"refund_amount": refund})
}

func (h *HTTPHandler) WithdrawTreasury(c *gin.Context) {
	callerAddress, ok := caller(c)
	if !ok {
		return
	}

	amount, err := h.service.WithdrawTreasury(c.Request.Context(), callerAddress, c.Param("address"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount": amount})
}

type submitWinnerDataRequest struct {
	Data string `json:"data" binding:"required"`
}

func (h *HTTPHandler) SubmitWinnerData(c *gin.Context) {
	callerAddress, ok := caller(c)
	if !ok {
		return
	}

	var req submitWinnerDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.SubmitWinnerData(c.Request.Context(), callerAddress, c.Param("address"), []byte(req.Data)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": raffle.StateClaimed.String()})
}
