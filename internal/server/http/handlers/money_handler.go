package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openlodge/clubadmin/internal/domain/model"
	"github.com/openlodge/clubadmin/internal/server/http/dto"
	"github.com/openlodge/clubadmin/internal/usecase"
)

// MoneyHandler manages the ledger endpoints under /api/admin/money.
type MoneyHandler struct {
	facade MoneyFacade
}

// NewMoneyHandler constructs MoneyHandler.
func NewMoneyHandler(facade MoneyFacade) *MoneyHandler {
	return &MoneyHandler{facade: facade}
}

// List handles GET /api/admin/money.
func (h *MoneyHandler) List(c *gin.Context) {
	from, to, err := usecase.ParseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}

	filter := model.LedgerFilter{From: from, To: to}
	if kind := c.Query("kind"); kind != "" {
		k := model.EntryKind(kind)
		filter.Kind = &k
	}
	if raw := c.Query("member_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid member_id"})
			return
		}
		filter.MemberID = &id
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "25"))

	entries, totals, err := h.facade.Ledger(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.LedgerListResponse{
		Entries: make([]dto.LedgerEntryResponse, 0, len(entries)),
		Totals:  dto.NewTotalsResponse(totals),
	}
	for i := range entries {
		resp.Entries = append(resp.Entries, dto.NewLedgerEntryResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Payment handles POST /api/admin/money/payments.
func (h *MoneyHandler) Payment(c *gin.Context) {
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	amount, ok := parseAmount(c, req.Amount)
	if !ok {
		return
	}

	entry, err := h.facade.RecordPayment(c.Request.Context(), req.MemberID, amount, req.Reference, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewLedgerEntryResponse(entry))
}

// Refund handles POST /api/admin/money/refunds.
func (h *MoneyHandler) Refund(c *gin.Context) {
	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	amount, ok := parseAmount(c, req.Amount)
	if !ok {
		return
	}

	entry, err := h.facade.Refund(c.Request.Context(), req.MemberID, amount, req.Reference)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewLedgerEntryResponse(entry))
}

// Credit handles POST /api/admin/money/credits.
func (h *MoneyHandler) Credit(c *gin.Context) {
	var req dto.CreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	amount, ok := parseAmount(c, req.Amount)
	if !ok {
		return
	}

	entry, err := h.facade.RecordCredit(c.Request.Context(), req.MemberID, amount, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewLedgerEntryResponse(entry))
}

// Summary handles GET /api/admin/money/summary.
func (h *MoneyHandler) Summary(c *gin.Context) {
	raw := c.Query("member_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid member_id"})
		return
	}

	totals, err := h.facade.MemberSummary(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTotalsResponse(totals))
}
