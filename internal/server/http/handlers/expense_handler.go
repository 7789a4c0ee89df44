package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openlodge/clubadmin/internal/domain/model"
	"github.com/openlodge/clubadmin/internal/server/http/dto"
)

// ExpenseHandler manages the reimbursement workflow endpoints.
type ExpenseHandler struct {
	facade ExpenseFacade
}

// NewExpenseHandler constructs ExpenseHandler.
func NewExpenseHandler(facade ExpenseFacade) *ExpenseHandler {
	return &ExpenseHandler{facade: facade}
}

// Submit handles POST /api/expensereport.
func (h *ExpenseHandler) Submit(c *gin.Context) {
	var req dto.SubmitExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	amount, ok := parseAmount(c, req.Amount)
	if !ok {
		return
	}

	claims := CurrentClaims(c)
	report, err := h.facade.SubmitExpense(
		c.Request.Context(),
		claims.MemberID,
		req.Description, amount,
		req.IBAN, req.AccountHolder, req.ReceiptKey,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewExpenseResponse(report))
}

// List handles GET /api/expensereport. Staff may filter by member and
// status; everyone else sees their own reports only.
func (h *ExpenseHandler) List(c *gin.Context) {
	claims := CurrentClaims(c)

	var filter model.ExpenseFilter
	if raw := c.Query("member_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid member_id"})
			return
		}
		filter.MemberID = &id
	}
	if raw := c.Query("status"); raw != "" {
		status := model.ExpenseStatus(raw)
		filter.Status = &status
	}

	reports, err := h.facade.ListExpenses(c.Request.Context(), claims.MemberID, claims.Role, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.ExpenseResponse, 0, len(reports))
	for i := range reports {
		resp = append(resp, dto.NewExpenseResponse(&reports[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/expensereport/:id.
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	claims := CurrentClaims(c)
	report, err := h.facade.GetExpense(c.Request.Context(), id, claims.MemberID, claims.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewExpenseResponse(report))
}

// Approve handles POST /api/admin/expensereport/:id/approve.
func (h *ExpenseHandler) Approve(c *gin.Context) {
	h.decide(c, h.facade.ApproveExpense)
}

// Reject handles POST /api/admin/expensereport/:id/reject.
func (h *ExpenseHandler) Reject(c *gin.Context) {
	h.decide(c, h.facade.RejectExpense)
}

func (h *ExpenseHandler) decide(c *gin.Context, decideFn func(ctx context.Context, id, deciderID int64, note string) (*model.ExpenseReport, error)) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.DecideExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	claims := CurrentClaims(c)
	report, err := decideFn(c.Request.Context(), id, claims.MemberID, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewExpenseResponse(report))
}

// MarkPaid handles POST /api/admin/expensereport/:id/paid.
func (h *ExpenseHandler) MarkPaid(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	report, err := h.facade.MarkExpensePaid(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewExpenseResponse(report))
}
