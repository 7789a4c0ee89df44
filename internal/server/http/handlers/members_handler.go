package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openlodge/clubadmin/internal/domain/model"
	"github.com/openlodge/clubadmin/internal/server/http/dto"
)

// MembersHandler manages the roster endpoints under /api/admin/users.
type MembersHandler struct {
	facade MemberFacade
}

// NewMembersHandler constructs MembersHandler.
func NewMembersHandler(facade MemberFacade) *MembersHandler {
	return &MembersHandler{facade: facade}
}

// List handles GET /api/admin/users.
func (h *MembersHandler) List(c *gin.Context) {
	filter := model.MemberFilter{
		Query: c.Query("q"),
	}
	for _, s := range c.QueryArray("state") {
		filter.States = append(filter.States, model.MemberState(s))
	}
	for _, r := range c.QueryArray("role") {
		filter.Roles = append(filter.Roles, model.Role(r))
	}
	filter.BoardPositions = c.QueryArray("board_position")
	for _, t := range c.QueryArray("membership_type") {
		filter.MembershipTypes = append(filter.MembershipTypes, model.MembershipType(t))
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "25"))

	members, total, err := h.facade.ListMembers(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.MemberListResponse{
		Members: make([]dto.MemberResponse, 0, len(members)),
		Total:   total,
		Page:    filter.Page,
		PerPage: filter.PerPage,
	}
	for i := range members {
		resp.Members = append(resp.Members, dto.NewMemberResponse(&members[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Create handles POST /api/admin/users.
func (h *MembersHandler) Create(c *gin.Context) {
	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	role := model.Role(req.Role)
	if role == "" {
		role = model.RoleMember
	}

	member, err := h.facade.CreateMember(
		c.Request.Context(),
		req.Email, req.Name, req.Password,
		role, model.MembershipType(req.MembershipType),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewMemberResponse(member))
}

// Get handles GET /api/admin/users/:id.
func (h *MembersHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	detail, err := h.facade.GetMember(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.MemberDetailResponse{
		MemberResponse: dto.NewMemberResponse(detail.Member),
		Totals:         dto.NewTotalsResponse(detail.Totals),
	}
	if detail.Subscription != nil {
		resp.Subscription = dto.NewSubscriptionResponse(detail.Subscription)
	}
	c.JSON(http.StatusOK, resp)
}

// Update handles PATCH /api/admin/users/:id.
func (h *MembersHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	patch := model.MemberPatch{Name: req.Name}
	if req.Role != nil {
		role := model.Role(*req.Role)
		patch.Role = &role
	}
	if req.State != nil {
		state := model.MemberState(*req.State)
		patch.State = &state
	}
	if req.BoardPosition != nil {
		if *req.BoardPosition == "" {
			patch.ClearBoard = true
		} else {
			patch.BoardPosition = req.BoardPosition
		}
	}
	if req.MembershipType != nil {
		mt := model.MembershipType(*req.MembershipType)
		patch.MembershipType = &mt
	}

	member, err := h.facade.UpdateMember(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMemberResponse(member))
}

// ChangePlan handles POST /api/admin/users/:id/subscription.
func (h *MembersHandler) ChangePlan(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	sub, err := h.facade.ChangePlan(c.Request.Context(), id, model.MembershipType(req.Plan))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSubscriptionResponse(sub))
}
