package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/openlodge/clubadmin/internal/domain/errors"
	"github.com/openlodge/clubadmin/internal/domain/model"
	"github.com/openlodge/clubadmin/internal/server/http/dto"
)

// PostsHandler manages the CMS endpoints under /api/admin/posts.
type PostsHandler struct {
	facade PostFacade
}

// NewPostsHandler constructs PostsHandler.
func NewPostsHandler(facade PostFacade) *PostsHandler {
	return &PostsHandler{facade: facade}
}

// Create handles POST /api/admin/posts.
func (h *PostsHandler) Create(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	claims := CurrentClaims(c)
	post, err := h.facade.CreatePost(c.Request.Context(), claims.MemberID, req.Title, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewPostResponse(post))
}

// List handles GET /api/admin/posts.
func (h *PostsHandler) List(c *gin.Context) {
	var state *model.PostState
	if raw := c.Query("state"); raw != "" {
		s := model.PostState(raw)
		state = &s
	}

	posts, err := h.facade.ListPosts(c.Request.Context(), state)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		resp = append(resp, dto.NewPostResponse(&posts[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/admin/posts/:id.
func (h *PostsHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	post, err := h.facade.GetPost(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPostResponse(post))
}

// SaveDraft handles PUT /api/admin/posts/:id/draft, the autosave. A
// stale revision answers 409 together with the current server copy.
func (h *PostsHandler) SaveDraft(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	post, err := h.facade.SaveDraft(c.Request.Context(), id, model.PostDraft{
		Title:    req.Title,
		Body:     req.Body,
		Revision: req.Revision,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrRevisionConflict) && post != nil {
			c.JSON(http.StatusConflict, dto.DraftConflictResponse{
				Error:   "revision conflict",
				Current: dto.NewPostResponse(post),
			})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPostResponse(post))
}

// Publish handles POST /api/admin/posts/:id/publish.
func (h *PostsHandler) Publish(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	post, err := h.facade.PublishPost(c.Request.Context(), id)
	if err != nil {
		// Publishing twice is a conflict with the current state, not a
		// malformed request.
		if errors.Is(err, domainErrors.ErrInvalidStateTransition) {
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "post already published"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPostResponse(post))
}

// Unpublish handles POST /api/admin/posts/:id/unpublish.
func (h *PostsHandler) Unpublish(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	post, err := h.facade.UnpublishPost(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidStateTransition) {
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "post not published"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPostResponse(post))
}
