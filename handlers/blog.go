package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/vitrin/models"
	"github.com/akinalp/vitrin/pkg"
	"github.com/akinalp/vitrin/services"
)

// BlogHandler, blog endpoint'lerini yöneten struct.
type BlogHandler struct {
	blogService     services.BlogService
	reactionService services.ReactionService
	uploadService   services.UploadService
}

// NewBlogHandler, constructor.
func NewBlogHandler(
	blogService services.BlogService,
	reactionService services.ReactionService,
	uploadService services.UploadService,
) *BlogHandler {
	return &BlogHandler{
		blogService:     blogService,
		reactionService: reactionService,
		uploadService:   uploadService,
	}
}

// Create godoc
// POST /api/blog (auth+admin)
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBlogRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	blog, err := h.blogService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, blog)
}

// GetAll godoc
// GET /api/blog (public)
func (h *BlogHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogService.GetAll(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, blogs)
}

// Get godoc
// GET /api/blog/{id} (public, optional auth)
//
// Her çağrı num_views'i 1 artırır. Giriş yapmış okuyucu için
// liked_by_me/disliked_by_me bayrakları türetilir.
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := ""
	if user, ok := CurrentUser(r); ok {
		userID = user.ID
	}

	blog, err := h.blogService.Get(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, blog)
}

// Update godoc
// PUT /api/blog/{id} (auth+admin)
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateBlogRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	blog, err := h.blogService.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, blog)
}

// Delete godoc
// DELETE /api/blog/{id} (auth+admin)
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.blogService.Delete(r.Context(), r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "blog deleted"})
}

// ToggleLike godoc
// PUT /api/blog/likes (auth)
// Body: { "blog_id": "..." }
func (h *BlogHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	h.toggleReaction(w, r, models.ReactionLike)
}

// ToggleDislike godoc
// PUT /api/blog/dislikes (auth)
// Body: { "blog_id": "..." }
func (h *BlogHandler) ToggleDislike(w http.ResponseWriter, r *http.Request) {
	h.toggleReaction(w, r, models.ReactionDislike)
}

// toggleReaction, ortak toggle handler akışı. Güncel blog döner.
func (h *BlogHandler) toggleReaction(w http.ResponseWriter, r *http.Request, kind models.ReactionKind) {
	user, ok := CurrentUser(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.ReactionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	var blog *models.Blog
	var err error
	if kind == models.ReactionLike {
		blog, err = h.reactionService.ToggleLike(r.Context(), req.BlogID, user.ID)
	} else {
		blog, err = h.reactionService.ToggleDislike(r.Context(), req.BlogID, user.ID)
	}
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, blog)
}

// Upload godoc
// PUT /api/blog/upload/{id} (auth+admin, multipart/form-data)
// Form field: "image"
func (h *BlogHandler) Upload(w http.ResponseWriter, r *http.Request) {
	blogID := r.PathValue("id")

	// Blog var mı — yok bloga görsel bağlanmasın.
	if _, err := h.blogService.GetByID(r.Context(), blogID); err != nil {
		pkg.Error(w, err)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	image, err := h.uploadService.Upload(r.Context(), models.ImageOwnerBlog, blogID, file, header)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, image)
}
