package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/vitrin/models"
	"github.com/akinalp/vitrin/pkg"
	"github.com/akinalp/vitrin/services"
)

// ProductHandler, ürün endpoint'lerini yöneten struct.
type ProductHandler struct {
	productService services.ProductService
	ratingService  services.RatingService
	uploadService  services.UploadService
}

// NewProductHandler, constructor.
func NewProductHandler(
	productService services.ProductService,
	ratingService services.RatingService,
	uploadService services.UploadService,
) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		ratingService:  ratingService,
		uploadService:  uploadService,
	}
}

// Create godoc
// POST /api/product (auth+admin)
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, product)
}

// List godoc
// GET /api/product (public)
//
// Query parametreleri: category, brand, price_min, price_max,
// sort (ör: "-price"), page, limit.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query, err := models.ParseProductQuery(r.URL.Query())
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.productService.List(r.Context(), query)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, list)
}

// Get godoc
// GET /api/product/{id} (public)
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.productService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, product)
}

// Update godoc
// PUT /api/product/{id} (auth+admin)
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProductRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, product)
}

// Delete godoc
// DELETE /api/product/{id} (auth+admin)
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.productService.Delete(r.Context(), r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

// Rate godoc
// POST /api/product/rating (auth)
// Body: { "product_id": "...", "star": 1-5 }
//
// Update-or-insert semantiği: kullanıcının mevcut oyu varsa değiştirilir,
// yoksa eklenir. Güncel total_rating'li tam ürün döner.
func (h *ProductHandler) Rate(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.RateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.ratingService.Rate(r.Context(), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, product)
}

// Upload godoc
// PUT /api/product/upload/{id} (auth+admin, multipart/form-data)
// Form field: "image"
func (h *ProductHandler) Upload(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("id")

	// Ürün var mı — yok ürüne görsel bağlanmasın.
	if _, err := h.productService.GetByID(r.Context(), productID); err != nil {
		pkg.Error(w, err)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	image, err := h.uploadService.Upload(r.Context(), models.ImageOwnerProduct, productID, file, header)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, image)
}
