package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/vitrin/models"
	"github.com/akinalp/vitrin/pkg"
	"github.com/akinalp/vitrin/services"
)

// CouponHandler, kupon endpoint'lerini yöneten struct.
// Tüm endpoint'ler auth+admin gerektirir — kuponlar yönetim panelinden yönetilir.
type CouponHandler struct {
	couponService services.CouponService
}

// NewCouponHandler, constructor.
func NewCouponHandler(couponService services.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

// Create godoc
// POST /api/coupon (auth+admin)
func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCouponRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	coupon, err := h.couponService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, coupon)
}

// GetAll godoc
// GET /api/coupon (auth+admin)
func (h *CouponHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.couponService.GetAll(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, coupons)
}

// Get godoc
// GET /api/coupon/{id} (auth+admin)
func (h *CouponHandler) Get(w http.ResponseWriter, r *http.Request) {
	coupon, err := h.couponService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, coupon)
}

// Update godoc
// PUT /api/coupon/{id} (auth+admin)
func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCouponRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	coupon, err := h.couponService.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, coupon)
}

// Delete godoc
// DELETE /api/coupon/{id} (auth+admin)
func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.couponService.Delete(r.Context(), r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "coupon deleted"})
}
