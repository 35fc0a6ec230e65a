// Package middleware — AdminMiddleware, admin rolü kontrolü.
//
// AuthMiddleware'den SONRA çalışır — context'te user bilgisi mevcuttur.
// User.Role admin değilse → 403 Forbidden.
//
// Kullanım:
//
//	authMw.Require(adminMw.Require(http.HandlerFunc(productHandler.Create)))
package middleware

import (
	"net/http"

	"github.com/akinalp/vitrin/handlers"
	"github.com/akinalp/vitrin/models"
	"github.com/akinalp/vitrin/pkg"
)

// AdminMiddleware, admin rolü zorunlu kılan middleware.
type AdminMiddleware struct{}

// NewAdminMiddleware, constructor.
func NewAdminMiddleware() *AdminMiddleware {
	return &AdminMiddleware{}
}

// Require, admin rolü zorunlu kılan middleware.
// Rol kontrolü JWT claim'inden değil DB'den yüklenen güncel User'dan yapılır —
// token kesilmesinden sonra düşürülen admin yetkiyi anında kaybeder.
func (m *AdminMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(handlers.UserContextKey).(*models.User)
		if !ok {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
			return
		}

		if !user.IsAdmin() {
			pkg.ErrorWithMessage(w, http.StatusForbidden, "admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
