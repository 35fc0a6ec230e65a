// Package middleware — Timeout, her request'in context'ine üst sınır koyar.
package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout, request context'ini verilen süreyle sınırlar.
//
// DB sorguları ve harici servis çağrıları context'i taşıdığı için
// süre dolduğunda zincirdeki ilk bloklayan operasyon
// context.DeadlineExceeded ile döner — response katmanı bunu 504'e çevirir.
//
// WebSocket upgrade endpoint'ine UYGULANMAZ — kalıcı bağlantılar
// request timeout'una tabi değildir.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
