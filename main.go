// Package main, vitrin backend uygulamasının giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//   1.  Config'i yükle
//   2.  Database'i başlat (embedded migration'lar ile)
//   3.  Upload dizinini oluştur
//   4.  Repository'leri oluştur (DB bağlantısı ile)
//   5.  WebSocket Hub'ı başlat
//   6.  Service'leri oluştur (repository'ler + hub ile)
//   7.  Handler'ları oluştur (service'ler ile)
//   8.  Middleware'ları oluştur (service + repo'lar ile)
//   9.  HTTP router'ı kur, route'ları bağla
//  10.  CORS yapılandır
//  11.  HTTP Server'ı başlat
//  12.  Graceful shutdown
//
// Global değişken YOK — her şey bu fonksiyonda oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/akinalp/vitrin/config"
	"github.com/akinalp/vitrin/database"
	"github.com/akinalp/vitrin/handlers"
	"github.com/akinalp/vitrin/middleware"
	"github.com/akinalp/vitrin/models"
	"github.com/akinalp/vitrin/pkg/cache"
	"github.com/akinalp/vitrin/pkg/email"
	"github.com/akinalp/vitrin/pkg/ratelimit"
	"github.com/akinalp/vitrin/repository"
	"github.com/akinalp/vitrin/services"
	"github.com/akinalp/vitrin/ws"
	"github.com/rs/cors"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] vitrin server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d)", cfg.Server.Port)

	// ─── 2. Database ───
	// Migration'lar binary'e gömülüdür (embed.FS) — deploy ederken tek
	// dosya yeter, yanına migrations/ dizini kopyalamak gerekmez.
	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		log.Fatalf("[main] failed to access embedded migrations: %v", err)
	}

	db, err := database.New(cfg.Database.Path, migrationsFS)
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 3. Upload Dizini ───
	if err := os.MkdirAll(cfg.Upload.Dir, 0755); err != nil {
		log.Fatalf("[main] failed to create upload directory: %v", err)
	}

	// ─── 4. Repository Layer ───
	userRepo := repository.NewSQLiteUserRepo(db.Conn)
	sessionRepo := repository.NewSQLiteSessionRepo(db.Conn)
	resetRepo := repository.NewSQLiteResetTokenRepo(db.Conn)
	productRepo := repository.NewSQLiteProductRepo(db.Conn)
	blogRepo := repository.NewSQLiteBlogRepo(db.Conn)
	couponRepo := repository.NewSQLiteCouponRepo(db.Conn)
	imageRepo := repository.NewSQLiteImageRepo(db.Conn)

	// Rating ve reaction repo'ları *sql.DB ister — InTx ile kendi
	// transaction'larını başlatırlar, TxQuerier ile yetinemezler.
	ratingRepo := repository.NewSQLiteRatingRepo(db.Conn)
	reactionRepo := repository.NewSQLiteReactionRepo(db.Conn)

	// ─── 5. WebSocket Hub ───
	//
	// Hub, tüm WebSocket bağlantılarını yöneten merkezi yapıdır.
	// `go hub.Run()` ayrı bir goroutine'de event loop başlatır:
	// register/unregister channel'larını dinler ve client map'ini günceller.
	// Hub aynı zamanda EventPublisher interface'ini implement eder —
	// service'ler hub'a doğrudan bağımlı olmak yerine interface üzerinden erişir.
	hub := ws.NewHub()
	go hub.Run()

	// ─── 6. Service Layer ───
	//
	// Email: RESEND_API_KEY boşsa (dev ortamı) gerçek gönderim yerine
	// reset linkini loglayan sender kullanılır.
	var emailSender email.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		emailSender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromAddress, cfg.Email.AppURL)
	} else {
		log.Println("[main] RESEND_API_KEY not set — password reset emails will be logged instead of sent")
		emailSender = email.NewLogSender(cfg.Email.AppURL)
	}

	authService := services.NewAuthService(
		userRepo,
		sessionRepo,
		resetRepo,
		emailSender,
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*24*time.Hour,
	)

	// Kupon listesi nadiren değişir ama sık okunur — kısa TTL'li cache
	// liste sorgusunu DB'den kopartır. Yazma işlemleri cache'i invalidate eder.
	couponCache := cache.New[string, []*models.Coupon](time.Minute, 5*time.Minute)
	defer couponCache.Close()

	productService := services.NewProductService(productRepo, hub)
	ratingService := services.NewRatingService(ratingRepo, productRepo, hub)
	blogService := services.NewBlogService(blogRepo, hub)
	reactionService := services.NewReactionService(reactionRepo, blogRepo, hub)
	couponService := services.NewCouponService(couponRepo, couponCache, hub)
	uploadService := services.NewUploadService(imageRepo, cfg.Upload.Dir, cfg.Upload.MaxSize)

	// ─── 7. Handler Layer ───
	loginLimiter := ratelimit.NewLoginRateLimiter(5, 15*time.Minute)

	authHandler := handlers.NewAuthHandler(authService, loginLimiter)
	productHandler := handlers.NewProductHandler(productService, ratingService, uploadService)
	blogHandler := handlers.NewBlogHandler(blogService, reactionService, uploadService)
	couponHandler := handlers.NewCouponHandler(couponService)
	wsHandler := ws.NewHandler(hub, authService)

	// ─── 8. Middleware ───
	authMiddleware := middleware.NewAuthMiddleware(authService, userRepo)
	adminMiddleware := middleware.NewAdminMiddleware()

	// Her API isteğine bounded timeout — DB takılırsa istek 504 ile döner.
	// WebSocket endpoint'ine UYGULANMAZ: uzun ömürlü bağlantıdır.
	timeout := middleware.Timeout(cfg.Server.RequestTimeout)

	// ─── 9. HTTP Router ───
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"vitrin"}`)
	})

	// User — public endpoint'ler (token gerekmez)
	mux.Handle("POST /api/user/register", timeout(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /api/user/login", timeout(http.HandlerFunc(authHandler.Login)))
	mux.Handle("POST /api/user/refresh", timeout(http.HandlerFunc(authHandler.Refresh)))
	mux.Handle("POST /api/user/logout", timeout(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("POST /api/user/forgot-password", timeout(http.HandlerFunc(authHandler.ForgotPassword)))
	mux.Handle("PUT /api/user/reset-password", timeout(http.HandlerFunc(authHandler.ResetPassword)))

	// Protected endpoint'ler — authMiddleware.Require() sarar
	mux.Handle("GET /api/user/me", timeout(authMiddleware.Require(
		http.HandlerFunc(authHandler.Me))))

	// Products — okuma herkese açık, yazma işlemleri admin gerektirir
	mux.Handle("GET /api/product", timeout(http.HandlerFunc(productHandler.List)))
	mux.Handle("GET /api/product/{id}", timeout(http.HandlerFunc(productHandler.Get)))
	mux.Handle("POST /api/product", timeout(authMiddleware.Require(
		adminMiddleware.Require(http.HandlerFunc(productHandler.Create)))))
	mux.Handle("PUT /api/product/{id}", timeout(authMiddleware.Require(
		adminMiddleware.Require(http.HandlerFunc(productHandler.Update)))))
	mux.Handle("DELETE /api/product/{id}", timeout(authMiddleware.Require(
		adminMiddleware.Require(http.HandlerFunc(productHandler.Delete)))))

	// Rating — her authenticated kullanıcı oy verebilir
	mux.Handle("POST /api/product/rating", timeout(authMiddleware.Require(
		http.HandlerFunc(productHandler.Rate))))

	// Product görseli yükleme — admin, multipart form
	mux.Handle("PUT /api/product/upload/{id}", timeout(authMiddleware.Require(
		adminMiddleware.Require(http.HandlerFunc(productHandler.Upload)))))

	// Blogs — okuma herkese açık, yazma işlemleri admin gerektirir.
	// GET /api/blog/{id} Optional auth kullanır: token varsa liked_by_me /
	// disliked_by_me o kullanıcıya göre hesaplanır, yoksa anonim devam eder.
	mux.Handle("GET /api/blog", timeout(http.HandlerFunc(blogHandler.GetAll)))
	mux.Handle("GET /api/blog/{id}", timeout(authMiddleware.Optional(
		http.HandlerFunc(blogHandler.Get))))
	mux.Handle("POST /api/blog", timeout(authMiddleware.Require(
		adminMiddleware.Require(http.HandlerFunc(blogHandler.Create)))))
	mux.Handle("PUT /api/blog/{id}", timeout(authMiddleware.Require(
		adminMiddleware.Require(http.HandlerFunc(blogHandler.Update)))))
	mux.Handle("DELETE /api/blog/{id}", timeout(authMiddleware.Require(
		adminMiddleware.Require(http.HandlerFunc(blogHandler.Delete)))))

	// Reactions — her authenticated kullanıcı like/dislike toggle'layabilir
	mux.Handle("PUT /api/blog/likes", timeout(authMiddleware.Require(
		http.HandlerFunc(blogHandler.ToggleLike))))
	mux.Handle("PUT /api/blog/dislikes", timeout(authMiddleware.Require(
		http.HandlerFunc(blogHandler.ToggleDislike))))

	// Blog görseli yükleme — admin, multipart form
	mux.Handle("PUT /api/blog/upload/{id}", timeout(authMiddleware.Require(
		adminMiddleware.Require(http.HandlerFunc(blogHandler.Upload)))))

	// Coupons — tamamı admin-only (kuponlar checkout öncesi gizli kalmalı)
	mux.Handle("POST /api/coupon", timeout(authMiddleware.Require(
		adminMiddleware.Require(http.HandlerFunc(couponHandler.Create)))))
	mux.Handle("GET /api/coupon", timeout(authMiddleware.Require(
		adminMiddleware.Require(http.HandlerFunc(couponHandler.GetAll)))))
	mux.Handle("GET /api/coupon/{id}", timeout(authMiddleware.Require(
		adminMiddleware.Require(http.HandlerFunc(couponHandler.Get)))))
	mux.Handle("PUT /api/coupon/{id}", timeout(authMiddleware.Require(
		adminMiddleware.Require(http.HandlerFunc(couponHandler.Update)))))
	mux.Handle("DELETE /api/coupon/{id}", timeout(authMiddleware.Require(
		adminMiddleware.Require(http.HandlerFunc(couponHandler.Delete)))))

	// Static file serving — yüklenen görsellere erişim
	//
	// http.StripPrefix: URL'den "/api/uploads/" kısmını çıkarır.
	// http.FileServer: Kalan path'i upload dizininde dosya olarak arar.
	// Örnek: GET /api/uploads/abc123_photo.jpg → ./data/uploads/abc123_photo.jpg
	//
	// Path traversal koruması:
	// http.FileServer zaten ".." path'lerini reddeder.
	// Ek güvenlik için sadece dosya isimlerini kabul edip subdirectory'leri reddediyoruz.
	uploadsHandler := http.StripPrefix("/api/uploads/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Güvenlik: sadece düz dosya isimlerini kabul et, subdirectory traversal'ı engelle
		if strings.Contains(r.URL.Path, "/") || strings.Contains(r.URL.Path, "\\") {
			http.NotFound(w, r)
			return
		}
		http.FileServer(http.Dir(cfg.Upload.Dir)).ServeHTTP(w, r)
	}))
	mux.Handle("GET /api/uploads/", uploadsHandler)

	// WebSocket — token query parameter ile authenticate edilir
	//
	// Neden auth middleware kullanmıyoruz?
	// WebSocket upgrade sırasında tarayıcılar custom HTTP header gönderemez.
	// Bu yüzden JWT token URL query parameter olarak gönderilir:
	//   ws://server/ws?token=JWT_TOKEN
	// WS handler kendi içinde token doğrulaması yapar.
	// Timeout middleware de uygulanmaz — bağlantı uzun ömürlüdür.
	mux.HandleFunc("GET /ws", wsHandler.HandleConnection)

	// Süresi dolan refresh session'ları periyodik temizle —
	// aksi halde sessions tablosu sınırsız büyür.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			n, err := sessionRepo.DeleteExpired(context.Background())
			if err != nil {
				log.Printf("[main] session cleanup failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("[main] cleaned up %d expired sessions", n)
			}
		}
	}()

	// ─── 10. CORS ───
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{
			cfg.Email.AppURL,        // frontend public URL
			"http://localhost:3000", // dev server
			"http://localhost:5173", // Vite dev
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		Debug:            false,
	})

	handler := corsHandler.Handler(mux)

	// ─── 11. HTTP Server ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── 12. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	// Önce WebSocket bağlantılarını kapat — client'lar "server shutting down" bilir.
	// Sonra HTTP server'ı kapat — yeni request kabul etmeyi durdurur,
	// mevcut request'lerin bitmesini bekler (5sn timeout).
	hub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}
