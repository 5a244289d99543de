package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "iotmarket/docs"
	"iotmarket/pkg/clock"
	"iotmarket/pkg/db"
	"iotmarket/pkg/events"
	"iotmarket/pkg/identity"
	"iotmarket/pkg/ledger"
	"iotmarket/pkg/marketplace"
	"iotmarket/pkg/notify"
	"iotmarket/pkg/response"
)

// @title           IoT Asset Leasing Marketplace API
// @version         1.0
// @description     REST API over the asset-leasing ledger engine - assets, leases, reviews, disputes and aggregate stats

// @host      localhost:8080
// @BasePath  /

// @schemes   http https

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	store := buildStore()
	auth := buildAuthenticator()

	feed := events.NewFeed()
	opts := []marketplace.Option{marketplace.WithEventSink(feed)}

	if alertEmail := os.Getenv("DISPUTE_ALERT_EMAIL"); alertEmail != "" {
		alerter := notify.NewDisputeAlerter(notify.NewEmailService(), alertEmail)
		opts = append(opts, marketplace.WithEventSink(alerter))
	}

	service := marketplace.NewMarketplaceService(store, auth, clock.NewSystemClock(), opts...)
	handler := marketplace.NewMarketplaceHandler(service)
	feedHandler := events.NewHandler(feed)

	bootstrapLedger(store, service)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(identity.GinMiddleware())

	handler.RegisterRoutes(router)

	router.GET("/ws/events", feedHandler.HandleWebSocketGin)
	router.GET("/events/status", feedHandler.GetStatusGin)

	if issuer, ok := auth.(*identity.JWTAuthenticator); ok && strings.EqualFold(os.Getenv("AUTH_TOKEN_ISSUER_ENABLED"), "true") {
		registerTokenIssuer(router, issuer)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		certFile := os.Getenv("TLS_CERT_PATH")
		keyFile := os.Getenv("TLS_KEY_PATH")
		if strings.EqualFold(os.Getenv("ENABLE_TLS"), "true") && certFile != "" && keyFile != "" {
			if err := srv.ListenAndServeTLS(certFile, keyFile); err != nil && err != http.ErrServerClosed {
				log.Fatalf("listen (TLS): %v", err)
			}
			return
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

// buildStore selects the ledger backend: LEDGER_BACKEND=postgres for the
// durable pgx-backed store, anything else for the in-memory store.
func buildStore() ledger.Store {
	if strings.EqualFold(os.Getenv("LEDGER_BACKEND"), "postgres") {
		pool := db.Connect()
		return ledger.NewPostgresStore(pool)
	}
	log.Println("Using in-memory ledger backend; state will not survive restarts")
	return ledger.NewMemoryStore()
}

// buildAuthenticator selects the identity oracle: AUTH_MODE=apikey for
// bcrypt-hashed shared secrets from AUTH_KEYS, otherwise HS256 bearer tokens
// signed with JWT_SECRET.
func buildAuthenticator() identity.Authenticator {
	if strings.EqualFold(os.Getenv("AUTH_MODE"), "apikey") {
		secrets, err := identity.ParseAuthKeys(os.Getenv("AUTH_KEYS"))
		if err != nil {
			log.Fatalf("AUTH_KEYS invalid: %v", err)
		}
		auth, err := identity.NewAPIKeyAuthenticator(secrets)
		if err != nil {
			log.Fatalf("API key authenticator setup failed: %v", err)
		}
		return auth
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}
	return identity.NewJWTAuthenticator(secret)
}

// bootstrapLedger initializes the marketplace on first start. Initialize
// itself stays unguarded; this check only spares an already-populated ledger
// from being reset on every boot.
func bootstrapLedger(store ledger.Store, service marketplace.MarketplaceService) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, ok, err := store.Get(ctx, ledger.KeyStats)
	if err != nil {
		log.Fatalf("ledger probe failed: %v", err)
	}
	if ok {
		return
	}
	if err := service.Initialize(ctx); err != nil {
		log.Fatalf("marketplace initialization failed: %v", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	var origins []string
	if allowedOrigins == "" {
		origins = []string{"*"}
	} else {
		for _, p := range strings.Split(allowedOrigins, ",") {
			if o := strings.TrimSpace(p); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) == 0 {
			origins = []string{"*"}
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Identity-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: strings.EqualFold(os.Getenv("CORS_ALLOW_CREDENTIALS"), "true"),
		MaxAge:           12 * time.Hour,
	})
}

// registerTokenIssuer exposes a development-only endpoint that mints bearer
// tokens for arbitrary identities. Never enable it in production.
func registerTokenIssuer(router *gin.Engine, issuer *identity.JWTAuthenticator) {
	type tokenRequest struct {
		Identity string `json:"identity" binding:"required"`
	}

	router.POST("/auth/token", func(c *gin.Context) {
		var req tokenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.SendAPIError(c, http.StatusBadRequest, "validation", "invalid request payload")
			return
		}
		token, err := issuer.IssueToken(req.Identity, 24*time.Hour)
		if err != nil {
			response.SendAPIError(c, http.StatusInternalServerError, "internal", err.Error())
			return
		}
		response.SendAPIResponse(c, http.StatusOK, true, "token issued", gin.H{"token": token})
	})

	log.Println("Development token issuer enabled at POST /auth/token")
}
