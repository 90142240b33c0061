package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"github.com/eunsoo8606/texaspapa/config"
	"github.com/eunsoo8606/texaspapa/crypto"
	"github.com/eunsoo8606/texaspapa/db"
	"github.com/eunsoo8606/texaspapa/middleware"
	"github.com/eunsoo8606/texaspapa/notifier"
	"github.com/eunsoo8606/texaspapa/routes"
	"github.com/eunsoo8606/texaspapa/store"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	encryptionKey, err := conf.DecodeEncryptionKey()
	if err != nil {
		log.Fatalf("Error decoding encryption key: %v", err)
	}
	codec, err := crypto.NewCodec(encryptionKey)
	if err != nil {
		log.Fatalf("Error initializing codec: %v", err)
	}

	// Connect to database
	database, err := db.Connect(conf.Postgres)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	defer database.Close()

	// Initialize database schema
	if err := db.InitSchema(database); err != nil {
		log.Fatalf("Error initializing database schema: %v", err)
	}

	// Seed initial data
	if err := db.SeedData(database, conf.Server.CompanyID); err != nil {
		log.Printf("Warning: Error seeding initial data: %v", err)
	}

	// Mail notifications are optional; without SMTP the site still runs.
	var n notifier.Notifier = notifier.Noop{}
	if conf.Mail.Host != "" {
		n = notifier.NewMailer(conf.Mail)
	} else {
		log.Println("SMTP_HOST not set, mail notifications disabled")
	}

	jwtSecret := []byte(conf.Auth.JWTSecret)
	st := store.NewPostgres(database, conf.Postgres.QueryTimeout)

	// Expired refresh tokens pile up otherwise; sweep them hourly.
	tokenService := middleware.NewTokenService(database, jwtSecret)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@hourly", func() {
		if purged, err := tokenService.PurgeExpiredTokens(); err != nil {
			log.Printf("Error purging expired refresh tokens: %v", err)
		} else if purged > 0 {
			log.Printf("Purged %d expired refresh tokens", purged)
		}
	}); err != nil {
		log.Fatalf("Error scheduling token purge: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize router
	r := gin.Default()

	// Setup CORS for the marketing site frontend
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
	}
	corsConfig.AllowMethods = []string{
		"GET",
		"POST",
		"PUT",
		"DELETE",
		"PATCH",
	}
	r.Use(cors.New(corsConfig))

	// Setup routes
	routes.SetupRoutes(r, database, jwtSecret, codec, n, conf.Server.CompanyID, st)

	// Run server
	srv := &http.Server{
		Addr:    ":" + conf.Server.Port,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
}
