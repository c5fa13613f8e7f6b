package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"seatrade/internal/config"
	"seatrade/internal/database"
	"seatrade/internal/services"
	"seatrade/internal/site"
	"seatrade/internal/transport"
	"seatrade/internal/util"
)

const (
	shutdownTimeout  = 30 * time.Second
	readTimeout      = 15 * time.Second
	writeTimeout     = 15 * time.Second
	idleTimeout      = 60 * time.Second
	housekeepingTick = 5 * time.Minute
)

func main() {
	log.SetPrefix("[API] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Validate critical configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server shutdown complete")
}

func run(cfg *config.Config) error {
	log.Printf("Starting %s v%s", cfg.App.Name, cfg.App.Version)
	log.Printf("Environment: debug=%v, port=%s, host=%s", cfg.App.Debug, cfg.App.Port, cfg.App.Host)

	log.Println("Initializing database connection...")
	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		log.Println("Closing database connections...")
		if err := database.Close(db); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	content, err := site.Load(cfg.Site.ContentPath)
	if err != nil {
		return fmt.Errorf("failed to load site content: %w", err)
	}

	log.Println("Initializing services...")
	emailSvc := services.NewEmailService(&cfg.Email)
	log.Printf("Email notifications enabled=%v", emailSvc.IsEnabled())
	limiter := util.NewRateLimiter(cfg.Submission.MaxPerMinute, time.Minute)
	server := transport.New(cfg, transport.Services{
		Health:       services.NewHealthService(db),
		Auth:         services.NewAuthService(db, util.NewTokenIssuer(cfg.Auth)),
		Inquiries:    services.NewInquiryService(db, emailSvc),
		Testimonials: services.NewTestimonialService(db),
		Products:     services.NewProductService(db),
		Blog:         services.NewBlogService(db),
		Site:         content,
	}, limiter)

	addr := fmt.Sprintf("%s:%s", cfg.App.Host, cfg.App.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      server.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
		ErrorLog:     log.New(os.Stderr, "[HTTP] ", log.LstdFlags),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(housekeepingTick)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				limiter.Cleanup()
				database.RecordPoolStats(db)
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Println("Starting graceful shutdown...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during graceful shutdown: %v", err)
			if errors.Is(err, context.DeadlineExceeded) {
				log.Println("Shutdown timeout exceeded, forcing close...")
				_ = httpServer.Close()
			}
		}
		return nil
	})

	return g.Wait()
}

// validateConfig validates critical configuration values
func validateConfig(cfg *config.Config) error {
	if cfg.Auth.SecretKey == "" || cfg.Auth.SecretKey == "your-secret-key-change-in-production" {
		return fmt.Errorf("SECRET_KEY must be set and changed from default value")
	}
	if len(cfg.Auth.SecretKey) < 32 {
		return fmt.Errorf("SECRET_KEY must be at least 32 characters for security")
	}
	if cfg.App.Port == "" {
		return fmt.Errorf("PORT must be set")
	}
	return nil
}
