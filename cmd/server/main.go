// The server command serves the same route table as the Lambda
// entrypoint over plain HTTP for local development. Every request is
// translated into one dispatch, so behavior matches the deployed
// function.
package main

import (
	"context"
	"encoding/base64"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"lambda-router/internal/config"
	"lambda-router/internal/handlers"
	"lambda-router/internal/logging"
	"lambda-router/internal/middleware"
	"lambda-router/pkg/router"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.LogLevel, os.Stdout, true)

	// Build the route table and dispatcher
	table := router.NewRouteTable(logger)
	if err := handlers.RegisterRoutes(table, handlers.New(logger)); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}
	dispatcher := router.New(table, router.Config{
		Logger: logger,
		Token:  config.TokenProvider(),
	})

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.RateLimit(logger, cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))

	// All paths funnel through the dispatcher, mirroring the single
	// catch-all proxy integration used in front of the Lambda.
	engine.NoRoute(dispatchHandler(dispatcher))

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: engine,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Server.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
}

// dispatchHandler translates a gin request into one dispatch and writes
// the resulting envelope back.
func dispatchHandler(d *router.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		headers := make(map[string]string, len(c.Request.Header))
		for name, values := range c.Request.Header {
			headers[name] = strings.Join(values, ",")
		}

		queryParams := make(map[string]string)
		for name, values := range c.Request.URL.Query() {
			if len(values) > 0 {
				queryParams[name] = values[0]
			}
		}

		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(c.Request.Body)
		}

		env := d.Dispatch(&router.Request{
			Path:        c.Request.URL.Path,
			Method:      c.Request.Method,
			Headers:     headers,
			QueryParams: queryParams,
			Body:        body,
		})

		respBody := env.Body
		if env.IsBase64Encoded {
			// The envelope carries base64 for the Lambda wire format;
			// HTTP clients get the raw bytes.
			if decoded, err := base64.StdEncoding.DecodeString(string(env.Body)); err == nil {
				respBody = decoded
			}
		}

		for name, value := range env.Headers {
			c.Header(name, value)
		}
		c.Data(env.StatusCode, env.Headers["Content-Type"], respBody)
	}
}
