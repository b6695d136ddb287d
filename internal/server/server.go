// Package server is the HTTP boundary: it turns query parameters into calls on
// the acquisition chain and renders the outcome.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/laytan/ytsubtitles/internal/caption"
	"github.com/laytan/ytsubtitles/internal/store"
	"github.com/laytan/ytsubtitles/internal/tube"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPort     = ":8080"
	ShutdownTimeout = 10 * time.Second
	MinQueryLen     = 3
)

type Acquirer interface {
	Acquire(ctx context.Context, videoID string, lang string) (caption.Sequence, error)
}

type TrackLister interface {
	ListTracks(ctx context.Context, videoID string) ([]tube.Track, error)
}

// FailureLog receives the videos nothing could be found for.
type FailureLog interface {
	CreateFailure(ctx context.Context, arg store.CreateFailureParams) error
}

type Server struct {
	Captions Acquirer
	Tracks   TrackLister
	Failures FailureLog // Optional.
}

// App builds the fiber application with every route registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Content-Type",
	}))

	api := app.Group("/api")
	api.Options("/*", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	api.Get("/subtitles", s.subtitles)
	api.Get("/list", s.list)
	api.Get("/search", s.search)

	return app
}

// Start serves on port until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, port string) error {
	app := s.App()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("[INFO]: listening on %s", port)
		if err := app.Listen(port); err != nil {
			return fmt.Errorf("listening on %s: %w", port, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		log.Println("[INFO]: shutting down")
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := http.StatusInternalServerError
	msg := "Internal error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		msg = e.Message
	} else {
		log.Printf("[ERROR]: %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{"error": msg})
}
