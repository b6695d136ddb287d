package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/laytan/ytsubtitles/internal/acquire"
	"github.com/laytan/ytsubtitles/internal/caption"
	"github.com/laytan/ytsubtitles/internal/server"
	"github.com/laytan/ytsubtitles/internal/store"
	"github.com/laytan/ytsubtitles/internal/tube"
	"golang.org/x/time/rate"
)

const defaultFailuresLimit = 20

var (
	port          = envOr("PORT", server.DefaultPort)
	baseURL       = envOr("YT_BASE_URL", tube.DefaultBaseURL)
	upstreamRPS   = envOr("UPSTREAM_RPS", "0")
	fallbackLangs = envOr("FALLBACK_LANGS", strings.Join(tube.DefaultFallbackLangs, ","))
	httpTimeout   = envOr("HTTP_TIMEOUT", "15s")
	pgDsn         = os.Getenv("POSTGRES_DSN")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	timeout, err := time.ParseDuration(httpTimeout)
	if err != nil {
		log.Fatalf("[ERROR]: parsing HTTP_TIMEOUT %q: %v", httpTimeout, err)
	}

	limiter, err := newLimiter(upstreamRPS)
	if err != nil {
		log.Fatalf("[ERROR]: parsing UPSTREAM_RPS %q: %v", upstreamRPS, err)
	}

	yt := tube.New(baseURL, timeout, limiter)
	transcripts := tube.NewTranscripts(yt.HTTPClient, limiter, splitLangs(fallbackLangs))
	chain := acquire.New(yt, transcripts)

	args := os.Args[1:]
	cmd := ""
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "fetch":
		if len(args) < 1 {
			log.Fatal("[ERROR]: usage: ytsubtitles fetch <url> [lang] [format]")
		}
		if err := fetch(ctx, chain, args); err != nil {
			log.Fatalf("[ERROR]: %v", err)
		}
	case "list":
		if len(args) < 1 {
			log.Fatal("[ERROR]: usage: ytsubtitles list <url>")
		}
		if err := list(ctx, yt, args[0]); err != nil {
			log.Fatalf("[ERROR]: %v", err)
		}
	case "failures":
		if err := failures(ctx, args); err != nil {
			log.Fatalf("[ERROR]: %v", err)
		}
	case "", "serve":
		srv := &server.Server{Captions: chain, Tracks: yt}

		if pgDsn != "" {
			db, err := store.Open(ctx, pgDsn)
			if err != nil {
				log.Fatalf("[ERROR]: opening failure log: %v", err)
			}
			defer db.Close()

			srv.Failures = store.New(db)
		} else {
			log.Println("[INFO]: POSTGRES_DSN not set, failure log disabled")
		}

		if err := srv.Start(ctx, port); err != nil {
			log.Printf("[ERROR]: %v", err)
			return
		}
		log.Println("[INFO]: stopped")
	default:
		log.Fatalf("[ERROR]: unknown command %q, expected serve, fetch, list or failures", cmd)
	}
}

func fetch(ctx context.Context, chain *acquire.Chain, args []string) error {
	id, err := tube.ExtractVideoID(args[0])
	if err != nil {
		return err
	}

	lang := acquire.Auto
	if len(args) > 1 {
		lang = args[1]
	}

	format := caption.Text
	if len(args) > 2 {
		f, ok := caption.ParseFormat(args[2])
		if !ok {
			return fmt.Errorf("unknown format %q, expected txt, srt or vtt", args[2])
		}
		format = f
	}

	cues, err := chain.Acquire(ctx, id, lang)
	if err != nil {
		return fmt.Errorf("acquiring captions for %q: %w", id, err)
	}

	log.Printf("[INFO]: got %d cues for %q", len(cues), id)
	_, err = fmt.Fprintln(os.Stdout, caption.Render(format, cues))
	return err
}

func list(ctx context.Context, yt *tube.Client, raw string) error {
	id, err := tube.ExtractVideoID(raw)
	if err != nil {
		return err
	}

	tracks, err := yt.ListTracks(ctx, id)
	if err != nil {
		return fmt.Errorf("listing tracks of %q: %w", id, err)
	}

	if len(tracks) == 0 {
		log.Printf("[INFO]: no tracks listed for %q", id)
		return nil
	}

	for _, t := range tracks {
		fmt.Println(t)
	}
	return nil
}

func failures(ctx context.Context, args []string) error {
	if pgDsn == "" {
		return errors.New("POSTGRES_DSN environment variable must be set")
	}

	limit := int64(defaultFailuresLimit)
	if len(args) > 0 {
		l, err := strconv.ParseInt(args[0], 10, 32)
		if err != nil || l <= 0 {
			return fmt.Errorf("invalid limit %q", args[0])
		}
		limit = l
	}

	db, err := store.Open(ctx, pgDsn)
	if err != nil {
		return fmt.Errorf("opening failure log: %w", err)
	}
	defer closeDB(db)

	rows, err := store.New(db).RecentFailures(ctx, int32(limit))
	if err != nil {
		return fmt.Errorf("retrieving failures: %w", err)
	}

	for _, f := range rows {
		fmt.Printf("%s\t%s\t%s\t%s\t%s\n", f.CreatedAt.Format(time.RFC3339), f.VideoID, f.Lang, f.Type, f.Reason)
	}
	return nil
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		log.Printf("[WARN]: closing database: %v", err)
	}
}

// newLimiter paces upstream calls, 0 or less means unlimited.
func newLimiter(raw string) (*rate.Limiter, error) {
	rps, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}

	if rps <= 0 {
		return nil, nil
	}

	return rate.NewLimiter(rate.Limit(rps), 1), nil
}

func splitLangs(raw string) []string {
	var langs []string
	for _, l := range strings.Split(raw, ",") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	return langs
}

func envOr(key string, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
