package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/OCharnyshevich/pointcrawl/pkg/tables"
)

// fetchtables downloads a table directory with go-getter and checks that it
// parses, so a broken source fails here rather than at generation time.
func main() {
	var (
		src = flag.String("src", "", "go-getter source, e.g. git::https://host/repo.git//tables")
		out = flag.String("o", "./tables", "output dir path")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	if *src == "" || *out == "" {
		log.Error("both -src and -o are required")
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := os.RemoveAll(*out); err != nil {
		log.Error("clear output dir", "path", *out, "error", err)
		os.Exit(1)
	}

	log.Info("start downloading tables", "src", *src, "dst", *out)
	if err := tables.Fetch(ctx, *src, *out); err != nil {
		log.Error("fetch tables", "error", err)
		os.Exit(1)
	}

	t, err := tables.LoadDir(*out)
	if err != nil {
		log.Error("downloaded tables do not parse", "error", err)
		os.Exit(1)
	}
	log.Info("done downloading tables",
		"dst", *out,
		"descriptors", len(t.Descriptors),
		"features", len(t.Features),
	)
}
