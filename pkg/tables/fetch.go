package tables

import (
	"context"
	"fmt"

	getter "github.com/hashicorp/go-getter"
)

// Fetch downloads a table directory from src into dst. src is any go-getter
// address: a local path, an http(s) archive, git::, s3:: or gcs::.
func Fetch(ctx context.Context, src, dst string) error {
	if src == "" {
		return fmt.Errorf("table source is required")
	}
	if dst == "" {
		return fmt.Errorf("table destination is required")
	}
	if err := getter.Get(dst, src, getter.WithContext(ctx)); err != nil {
		return fmt.Errorf("fetch tables from %s: %w", src, err)
	}
	return nil
}
