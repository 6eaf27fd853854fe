package storage

import (
	"fmt"
	"os"
)

// WriteDebugHTML saves a raw page for offline inspection when nothing could
// be extracted from it.
func WriteDebugHTML(path, html string) error {
	if err := ensureDir("debug", path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("debug: write %q: %w", path, err)
	}
	return nil
}
