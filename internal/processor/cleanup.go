package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// moveToArchived moves a processed source out of the inbox. An existing
// file with the same name is kept and the new one gets a timestamp suffix.
func (p *implProcessor) moveToArchived(ctx context.Context, path string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	name := filepath.Base(path)
	dest := filepath.Join(p.cfg.Paths.Archived, name)
	if _, err := os.Stat(dest); err == nil {
		ext := filepath.Ext(name)
		stamp := p.now().Format("20060102-150405")
		dest = filepath.Join(p.cfg.Paths.Archived, strings.TrimSuffix(name, ext)+"_"+stamp+ext)
	}

	p.logger.Info(ctx, "Moving to archived folder: %s -> %s", path, dest)
	if err := os.Rename(path, dest); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}
