package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cinenz0/finance-tracker/internal/common"
)

// FileSink stores snapshot files under a directory. It is the concrete
// stand-in for the file/dialog collaborator the core assumes.
type FileSink struct {
	dir string
}

// NewFileSink creates a sink rooted at dir, creating it if needed.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}
	return &FileSink{dir: dir}, nil
}

// DailyName returns the conventional snapshot file name for a day.
func DailyName(t time.Time) string {
	return fmt.Sprintf("finance-backup-%s.json", t.Format("2006-01-02"))
}

// Save writes the snapshot under name and returns the full path.
func (s *FileSink) Save(snap *Snapshot, name string) (string, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	return path, nil
}

// Open reads and decodes a snapshot file. Missing or unreadable files
// surface as restore errors.
func (s *FileSink) Open(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRestore, err)
	}
	return Decode(data)
}

// Exists reports whether a snapshot with the given name is present.
func (s *FileSink) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil
}
