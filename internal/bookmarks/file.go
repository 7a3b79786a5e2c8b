package bookmarks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// File stores the id list as a JSON array in a single file on disk, the
// closest server-side analog of the original's browser key-value entry.
type File struct {
	path string
}

// NewFile creates a file-backed store. The file is created on first Save.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("bookmarks file path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create bookmarks directory: %w", err)
		}
	}
	return &File{path: path}, nil
}

// Load implements Store. A missing file means nothing was saved yet.
func (f *File) Load(_ context.Context) ([]int, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read bookmarks file %s: %w", f.path, err)
	}
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to parse bookmarks file %s: %w", f.path, err)
	}
	return ids, nil
}

// Save implements Store. The write goes through a temp file and rename so a
// crash mid-write cannot truncate the saved list.
func (f *File) Save(_ context.Context, ids []int) error {
	if ids == nil {
		ids = []int{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal bookmark ids: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write bookmarks file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace bookmarks file: %w", err)
	}
	return nil
}

// Close implements Store.
func (f *File) Close() error {
	return nil
}
