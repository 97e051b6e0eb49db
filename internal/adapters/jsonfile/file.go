// Package jsonfile writes and reads the refresh output.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"restaurant_refresh/internal/domain"
)

// Encode renders rs as two-space indented JSON with non-ASCII and HTML
// characters left literal.
func Encode(rs []domain.Restaurant) ([]byte, error) {
	if rs == nil {
		rs = []domain.Restaurant{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write replaces path with the encoded records. The data goes to a temp
// file in the same directory first, so readers never see a partial file.
func Write(path string, rs []domain.Restaurant) error {
	b, err := Encode(rs)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Read loads a file produced by Write.
func Read(path string) ([]domain.Restaurant, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rs []domain.Restaurant
	if err := json.Unmarshal(b, &rs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return rs, nil
}

// Reader serves the output file as the latest snapshot.
type Reader struct{ Path string }

func (r Reader) LatestSnapshot(ctx context.Context) ([]domain.Restaurant, error) {
	rs, err := Read(r.Path)
	if os.IsNotExist(err) {
		return nil, domain.ErrNotFound
	}
	return rs, err
}
