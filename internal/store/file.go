package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"wordrush/internal/domain"
)

const fileExt = ".json"

// File stores each round as a JSON document named after its code
type File struct {
	dir string
}

// NewFile creates a file store rooted at dir, creating the directory if needed
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(code string) (string, error) {
	if code == "" || strings.ContainsAny(code, `/\.`) {
		return "", fmt.Errorf("%w: bad code %q", domain.ErrInvalidInput, code)
	}
	return filepath.Join(f.dir, code+fileExt), nil
}

func (f *File) Get(ctx context.Context, code string) (*domain.Round, error) {
	path, err := f.path(code)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read round %s: %w", code, err)
	}

	var r domain.Round
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode round %s: %w", code, err)
	}
	if r.Players == nil {
		r.Players = make(map[string]*domain.Player)
	}
	return &r, nil
}

// Put writes to a temp file and renames it over the old document, so
// readers never see a partial write.
func (f *File) Put(ctx context.Context, round *domain.Round) error {
	path, err := f.path(round.Code)
	if err != nil {
		return err
	}

	data, err := json.Marshal(round)
	if err != nil {
		return fmt.Errorf("encode round %s: %w", round.Code, err)
	}

	tmp, err := os.CreateTemp(f.dir, round.Code+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write round %s: %w", round.Code, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write round %s: %w", round.Code, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace round %s: %w", round.Code, err)
	}
	return nil
}

func (f *File) Delete(ctx context.Context, code string) error {
	path, err := f.path(code)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete round %s: %w", code, err)
	}
	return nil
}

func (f *File) codes() ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}

	codes := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		codes = append(codes, strings.TrimSuffix(name, fileExt))
	}
	return codes, nil
}

func (f *File) Count(ctx context.Context) (int, error) {
	codes, err := f.codes()
	if err != nil {
		return 0, err
	}
	return len(codes), nil
}

func (f *File) CreatedBefore(ctx context.Context, cutoff time.Time) ([]string, error) {
	codes, err := f.codes()
	if err != nil {
		return nil, err
	}

	old := make([]string, 0)
	for _, code := range codes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := f.Get(ctx, code)
		if errors.Is(err, domain.ErrNotFound) {
			// Deleted between listing and reading.
			continue
		}
		if err != nil {
			return nil, err
		}
		if r.CreatedAt.Before(cutoff) {
			old = append(old, code)
		}
	}
	return old, nil
}

func (f *File) Close() error {
	return nil
}
