package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"impactecho-backend/internal/domain"
	"impactecho-backend/internal/logger"
)

// LocalStorageService writes uploads to a directory on the local filesystem.
type LocalStorageService struct {
	dir      string
	maxBytes int64
	allowed  map[string]struct{}
}

// NewLocalStorageService creates the upload directory if needed.
func NewLocalStorageService(cfg Config) (*LocalStorageService, error) {
	if cfg.Dir == "" {
		return nil, errors.New("upload directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	exts := cfg.AllowedExtensions
	if len(exts) == 0 {
		exts = DefaultAllowedExtensions
	}
	allowed := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		allowed[strings.TrimPrefix(strings.ToLower(e), ".")] = struct{}{}
	}
	return &LocalStorageService{dir: cfg.Dir, maxBytes: cfg.MaxBytes, allowed: allowed}, nil
}

// Allowed reports whether name carries an accepted extension.
func (s *LocalStorageService) Allowed(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	_, ok := s.allowed[ext]
	return ok
}

func (s *LocalStorageService) Save(ctx context.Context, name string, content io.Reader) (string, bool, error) {
	if !s.Allowed(name) {
		logger.InfoContext(ctx, "Upload dropped", "name", name, "reason", "extension")
		return "", false, nil
	}

	ref := uuid.New().String() + "_" + cleanName(name)
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", false, fmt.Errorf("%w: create upload: %v", domain.ErrPersistence, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	written, err := io.Copy(tmp, io.LimitReader(content, s.maxBytes+1))
	closeErr := tmp.Close()
	if err != nil {
		return "", false, fmt.Errorf("%w: write upload: %v", domain.ErrPersistence, err)
	}
	if closeErr != nil {
		return "", false, fmt.Errorf("%w: write upload: %v", domain.ErrPersistence, closeErr)
	}
	if written > s.maxBytes {
		logger.InfoContext(ctx, "Upload dropped", "name", name, "reason", "size")
		return "", false, nil
	}

	if err := os.Rename(tmpName, filepath.Join(s.dir, ref)); err != nil {
		return "", false, fmt.Errorf("%w: store upload: %v", domain.ErrPersistence, err)
	}
	return ref, true, nil
}

// validRef reports whether ref names a stored document directly under dir.
func validRef(ref string) bool {
	return ref != "" && ref == filepath.Base(ref) && !strings.HasPrefix(ref, ".")
}

func (s *LocalStorageService) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if !validRef(ref) {
		return nil, fmt.Errorf("%w: document %q", domain.ErrNotFound, ref)
	}
	f, err := os.Open(filepath.Join(s.dir, ref))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: document %q", domain.ErrNotFound, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open document: %v", domain.ErrPersistence, err)
	}
	return f, nil
}

func (s *LocalStorageService) Delete(ctx context.Context, ref string) error {
	if !validRef(ref) {
		return fmt.Errorf("%w: document %q", domain.ErrNotFound, ref)
	}
	err := os.Remove(filepath.Join(s.dir, ref))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: delete document: %v", domain.ErrPersistence, err)
	}
	return nil
}

// cleanName keeps ASCII letters, digits, dash and underscore from the base
// name so the stored reference is safe as a path segment.
func cleanName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	ext := filepath.Ext(base)
	stem := cleanSegment(strings.TrimSuffix(base, ext))
	if stem == "" {
		stem = "document"
	}
	return stem + "." + cleanSegment(strings.TrimPrefix(ext, "."))
}

func cleanSegment(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case r == '-' || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '.':
			b.WriteRune('_')
		}
	}
	return b.String()
}
