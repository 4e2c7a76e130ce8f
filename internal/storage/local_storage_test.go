package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impactecho-backend/internal/domain"
)

func newTestStore(t *testing.T, maxBytes int64) *LocalStorageService {
	t.Helper()
	s, err := NewLocalStorageService(Config{Dir: t.TempDir(), MaxBytes: maxBytes})
	require.NoError(t, err)
	return s
}

func TestSaveAndOpen(t *testing.T) {
	s := newTestStore(t, 1024)
	ctx := context.Background()

	ref, ok, err := s.Save(ctx, "Annual Report.PDF", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(ref, "_Annual_Report.PDF"), ref)

	rc, err := s.Open(ctx, ref)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestSaveDropsDisallowedExtension(t *testing.T) {
	s := newTestStore(t, 1024)
	ref, ok, err := s.Save(context.Background(), "payload.exe", strings.NewReader("MZ"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, ref)

	entries, err := os.ReadDir(s.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveDropsOversized(t *testing.T) {
	s := newTestStore(t, 8)

	_, ok, err := s.Save(context.Background(), "big.png", bytes.NewReader(make([]byte, 9)))
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.Save(context.Background(), "exact.png", bytes.NewReader(make([]byte, 8)))
	require.NoError(t, err)
	assert.True(t, ok)

	entries, err := os.ReadDir(s.dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestOpenRejectsTraversal(t *testing.T) {
	s := newTestStore(t, 1024)
	for _, ref := range []string{"", "../etc/passwd", "a/b.pdf", ".upload-1"} {
		_, err := s.Open(context.Background(), ref)
		assert.ErrorIs(t, err, domain.ErrNotFound, ref)
	}
	_, err := s.Open(context.Background(), "missing.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t, 1024)
	ctx := context.Background()

	ref, ok, err := s.Save(ctx, "charter.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, s.Delete(ctx, ref))
	_, err = s.Open(ctx, ref)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, s.Delete(ctx, ref))
	assert.ErrorIs(t, s.Delete(ctx, "../outside.pdf"), domain.ErrNotFound)
}

func TestCleanName(t *testing.T) {
	assert.Equal(t, "report.pdf", cleanName("../../report.pdf"))
	assert.Equal(t, "my_file.docx", cleanName(`C:\\Users\\x\\my file.docx`))
	assert.Equal(t, "document.pdf", cleanName("документ.pdf"))
	assert.Equal(t, "v1_2.png", cleanName("v1.2.png"))
}
