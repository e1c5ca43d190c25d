package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var ErrStorage = errors.New("resume storage failed")

// ResumeStore copies resumes into a single directory under
// {username}_{unix millis}{ext}. A name already taken gets a numeric
// suffix so earlier resumes are never replaced.
type ResumeStore struct {
	mu  sync.Mutex
	dir string
	now func() time.Time
}

func NewResumeStore(dir string) *ResumeStore {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "resumes"
	}
	return &ResumeStore{dir: dir, now: time.Now}
}

func (s *ResumeStore) Dir() string {
	return s.dir
}

// StoreFile copies the file at sourcePath and returns the absolute path of
// the stored copy.
func (s *ResumeStore) StoreFile(ctx context.Context, username, sourcePath string) (string, error) {
	src, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("%w: open source: %v", ErrStorage, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", fmt.Errorf("%w: stat source: %v", ErrStorage, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: source %s is a directory", ErrStorage, sourcePath)
	}

	return s.Store(ctx, username, filepath.Base(sourcePath), src)
}

// Store writes r into the resume directory. The bytes land in a temp file
// that is renamed into place only after a complete, synced write; nothing is
// left behind on failure.
func (s *ResumeStore) Store(ctx context.Context, username, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	username = strings.TrimSpace(username)
	if username == "" || strings.ContainsAny(username, `/\`) {
		return "", fmt.Errorf("%w: invalid username %q", ErrStorage, username)
	}

	dir, err := filepath.Abs(s.dir)
	if err != nil {
		return "", fmt.Errorf("%w: resolve dir: %v", ErrStorage, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create dir: %v", ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("%w: create temp: %v", ErrStorage, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmp, ctxReader{ctx: ctx, r: r}); err != nil {
		return "", fmt.Errorf("%w: copy: %v", ErrStorage, err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("%w: sync: %v", ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: close: %v", ErrStorage, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	dest := s.freePath(dir, username, filename)
	if err := os.Rename(tmpPath, dest); err != nil {
		return "", fmt.Errorf("%w: rename: %v", ErrStorage, err)
	}
	committed = true

	return dest, nil
}

func (s *ResumeStore) destName(username, filename string) string {
	return fmt.Sprintf("%s_%d%s", username, s.now().UnixMilli(), extOf(filename))
}

func (s *ResumeStore) freePath(dir, username, filename string) string {
	name := s.destName(username, filename)
	dest := filepath.Join(dir, name)
	ext := extOf(filename)
	stem := strings.TrimSuffix(name, ext)
	for n := 1; ; n++ {
		if _, err := os.Lstat(dest); errors.Is(err, os.ErrNotExist) {
			return dest
		}
		dest = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
	}
}

func extOf(filename string) string {
	base := filepath.Base(filename)
	if i := strings.LastIndex(base, "."); i > 0 {
		return base[i:]
	}
	return ""
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
