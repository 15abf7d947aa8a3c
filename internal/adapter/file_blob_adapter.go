package adapter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"ai-quiz/internal/domain"

	"github.com/spf13/afero"
)

// FileBlobAdapter keeps each key in its own file under a base directory. It
// plays the role browser local storage played: one process, one value per key.
type FileBlobAdapter struct {
	fs  afero.Fs
	dir string
	mu  sync.Mutex
}

// NewFileBlobAdapter stores blobs under dir on fs. The directory is created
// on first write.
func NewFileBlobAdapter(fs afero.Fs, dir string) *FileBlobAdapter {
	if dir == "" {
		dir = "."
	}
	return &FileBlobAdapter{fs: fs, dir: dir}
}

// NewFileBlobAdapterForPath is a convenience for a single configured file
// path: the key is ignored in favour of the file name.
func NewFileBlobAdapterForPath(fs afero.Fs, path string) domain.BlobStore {
	return &singleFileBlob{inner: NewFileBlobAdapter(fs, filepath.Dir(path)), name: filepath.Base(path)}
}

func (f *FileBlobAdapter) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(f.dir, key), nil
}

// Get reads the file for key.
func (f *FileBlobAdapter) Get(_ context.Context, key string) ([]byte, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := afero.ReadFile(f.fs, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrBlobNotFound
		}
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return data, nil
}

// Set writes to a temporary file and renames it over the target so a crash
// never leaves a half-written blob.
func (f *FileBlobAdapter) Set(_ context.Context, key string, value []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.fs.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", f.dir, err)
	}
	tmp := p + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, value, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := f.fs.Rename(tmp, p); err != nil {
		_ = f.fs.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

// Delete removes the file for key.
func (f *FileBlobAdapter) Delete(_ context.Context, key string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.fs.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", p, err)
	}
	return nil
}

// Ping checks that the base directory is usable.
func (f *FileBlobAdapter) Ping(_ context.Context) error {
	info, err := f.fs.Stat(f.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", f.dir)
	}
	return nil
}

type singleFileBlob struct {
	inner *FileBlobAdapter
	name  string
}

func (s *singleFileBlob) Get(ctx context.Context, _ string) ([]byte, error) {
	return s.inner.Get(ctx, s.name)
}

func (s *singleFileBlob) Set(ctx context.Context, _ string, value []byte) error {
	return s.inner.Set(ctx, s.name, value)
}

func (s *singleFileBlob) Delete(ctx context.Context, _ string) error {
	return s.inner.Delete(ctx, s.name)
}

func (s *singleFileBlob) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

var (
	_ domain.BlobStore = (*FileBlobAdapter)(nil)
	_ domain.BlobStore = (*singleFileBlob)(nil)
)
