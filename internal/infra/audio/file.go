package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileRecorder serves pre-recorded WAV answers from a directory in place of
// a live microphone. Each Record call waits for the next unserved .wav file,
// hands out a temporary copy, and renames the original so it is not served
// twice. The copy exists because the transcriber deletes whatever path it is
// given.
type FileRecorder struct {
	dir    string
	mu     sync.Mutex
	served map[string]bool
	rename func(oldpath, newpath string) error
}

func NewFileRecorder(dir string) *FileRecorder {
	return &FileRecorder{
		dir:    dir,
		served: make(map[string]bool),
		rename: os.Rename,
	}
}

func (f *FileRecorder) Record(ctx context.Context, _ time.Duration) (string, error) {
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return "", fmt.Errorf("creating audio dir: %w", err)
	}

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		path, err := f.serveNext()
		if err != nil {
			return "", err
		}
		if path != "" {
			return path, nil
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}

func (f *FileRecorder) serveNext() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return "", fmt.Errorf("reading dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".wav" {
			continue
		}

		path := filepath.Join(f.dir, entry.Name())
		if f.served[path] {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading file %s: %w", path, err)
		}

		if err := f.rename(path, path+".processed"); err != nil {
			return "", fmt.Errorf("marking %s processed: %w", path, err)
		}
		f.served[path] = true

		tmp, err := os.CreateTemp("", "interview-*.wav")
		if err != nil {
			return "", fmt.Errorf("creating temp copy: %w", err)
		}
		if _, err := tmp.Write(data); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return "", fmt.Errorf("writing temp copy: %w", err)
		}
		tmp.Close()

		return tmp.Name(), nil
	}

	return "", nil
}
