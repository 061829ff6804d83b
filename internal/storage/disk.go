package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Disk stores media under a local root directory; one sub-directory per ad.
type Disk struct {
	root    string
	baseURL string
}

func NewDisk(root, publicBaseURL string) (*Disk, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Disk{root: root, baseURL: publicBaseURL}, nil
}

func (d *Disk) Root() string { return d.root }

func (d *Disk) Save(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	target := filepath.Join(d.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	// Write next to the target and rename so readers never see a partial file.
	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	size, err := io.Copy(tmp, readerWithContext(ctx, body))
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	if size == 0 {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: empty file", key)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("move %s into place: %w", key, err)
	}

	return joinURL(d.baseURL, key), nil
}

func (d *Disk) Delete(ctx context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(d.root, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Clear removes the prefix directory and recreates it empty. It is not atomic: a
// crash midway can leave the directory partially cleared.
func (d *Disk) Clear(ctx context.Context, prefix string) error {
	prefix, err := cleanKey(prefix)
	if err != nil {
		return err
	}
	dir := filepath.Join(d.root, filepath.FromSlash(prefix))
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clear %s: %w", prefix, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("recreate %s: %w", prefix, err)
	}
	log.Printf("Cleared media directory %s", dir)
	return nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
