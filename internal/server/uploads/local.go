package uploads

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStore writes images into a directory served under /uploads/.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

// Save writes the image under a random name (original extension preserved)
// and returns its public path, e.g. "/uploads/3f2a....png". The file is
// synced and closed before the path is returned.
func (s *LocalStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {

	name := uuid.NewString() + filepath.Ext(filename)
	dst := filepath.Join(s.dir, name)

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o660)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("write %s: %w", dst, err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("sync %s: %w", dst, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("close %s: %w", dst, err)
	}

	return "/uploads/" + name, nil
}
