package storage

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"file-manager-api/internal/application/ports"
)

// Local writes file content under a single root directory. Paths are
// random and carry no extension; the original name lives only in the
// file record.
type Local struct {
	root string
}

func NewLocal(root string) ports.Storage {
	return &Local{root: root}
}

func (l *Local) Save(data []byte) (string, error) {
	if err := os.MkdirAll(l.root, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(l.root, uuid.NewString())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}

	return path, nil
}

func (l *Local) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}
