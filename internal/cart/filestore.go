package cart

import (
	"encoding/json"
	"os"
	"path/filepath"

	"inflight/internal/domain"
)

// FileStore снимок корзины в JSON-файле. Запись атомарная: временный
// файл и переименование, чтобы оборванная запись не оставила битый снимок.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

var _ Store = (*FileStore)(nil)

func (f *FileStore) Save(items []domain.OrderItem) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStore) Load() ([]domain.OrderItem, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var items []domain.OrderItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}
