// Package prefs — пользовательские настройки, восстанавливаемые на
// старте из локального JSON-блоба.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Prefs сохранённые настройки
type Prefs struct {
	Language string `json:"language"`
	DarkMode bool   `json:"dark_mode"`
	Seat     string `json:"seat,omitempty"`
}

// Default настройки первого запуска: русский язык, тёмная тема
func Default() Prefs {
	return Prefs{Language: "ru", DarkMode: true}
}

// Store файловое хранилище настроек
type Store struct {
	path string
}

func NewStore(path string) *Store { return &Store{path: path} }

// Load читает настройки. Отсутствующий или битый файл даёт умолчания:
// настройки не стоят падения при старте.
func (s *Store) Load() Prefs {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Default()
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default()
	}
	if p.Language == "" {
		p.Language = "ru"
	}
	return p
}

// Save записывает настройки атомарно
func (s *Store) Save(p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
