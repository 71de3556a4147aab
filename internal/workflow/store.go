package workflow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Document - накопительный JSON документ со всеми профилями за все запуски.
type Document struct {
	Success       bool          `json:"success"`
	TotalProfiles int           `json:"total_profiles"`
	AllProfiles   []ProfileData `json:"all_profiles"`
}

// DocumentStore дописывает профили в единый JSON файл.
// Запись идет во временный файл с последующим rename, чтобы параллельный
// читатель никогда не увидел полузаписанный документ.
type DocumentStore struct {
	path string
}

func NewDocumentStore(path string) *DocumentStore {
	return &DocumentStore{path: path}
}

// Merge читает существующий документ, добавляет новые профили и
// перезаписывает файл атомарно.
func (s *DocumentStore) Merge(profiles []ProfileData) error {
	doc := s.load()
	doc.AllProfiles = append(doc.AllProfiles, profiles...)
	doc.Success = true
	doc.TotalProfiles = len(doc.AllProfiles)

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("сериализация документа: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".profiles-*.json")
	if err != nil {
		return fmt.Errorf("создание временного файла: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("запись документа: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("закрытие временного файла: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("замена документа: %w", err)
	}
	return nil
}

// Load возвращает текущее содержимое документа.
func (s *DocumentStore) Load() Document {
	return s.load()
}

// load читает документ; отсутствующий или битый файл дает пустой документ.
func (s *DocumentStore) load() Document {
	doc := Document{AllProfiles: []ProfileData{}}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return doc
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{AllProfiles: []ProfileData{}}
	}
	if doc.AllProfiles == nil {
		doc.AllProfiles = []ProfileData{}
	}
	return doc
}
