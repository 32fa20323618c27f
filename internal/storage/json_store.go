package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/julianstephens/lectern/internal/models"
)

type jsonDocument struct {
	Version  int               `json:"version"`
	Settings map[string]string `json:"settings"`
	Values   map[string]string `json:"values"`
}

// JSONStore keeps everything in a single JSON document. It is selected when
// the configured path ends in .json.
type JSONStore struct {
	path string
	mu   sync.Mutex
	doc  *jsonDocument
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{path: configPath}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		if err := s.read(); err != nil {
			return err
		}
	} else {
		s.doc = &jsonDocument{Version: 1, Values: map[string]string{}}
	}

	settings := models.MapToSettings(s.doc.Settings)
	models.ApplyDefaultSettings(&settings)
	s.doc.Settings = models.SettingsToMap(settings)
	return s.write()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'lectern init' first")
	}
	return s.read()
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) read() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read store: %w", err)
	}
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse store: %w", err)
	}
	if doc.Values == nil {
		doc.Values = map[string]string{}
	}
	s.doc = &doc
	return nil
}

// write replaces the file through a temporary sibling so a crash never
// leaves a truncated document behind.
func (s *JSONStore) write() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace store: %w", err)
	}
	return nil
}

func (s *JSONStore) loaded() error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return models.Settings{}, err
	}
	if len(s.doc.Settings) == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}
	return models.MapToSettings(s.doc.Settings), nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.Settings = models.SettingsToMap(settings)
	return s.write()
}

func (s *JSONStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return "", err
	}
	v, ok := s.doc.Values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *JSONStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.Values[key] = value
	return s.write()
}

func (s *JSONStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.doc.Values[key]; !ok {
		return ErrNotFound
	}
	delete(s.doc.Values, key)
	return s.write()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
