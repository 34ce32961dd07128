package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// Store — плоское key-value хранилище настроек в JSON-файле.
type Store struct {
	path string
	log  zerolog.Logger

	mu   sync.RWMutex
	data map[string]json.RawMessage
}

// Open читает файл настроек. Отсутствующий, пустой или повреждённый файл
// даёт пустое хранилище, запуск не прерывается.
func Open(path string, log zerolog.Logger) *Store {
	s := &Store{path: path, log: log, data: make(map[string]json.RawMessage)}
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s
	case err != nil:
		log.Error().Err(err).Str("path", path).Msg("settings: не удалось прочитать файл")
		return s
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return s
	}
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &parsed); err != nil {
		log.Error().Err(err).Str("path", path).Msg("settings: файл повреждён, начинаем с пустых настроек")
		return s
	}
	if parsed != nil {
		s.data = parsed
	}
	return s
}

// size возвращает число ключей.
func (s *Store) size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// lookup декодирует значение ключа в dst. Возвращает false, если ключа нет.
func (s *Store) lookup(key string, dst any) (bool, error) {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("settings: decode %q: %w", key, err)
	}
	return true, nil
}

// put сохраняет значение ключа в памяти; на диск пишет Save.
func (s *Store) put(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("settings: encode %q: %w", key, err)
	}
	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
	return nil
}

// Save записывает настройки атомарно через временный файл.
func (s *Store) Save() error {
	s.mu.RLock()
	out, err := json.MarshalIndent(s.data, "", "    ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return fmt.Errorf("settings: temp file: %w", err)
	}
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("settings: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("settings: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("settings: rename: %w", err)
	}
	return nil
}
