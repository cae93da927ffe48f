package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"french_vocab_trainer/generator"
)

// DefaultFile is the history document used when none is configured.
const DefaultFile = "historial.json"

// FileStore keeps the log as a single JSON document that is rewritten on every
// prepend. There is no locking and no atomic replace: concurrent writers race
// and a crash mid-write can lose the previous content.
type FileStore struct {
	path   string
	logger *zap.Logger
}

func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	if path == "" {
		path = DefaultFile
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to ensure history dir: %w", err)
	}
	return &FileStore{path: path, logger: logger.With(zap.String("component", "history"), zap.String("path", path))}, nil
}

func (s *FileStore) Path() string { return s.path }

// LoadAll returns an empty log when the file is missing or not a valid log.
func (s *FileStore) LoadAll() Log {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("history unreadable, starting empty", zap.Error(err))
		}
		return Log{}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Log{}
	}
	var log Log
	if err := json.Unmarshal(data, &log); err != nil {
		s.logger.Warn("history corrupt, starting empty", zap.Error(err))
		return Log{}
	}
	if log == nil {
		return Log{}
	}
	return log
}

// Prepend rewrites the file with rec at index 0. Errors are logged and dropped.
func (s *FileStore) Prepend(topic string, level generator.Level, entries []generator.Entry) {
	log := prepend(s.LoadAll(), newRecord(topic, level, entries))
	if err := s.write(log); err != nil {
		s.logger.Error("failed to save history", zap.Error(err), zap.Int("records", len(log)))
		return
	}
	s.logger.Debug("history saved", zap.Int("records", len(log)))
}

func (s *FileStore) write(log Log) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(log); err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}
