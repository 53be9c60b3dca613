package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// fileData represents the JSON file structure
type fileData struct {
	Entries  map[string]string `json:"entries"`
	Metadata Metadata          `json:"metadata"`
}

// Metadata contains storage metadata
type Metadata struct {
	Version   string    `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

const fileFormatVersion = "1.0"

// JSONFile implements KV on top of a single JSON file.
// Every operation takes a cross-process file lock and reads the file again,
// so several processes can share one data file. Writes go to a temp file
// that is renamed over the original.
type JSONFile struct {
	filePath    string
	fs          FileSystem
	fileLock    FileLock
	lockManager *LockManager
	logger      *zap.Logger
	closed      bool
	clock       func() time.Time
}

// NewJSONFile creates a JSON file KV. The file is created on the first Set.
func NewJSONFile(filePath string, opts ...Option) *JSONFile {
	o := buildOptions(opts)
	return &JSONFile{
		filePath:    filePath,
		fs:          o.fs,
		fileLock:    o.lockFactory.New(filePath + ".lock"),
		lockManager: NewLockManager(),
		logger:      o.logger.With(zap.String("backend", string(BackendJSON)), zap.String("path", filePath)),
		clock:       o.clock,
	}
}

// Path returns the data file location
func (s *JSONFile) Path() string {
	return s.filePath
}

// Get implements KV.Get
func (s *JSONFile) Get(key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := s.lockManager.Execute(ReadOperation, func() error {
		if s.closed {
			return ErrClosed
		}
		return withFileLock(s.fileLock, func() error {
			data, err := s.load()
			if err != nil {
				return err
			}
			value, found = data.Entries[key]
			return nil
		})
	})
	if err != nil {
		return "", false, err
	}
	s.logger.Debug("kv get", zap.String("key", key), zap.Bool("found", found))
	return value, found, nil
}

// Set implements KV.Set
func (s *JSONFile) Set(key, value string) error {
	err := s.lockManager.Execute(WriteOperation, func() error {
		if s.closed {
			return ErrClosed
		}
		return withFileLock(s.fileLock, func() error {
			data, err := s.load()
			if err != nil {
				return err
			}
			data.Entries[key] = value
			return s.save(data)
		})
	})
	if err != nil {
		return err
	}
	s.logger.Debug("kv set", zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}

// Close implements KV.Close. The lock file is removed; the data file stays.
func (s *JSONFile) Close() error {
	return s.lockManager.Execute(WriteOperation, func() error {
		if s.closed {
			return nil
		}
		s.closed = true
		_ = s.fs.Remove(s.filePath + ".lock")
		return nil
	})
}

// load reads the data file. Callers must hold the file lock.
// A missing or empty file yields an empty entry set.
func (s *JSONFile) load() (*fileData, error) {
	empty := &fileData{
		Entries:  map[string]string{},
		Metadata: Metadata{Version: fileFormatVersion},
	}

	raw, err := s.fs.ReadFile(s.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return empty, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(raw) == 0 {
		return empty, nil
	}

	var data fileData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if data.Entries == nil {
		data.Entries = map[string]string{}
	}
	return &data, nil
}

// save writes data atomically. Callers must hold the file lock.
func (s *JSONFile) save(data *fileData) error {
	data.Metadata.Version = fileFormatVersion
	data.Metadata.UpdatedAt = s.clock()

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if dir := filepath.Dir(s.filePath); dir != "." {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	// Write to file atomically (write to temp file, then rename)
	tmpFile := s.filePath + ".tmp"
	if err := s.fs.WriteFile(tmpFile, raw, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := s.fs.Rename(tmpFile, s.filePath); err != nil {
		_ = s.fs.Remove(tmpFile)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}
