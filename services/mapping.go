package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"tentamenbank-api/models"
)

// MappingStore persists the subject override document.
// Save replaces the whole document; concurrent editors race and the last one wins.
type MappingStore interface {
	Load(ctx context.Context) (models.Mapping, error)
	Save(ctx context.Context, mapping models.Mapping) error
}

// DecodeMapping normalizes a stored document. Values are either a legacy bare
// course id string or an {id, name} object.
func DecodeMapping(data []byte) (models.Mapping, error) {
	mapping := make(models.Mapping)
	if len(bytes.TrimSpace(data)) == 0 {
		return mapping, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return mapping, fmt.Errorf("decode mapping: %w", err)
	}

	for subject, value := range raw {
		var id string
		if err := json.Unmarshal(value, &id); err == nil {
			mapping[subject] = models.MappingEntry{ID: id}
			continue
		}

		var entry models.MappingEntry
		if err := json.Unmarshal(value, &entry); err != nil {
			log.Printf("DecodeMapping - skipping %q: %v", subject, err)
			continue
		}
		mapping[subject] = entry
	}

	return mapping, nil
}

func encodeMapping(mapping models.Mapping) ([]byte, error) {
	if mapping == nil {
		mapping = models.Mapping{}
	}
	return json.MarshalIndent(mapping, "", "    ")
}

// RowsToMapping keeps the rows that carry an id or a name after trimming.
func RowsToMapping(rows map[string]models.MappingEntry) models.Mapping {
	mapping := make(models.Mapping, len(rows))
	for subject, row := range rows {
		id := strings.TrimSpace(row.ID)
		name := strings.TrimSpace(row.Name)
		if id == "" && name == "" {
			continue
		}
		mapping[subject] = models.MappingEntry{ID: id, Name: name}
	}
	return mapping
}

// FileMappingStore keeps the document on local disk
type FileMappingStore struct {
	path string
	mu   sync.Mutex
}

func NewFileMappingStore(path string) *FileMappingStore {
	return &FileMappingStore{path: path}
}

// Load returns an empty mapping when the file does not exist yet.
func (s *FileMappingStore) Load(ctx context.Context) (models.Mapping, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.Mapping{}, nil
		}
		return models.Mapping{}, fmt.Errorf("read mapping file: %w", err)
	}
	return DecodeMapping(data)
}

// Save writes to a temp file next to the target and renames it into place.
func (s *FileMappingStore) Save(ctx context.Context, mapping models.Mapping) error {
	data, err := encodeMapping(mapping)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMappingSave, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrMappingSave, err)
	}

	tmp, err := os.CreateTemp(dir, ".mapping-*.json")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMappingSave, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrMappingSave, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrMappingSave, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("%w: %v", ErrMappingSave, err)
	}
	return nil
}

type objectReadWriter interface {
	DownloadFile(ctx context.Context, bucket, objectPath string) ([]byte, error)
	UploadFile(ctx context.Context, bucket, objectPath string, reader io.Reader, size int64, contentType string) error
}

// ObjectMappingStore keeps the document as an object next to the exams
type ObjectMappingStore struct {
	objects objectReadWriter
	bucket  string
	key     string
}

func NewObjectMappingStore(objects objectReadWriter, bucket, key string) *ObjectMappingStore {
	return &ObjectMappingStore{objects: objects, bucket: bucket, key: key}
}

// Load returns an empty mapping when the object does not exist yet.
func (s *ObjectMappingStore) Load(ctx context.Context) (models.Mapping, error) {
	data, err := s.objects.DownloadFile(ctx, s.bucket, s.key)
	if err != nil {
		if IsNotFound(err) {
			return models.Mapping{}, nil
		}
		return models.Mapping{}, fmt.Errorf("read mapping object: %w", err)
	}
	return DecodeMapping(data)
}

func (s *ObjectMappingStore) Save(ctx context.Context, mapping models.Mapping) error {
	data, err := encodeMapping(mapping)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMappingSave, err)
	}
	err = s.objects.UploadFile(ctx, s.bucket, s.key, bytes.NewReader(data), int64(len(data)), "application/json")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMappingSave, err)
	}
	return nil
}
