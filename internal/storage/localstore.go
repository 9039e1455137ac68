package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Well-known local document keys. They mirror the state slots a browser
// session would keep, so local-only and backend-synced deployments agree on
// naming.
const (
	DocCreatorState    = "creator-state"
	DocGalleryItems    = "galleryItems"
	DocSavedPrompts    = "saved-prompts"
	DocTemplatePrompts = "user-template-prompts"
	DocReversePrompts  = "reverse-prompts"
)

// LocalStore persists small named JSON documents on the local filesystem.
// It is the durable fallback used when the object-store backend is
// unreachable, and the home of purely local state such as the current
// creator session.
type LocalStore struct {
	basePath string
}

// NewLocalStore initializes a LocalStore rooted at basePath.
func NewLocalStore(basePath string) (*LocalStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("storage: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	return &LocalStore{basePath: basePath}, nil
}

// BasePath returns the configured root directory.
func (s *LocalStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

// WriteDoc marshals v and persists it under the given document key.
func (s *LocalStore) WriteDoc(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", key, err)
	}
	_, err = s.Write(ctx, key+".json", data)
	return err
}

// ReadDoc loads the document at key into v. os.ErrNotExist is returned
// untouched so callers can treat a missing document as empty state.
func (s *LocalStore) ReadDoc(ctx context.Context, key string, v any) error {
	data, err := s.read(ctx, key+".json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("storage: decode %s: %w", key, err)
	}
	return nil
}

// Write persists the provided bytes at the given relative key and returns the
// canonicalized storage key. Keys are cleaned to prevent directory traversal.
func (s *LocalStore) Write(ctx context.Context, key string, data []byte) (string, error) {
	if s == nil {
		return "", errors.New("storage: no store configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cleanKey, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(cleanKey))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("storage: ensure directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	return cleanKey, nil
}

func (s *LocalStore) read(ctx context.Context, key string) ([]byte, error) {
	if s == nil {
		return nil, errors.New("storage: no store configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cleanKey, err := sanitizeKey(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.basePath, filepath.FromSlash(cleanKey)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("storage: read file: %w", err)
	}
	return data, nil
}

// sanitizeKey normalizes a key and prevents escaping the storage root.
func sanitizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("storage: key is required")
	}
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimPrefix(key, "./")
	key = strings.TrimLeft(key, "/")
	cleaned := filepath.Clean(key)
	cleaned = strings.ReplaceAll(cleaned, "\\", "/")
	if cleaned == "." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New("storage: invalid key")
	}
	return cleaned, nil
}
