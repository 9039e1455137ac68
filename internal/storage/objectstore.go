package storage

import (
	"context"
	"strings"
	"time"
)

// ObjectInfo describes one stored object as returned by a listing.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ObjectStore is the narrow persistence surface the synchronizer needs. S3
// and the in-memory fake both satisfy it.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context) ([]ObjectInfo, error)
	PublicURL(key string) string
}

// Object key conventions. Each artifact is an image object plus a JSON
// sidecar sharing the same id; decoded prompts live in their own namespace.
const (
	imageKeyPrefix   = "image-"
	imageKeySuffix   = ".jpg"
	promptKeyPrefix  = "prompt-"
	promptKeySuffix  = ".json"
	decodedKeyPrefix = "decoded-prompt-"
	decodedKeySuffix = ".json"
)

// ImageKey returns the object key holding the image bytes for an artifact id.
func ImageKey(id string) string { return imageKeyPrefix + id + imageKeySuffix }

// PromptKey returns the sidecar key for an artifact id.
func PromptKey(id string) string { return promptKeyPrefix + id + promptKeySuffix }

// DecodedPromptKey returns the object key for a stored decoded prompt.
func DecodedPromptKey(id string) string { return decodedKeyPrefix + id + decodedKeySuffix }

// ParsePromptKey extracts the artifact id from a sidecar key. The second
// return is false for keys outside the prompt namespace.
func ParsePromptKey(key string) (string, bool) {
	if strings.HasPrefix(key, decodedKeyPrefix) {
		return "", false
	}
	return parseKey(key, promptKeyPrefix, promptKeySuffix)
}

// ParseDecodedPromptKey extracts the id from a decoded-prompt key.
func ParseDecodedPromptKey(key string) (string, bool) {
	return parseKey(key, decodedKeyPrefix, decodedKeySuffix)
}

// KnownKey reports whether the key belongs to one of the namespaces this
// application writes.
func KnownKey(key string) bool {
	if _, ok := parseKey(key, imageKeyPrefix, imageKeySuffix); ok {
		return true
	}
	if _, ok := ParsePromptKey(key); ok {
		return true
	}
	_, ok := ParseDecodedPromptKey(key)
	return ok
}

func parseKey(key, prefix, suffix string) (string, bool) {
	if !strings.HasPrefix(key, prefix) || !strings.HasSuffix(key, suffix) {
		return "", false
	}
	id := key[len(prefix) : len(key)-len(suffix)]
	if id == "" {
		return "", false
	}
	return id, true
}
