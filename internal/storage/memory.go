package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemStore is an in-memory ObjectStore. It backs local-only deployments
// where no S3 endpoint is configured, and doubles as the store used by
// tests.
type MemStore struct {
	mu      sync.RWMutex
	objects map[string]memObject
	baseURL string
}

type memObject struct {
	data        []byte
	contentType string
	modified    time.Time
}

// NewMemStore returns an empty store. baseURL prefixes the synthetic public
// URLs; it may be empty.
func NewMemStore(baseURL string) *MemStore {
	return &MemStore{objects: make(map[string]memObject), baseURL: baseURL}
}

func (m *MemStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m.mu.Lock()
	m.objects[key] = memObject{data: cp, contentType: contentType, modified: time.Now()}
	m.mu.Unlock()
	return nil
}

func (m *MemStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: get %s: object not found", key)
	}
	cp := make([]byte, len(obj.data))
	copy(cp, obj.data)
	return cp, nil
}

func (m *MemStore) List(ctx context.Context) ([]ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	infos := make([]ObjectInfo, 0, len(m.objects))
	for key, obj := range m.objects {
		infos = append(infos, ObjectInfo{Key: key, Size: int64(len(obj.data)), LastModified: obj.modified})
	}
	m.mu.RUnlock()
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

func (m *MemStore) PublicURL(key string) string {
	return m.baseURL + "/" + key
}

// Delete removes an object if present.
func (m *MemStore) Delete(key string) {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
}

// Len reports how many objects the store holds.
func (m *MemStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
