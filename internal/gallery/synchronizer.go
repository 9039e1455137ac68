package gallery

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"studio/internal/domain"
	"studio/internal/storage"
	"studio/pkg/zip"
)

// sidecarFetchLimit bounds how many sidecar downloads a refresh runs at
// once.
const sidecarFetchLimit = 8

// promptSidecar is the JSON document stored next to each uploaded image.
type promptSidecar struct {
	Prompt    string          `json:"prompt"`
	Settings  domain.Settings `json:"settings"`
	Timestamp int64           `json:"timestamp"`
}

// decodedSidecar is the stored form of a decoded prompt. Content is the
// structured settings record, matching the objects other clients of the
// bucket write and read.
type decodedSidecar struct {
	Timestamp int64           `json:"timestamp"`
	Content   domain.Settings `json:"content"`
}

// Status reports the synchronizer's view of the backend.
type Status struct {
	Available bool   `json:"available"`
	LastError string `json:"lastError,omitempty"`
}

// Synchronizer owns the reconciliation between the object-store backend and
// the in-memory gallery view. Uploads fall back to local-only storage when
// the backend is unreachable, so a generated image never disappears from the
// current session.
type Synchronizer struct {
	store storage.ObjectStore
	local *storage.LocalStore
	log   zerolog.Logger

	// Sidecar objects are immutable once written, so their parsed form is
	// cached across refreshes.
	sidecars *gocache.Cache

	mu        sync.Mutex
	available bool
	lastErr   string
	images    []domain.CollectionItem
	decoded   []domain.CollectionItem
	localOnly []domain.CollectionItem
}

// NewSynchronizer builds a synchronizer over the given backend. local may be
// nil, in which case fallback items survive only for the process lifetime.
func NewSynchronizer(store storage.ObjectStore, local *storage.LocalStore, log zerolog.Logger) *Synchronizer {
	s := &Synchronizer{
		store:     store,
		local:     local,
		log:       log,
		sidecars:  gocache.New(30*time.Minute, 10*time.Minute),
		available: true,
	}
	s.loadLocalFallback()
	return s
}

func (s *Synchronizer) loadLocalFallback() {
	if s.local == nil {
		return
	}
	var items []domain.CollectionItem
	err := s.local.ReadDoc(context.Background(), storage.DocGalleryItems, &items)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn().Err(err).Msg("load local gallery fallback")
		}
		return
	}
	s.localOnly = items
}

// Status returns the current availability view.
func (s *Synchronizer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{Available: s.available, LastError: s.lastErr}
}

// markUnavailable flips the availability flag, logging the failure only at
// the transition edge so repeated errors do not spam.
func (s *Synchronizer) markUnavailable(err error) {
	s.mu.Lock()
	wasAvailable := s.available
	s.available = false
	s.lastErr = err.Error()
	// Backend-derived entries are stale once the backend is gone; the
	// local-only list survives.
	s.images = nil
	s.decoded = nil
	s.mu.Unlock()

	if wasAvailable {
		s.log.Error().Err(err).Msg("gallery backend unavailable, falling back to local storage")
	}
}

// Refresh re-lists the backend and rebuilds the gallery view from scratch.
// A failure fetching any single sidecar skips that item with a warning; only
// a failed listing marks the backend unavailable.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	infos, err := s.store.List(ctx)
	if err != nil {
		s.markUnavailable(fmt.Errorf("gallery: list objects: %w", err))
		return fmt.Errorf("gallery: list objects: %w", err)
	}

	type fetched struct {
		image   *domain.CollectionItem
		decoded *domain.CollectionItem
	}
	results := make([]fetched, len(infos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sidecarFetchLimit)
	for i, info := range infos {
		g.Go(func() error {
			if id, ok := storage.ParsePromptKey(info.Key); ok {
				item, err := s.fetchImageItem(gctx, id, info.Key)
				if err != nil {
					s.log.Warn().Err(err).Str("key", info.Key).Msg("skipping unreadable sidecar")
					return nil
				}
				results[i].image = item
				return nil
			}
			if id, ok := storage.ParseDecodedPromptKey(info.Key); ok {
				item, err := s.fetchDecodedItem(gctx, id, info.Key)
				if err != nil {
					s.log.Warn().Err(err).Str("key", info.Key).Msg("skipping unreadable decoded prompt")
					return nil
				}
				results[i].decoded = item
			}
			// Unrecognized keys are ignored.
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Only context cancellation reaches here; per-item failures are
		// swallowed above.
		return fmt.Errorf("gallery: refresh: %w", err)
	}

	var images, decoded []domain.CollectionItem
	for _, r := range results {
		if r.image != nil {
			images = append(images, *r.image)
		}
		if r.decoded != nil {
			decoded = append(decoded, *r.decoded)
		}
	}
	sortByTimestampDesc(images)
	sortByTimestampDesc(decoded)

	s.mu.Lock()
	wasUnavailable := !s.available
	s.available = true
	s.lastErr = ""
	s.images = images
	s.decoded = decoded
	s.mu.Unlock()

	if wasUnavailable {
		s.log.Info().Int("images", len(images)).Msg("gallery backend reachable again")
	}
	return nil
}

func (s *Synchronizer) fetchImageItem(ctx context.Context, id, key string) (*domain.CollectionItem, error) {
	var sc promptSidecar
	if cached, ok := s.sidecars.Get(key); ok {
		sc = cached.(promptSidecar)
	} else {
		data, err := s.store.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &sc); err != nil {
			return nil, fmt.Errorf("parse sidecar %s: %w", key, err)
		}
		s.sidecars.SetDefault(key, sc)
	}

	settings := sc.Settings
	return &domain.CollectionItem{
		ID:        id,
		Kind:      domain.KindImage,
		Timestamp: sc.Timestamp,
		ImageURL:  s.store.PublicURL(storage.ImageKey(id)),
		Content:   sc.Prompt,
		Settings:  &settings,
	}, nil
}

func (s *Synchronizer) fetchDecodedItem(ctx context.Context, id, key string) (*domain.CollectionItem, error) {
	var sc decodedSidecar
	if cached, ok := s.sidecars.Get(key); ok {
		sc = cached.(decodedSidecar)
	} else {
		data, err := s.store.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &sc); err != nil {
			return nil, fmt.Errorf("parse decoded prompt %s: %w", key, err)
		}
		s.sidecars.SetDefault(key, sc)
	}

	settings := sc.Content
	return &domain.CollectionItem{
		ID:        id,
		Kind:      domain.KindDecodedPrompt,
		Timestamp: sc.Timestamp,
		Settings:  &settings,
	}, nil
}

// PersistArtifact uploads the image and its sidecar sequentially, image
// first. On any upload failure the artifact is kept in the local-only list
// so the session view never loses it; on success a full refresh reconciles
// the canonical view.
func (s *Synchronizer) PersistArtifact(ctx context.Context, art domain.Artifact) (domain.CollectionItem, error) {
	if art.ID == "" {
		art.ID = uuid.NewString()
	}
	if art.CreatedAt.IsZero() {
		art.CreatedAt = time.Now()
	}
	if art.MIMEType == "" {
		art.MIMEType = "image/jpeg"
	}

	settings := art.Settings
	item := domain.CollectionItem{
		ID:        art.ID,
		Kind:      domain.KindImage,
		Timestamp: domain.EpochMillis(art.CreatedAt),
		Content:   art.Prompt,
		Settings:  &settings,
	}

	sidecar, err := json.Marshal(promptSidecar{
		Prompt:    art.Prompt,
		Settings:  art.Settings,
		Timestamp: domain.EpochMillis(art.CreatedAt),
	})
	if err != nil {
		return domain.CollectionItem{}, fmt.Errorf("gallery: encode sidecar: %w", err)
	}

	err = s.store.Put(ctx, storage.ImageKey(art.ID), art.Data, art.MIMEType)
	if err == nil {
		err = s.store.Put(ctx, storage.PromptKey(art.ID), sidecar, "application/json")
	}
	if err != nil {
		s.markUnavailable(fmt.Errorf("gallery: upload artifact %s: %w", art.ID, err))
		item.ImageURL = dataURL(art.MIMEType, art.Data)
		s.appendLocalOnly(ctx, item)
		return item, nil
	}

	item.ImageURL = s.store.PublicURL(storage.ImageKey(art.ID))
	if err := s.Refresh(ctx); err != nil {
		s.log.Warn().Err(err).Msg("refresh after upload failed")
	}
	return item, nil
}

// SaveDecodedPrompt stores a decoded settings record as its own backend
// object, falling back to the local-only list like artifact uploads do.
func (s *Synchronizer) SaveDecodedPrompt(ctx context.Context, settings domain.Settings) (domain.CollectionItem, error) {
	now := time.Now()
	item := domain.CollectionItem{
		ID:        uuid.NewString(),
		Kind:      domain.KindDecodedPrompt,
		Timestamp: domain.EpochMillis(now),
		Settings:  &settings,
	}

	data, err := json.Marshal(decodedSidecar{Timestamp: item.Timestamp, Content: settings})
	if err != nil {
		return domain.CollectionItem{}, fmt.Errorf("gallery: encode decoded prompt: %w", err)
	}
	if err := s.store.Put(ctx, storage.DecodedPromptKey(item.ID), data, "application/json"); err != nil {
		s.markUnavailable(fmt.Errorf("gallery: upload decoded prompt: %w", err))
		s.appendLocalOnly(ctx, item)
		return item, nil
	}
	if err := s.Refresh(ctx); err != nil {
		s.log.Warn().Err(err).Msg("refresh after decoded prompt upload failed")
	}
	return item, nil
}

func (s *Synchronizer) appendLocalOnly(ctx context.Context, item domain.CollectionItem) {
	s.mu.Lock()
	s.localOnly = append([]domain.CollectionItem{item}, s.localOnly...)
	snapshot := make([]domain.CollectionItem, len(s.localOnly))
	copy(snapshot, s.localOnly)
	s.mu.Unlock()

	if s.local != nil {
		if err := s.local.WriteDoc(ctx, storage.DocGalleryItems, snapshot); err != nil {
			s.log.Warn().Err(err).Msg("persist local gallery fallback")
		}
	}
}

// Images returns the gallery view: backend images merged with local-only
// fallbacks, newest first.
func (s *Synchronizer) Images() []domain.CollectionItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CollectionItem, 0, len(s.images)+len(s.localOnly))
	out = append(out, s.images...)
	for _, item := range s.localOnly {
		if item.Kind == domain.KindImage {
			out = append(out, item)
		}
	}
	sortByTimestampDesc(out)
	return out
}

// DecodedPrompts returns every decoded prompt, backend and local, newest
// first.
func (s *Synchronizer) DecodedPrompts() []domain.CollectionItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CollectionItem, 0, len(s.decoded))
	out = append(out, s.decoded...)
	for _, item := range s.localOnly {
		if item.Kind == domain.KindDecodedPrompt {
			out = append(out, item)
		}
	}
	sortByTimestampDesc(out)
	return out
}

// ExportArchive downloads every stored image and prompt document and bundles
// them into a zip for download. Unrecognized keys are left out of the
// archive.
func (s *Synchronizer) ExportArchive(ctx context.Context) ([]byte, error) {
	infos, err := s.store.List(ctx)
	if err != nil {
		s.markUnavailable(fmt.Errorf("gallery: list objects: %w", err))
		return nil, fmt.Errorf("gallery: export: %w", err)
	}

	entries := make([]zip.Entry, len(infos))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sidecarFetchLimit)
	for i, info := range infos {
		if !storage.KnownKey(info.Key) {
			continue
		}
		g.Go(func() error {
			data, err := s.store.Get(gctx, info.Key)
			if err != nil {
				return fmt.Errorf("gallery: export %s: %w", info.Key, err)
			}
			entries[i] = zip.Entry{Name: info.Key, Data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.Name != "" {
			kept = append(kept, e)
		}
	}
	return zip.Archive(kept)
}

// dataURL inlines image bytes so a fallback item stays renderable without
// the backend.
func dataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func sortByTimestampDesc(items []domain.CollectionItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp > items[j].Timestamp
	})
}
