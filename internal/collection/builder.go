package collection

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"studio/internal/domain"
	"studio/internal/storage"
)

// Stable folder ids; the UI keys its selection off these, so they survive
// rebuilds.
const (
	FolderSavedPrompts = "user-saved-prompts"
	FolderTemplates    = "ai-prompt-templates"
	FolderReverse      = "reverse-prompts"
	FolderBackend      = "s3-bucket-main"
)

// templateEpoch anchors the synthetic timestamps of built-in templates so
// they keep insertion order instead of recency order.
var templateEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

var builtinTemplates = []string{
	"A photorealistic, ultra-detailed portrait of a stunning East Asian female. The subject is wearing a flowing red Hanfu with wide Tang Dynasty sleeves. The scene is set against an ancient temple at dusk, with floating lanterns in the background. Captured on a Canon EOS R5 with an 85mm f/1.4 portrait prime. Lighting: very soft and realistic. The final image must be in a 9:16 aspect ratio.",
	"A candid street-style photograph of a young European male in casual streetwear, an oversized fleece hoodie and distressed jeans, leaning against a graffiti-covered brick wall. Neon-lit cyberpunk alleyway in the background. Shot on a Leica M11 with a 35mm f/1.4 wide prime. Dramatic Rembrandt lighting with deep shadows.",
	"An ethereal fine-art portrait of a South Asian female in an intricately embroidered emerald saree, photographed in a misty bamboo forest with low-hanging fog. Backlit silhouette with rim lighting and a soft, dreamy bloom around light sources. Captured on a Hasselblad X1D II 50C with a 100mm macro lens. 4:5 crop, editorial quality.",
	"A dynamic full-body fashion shot of a model in an avant-garde sculptural piece with origami-like folds, captured mid-air during a jump on a minimalist concrete studio set. Flat, even studio lighting, crisp hard-edged shadows. Arri Alexa LF with an anamorphic 50mm lens for a cinematic wide-screen look. 21:9 aspect ratio.",
}

// Builder merges the four prompt sources into a single collection read
// model. Each source maps to exactly one folder; every change triggers a
// full rebuild rather than an incremental patch.
type Builder struct {
	local *storage.LocalStore
	log   zerolog.Logger

	mu        sync.Mutex
	saved     []domain.CollectionItem
	templates []domain.CollectionItem
	reverse   []domain.CollectionItem
}

// NewBuilder loads the persisted prompt sources from local storage. A nil
// store yields a memory-only builder.
func NewBuilder(local *storage.LocalStore, log zerolog.Logger) *Builder {
	b := &Builder{local: local, log: log}
	b.loadDoc(storage.DocSavedPrompts, &b.saved)
	b.loadDoc(storage.DocTemplatePrompts, &b.templates)
	b.loadDoc(storage.DocReversePrompts, &b.reverse)
	return b
}

func (b *Builder) loadDoc(doc string, dst *[]domain.CollectionItem) {
	if b.local == nil {
		return
	}
	err := b.local.ReadDoc(context.Background(), doc, dst)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		b.log.Warn().Err(err).Str("doc", doc).Msg("load prompt source")
	}
}

func (b *Builder) persist(ctx context.Context, doc string, items []domain.CollectionItem) {
	if b.local == nil {
		return
	}
	if err := b.local.WriteDoc(ctx, doc, items); err != nil {
		b.log.Warn().Err(err).Str("doc", doc).Msg("persist prompt source")
	}
}

// SavePrompt appends a prompt to the user-saved folder source.
func (b *Builder) SavePrompt(ctx context.Context, content string) (domain.CollectionItem, error) {
	if content == "" {
		return domain.CollectionItem{}, fmt.Errorf("collection: empty prompt")
	}
	item := domain.CollectionItem{
		ID:        uuid.NewString(),
		Kind:      domain.KindSavedPrompt,
		Timestamp: domain.EpochMillis(time.Now()),
		Content:   content,
	}
	b.mu.Lock()
	b.saved = append(b.saved, item)
	snapshot := append([]domain.CollectionItem(nil), b.saved...)
	b.mu.Unlock()
	b.persist(ctx, storage.DocSavedPrompts, snapshot)
	return item, nil
}

// AddTemplate appends a user-defined template.
func (b *Builder) AddTemplate(ctx context.Context, content string) (domain.CollectionItem, error) {
	if content == "" {
		return domain.CollectionItem{}, fmt.Errorf("collection: empty template")
	}
	item := domain.CollectionItem{
		ID:        uuid.NewString(),
		Kind:      domain.KindTemplate,
		Timestamp: domain.EpochMillis(time.Now()),
		Content:   content,
	}
	b.mu.Lock()
	b.templates = append(b.templates, item)
	snapshot := append([]domain.CollectionItem(nil), b.templates...)
	b.mu.Unlock()
	b.persist(ctx, storage.DocTemplatePrompts, snapshot)
	return item, nil
}

// DeleteTemplate removes a user template by id. Built-in templates cannot
// be deleted.
func (b *Builder) DeleteTemplate(ctx context.Context, id string) bool {
	b.mu.Lock()
	removed := false
	kept := b.templates[:0]
	for _, item := range b.templates {
		if item.ID == id {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	b.templates = kept
	snapshot := append([]domain.CollectionItem(nil), b.templates...)
	b.mu.Unlock()
	if removed {
		b.persist(ctx, storage.DocTemplatePrompts, snapshot)
	}
	return removed
}

// UpdateTemplate rewrites the content of a user template. Built-in
// templates are immutable; updating one returns false.
func (b *Builder) UpdateTemplate(ctx context.Context, id, content string) (domain.CollectionItem, bool) {
	if content == "" {
		return domain.CollectionItem{}, false
	}
	b.mu.Lock()
	var updated domain.CollectionItem
	found := false
	for i := range b.templates {
		if b.templates[i].ID == id {
			b.templates[i].Content = content
			b.templates[i].Timestamp = domain.EpochMillis(time.Now())
			updated = b.templates[i]
			found = true
			break
		}
	}
	snapshot := append([]domain.CollectionItem(nil), b.templates...)
	b.mu.Unlock()
	if found {
		b.persist(ctx, storage.DocTemplatePrompts, snapshot)
	}
	return updated, found
}

// ResetTemplates drops every user template, leaving only the built-ins.
func (b *Builder) ResetTemplates(ctx context.Context) {
	b.mu.Lock()
	b.templates = nil
	b.mu.Unlock()
	b.persist(ctx, storage.DocTemplatePrompts, nil)
}

// AddReversePrompt records a reverse-engineered prompt in its history
// folder.
func (b *Builder) AddReversePrompt(ctx context.Context, content string) (domain.CollectionItem, error) {
	if content == "" {
		return domain.CollectionItem{}, fmt.Errorf("collection: empty reverse prompt")
	}
	item := domain.CollectionItem{
		ID:        uuid.NewString(),
		Kind:      domain.KindReversePrompt,
		Timestamp: domain.EpochMillis(time.Now()),
		Content:   content,
	}
	b.mu.Lock()
	b.reverse = append(b.reverse, item)
	snapshot := append([]domain.CollectionItem(nil), b.reverse...)
	b.mu.Unlock()
	b.persist(ctx, storage.DocReversePrompts, snapshot)
	return item, nil
}

// Build assembles the full collection tree. backendItems is the
// synchronizer's current view (images plus decoded prompts); the other
// three folders come from the builder's own sources.
func (b *Builder) Build(backendItems []domain.CollectionItem) domain.Collection {
	b.mu.Lock()
	saved := append([]domain.CollectionItem(nil), b.saved...)
	userTemplates := append([]domain.CollectionItem(nil), b.templates...)
	reverse := append([]domain.CollectionItem(nil), b.reverse...)
	b.mu.Unlock()

	sortDesc(saved)
	sortDesc(reverse)

	templates := builtinTemplateItems()
	templates = append(templates, userTemplates...)

	backend := append([]domain.CollectionItem(nil), backendItems...)
	sortDesc(backend)

	return domain.Collection{Folders: []domain.CollectionFolder{
		{ID: FolderSavedPrompts, Name: "My Saved Prompts", Items: saved},
		{ID: FolderTemplates, Name: "AI Prompt Templates", Items: templates},
		{ID: FolderReverse, Name: "Reverse Engineered", Items: reverse},
		{ID: FolderBackend, Name: "S3 Bucket", Items: backend},
	}}
}

// builtinTemplateItems materializes the shipped templates with synthetic
// timestamps spaced one second apart so display order matches declaration
// order.
func builtinTemplateItems() []domain.CollectionItem {
	items := make([]domain.CollectionItem, len(builtinTemplates))
	for i, content := range builtinTemplates {
		items[i] = domain.CollectionItem{
			ID:        fmt.Sprintf("builtin-template-%d", i+1),
			Kind:      domain.KindTemplate,
			Timestamp: domain.EpochMillis(templateEpoch.Add(time.Duration(i) * time.Second)),
			Content:   content,
		}
	}
	return items
}

func sortDesc(items []domain.CollectionItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp > items[j].Timestamp
	})
}
