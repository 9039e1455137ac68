package collection

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"studio/internal/domain"
	"studio/internal/storage"
)

func TestBuildFourFolders(t *testing.T) {
	b := NewBuilder(nil, zerolog.Nop())
	c := b.Build(nil)

	wantOrder := []string{FolderSavedPrompts, FolderTemplates, FolderReverse, FolderBackend}
	if len(c.Folders) != len(wantOrder) {
		t.Fatalf("got %d folders, want %d", len(c.Folders), len(wantOrder))
	}
	for i, id := range wantOrder {
		if c.Folders[i].ID != id {
			t.Fatalf("folder[%d].ID = %q, want %q", i, c.Folders[i].ID, id)
		}
	}
	if f := c.Folder(FolderBackend); f == nil || f.Name != "S3 Bucket" {
		t.Fatalf("backend folder = %+v", f)
	}
}

func TestBuiltinTemplatesKeepInsertionOrder(t *testing.T) {
	b := NewBuilder(nil, zerolog.Nop())
	items := b.Build(nil).Folder(FolderTemplates).Items

	if len(items) != len(builtinTemplates) {
		t.Fatalf("got %d templates, want %d", len(items), len(builtinTemplates))
	}
	for i, item := range items {
		if item.Content != builtinTemplates[i] {
			t.Fatalf("template %d out of order", i)
		}
		if i > 0 && items[i-1].Timestamp >= item.Timestamp {
			t.Fatalf("synthetic timestamps not strictly increasing at %d", i)
		}
	}
}

func TestSavePromptAndRebuild(t *testing.T) {
	ctx := context.Background()
	b := NewBuilder(nil, zerolog.Nop())

	if _, err := b.SavePrompt(ctx, "first"); err != nil {
		t.Fatalf("SavePrompt: %v", err)
	}
	if _, err := b.SavePrompt(ctx, "second"); err != nil {
		t.Fatalf("SavePrompt: %v", err)
	}
	items := b.Build(nil).Folder(FolderSavedPrompts).Items
	if len(items) != 2 {
		t.Fatalf("saved prompts = %d, want 2", len(items))
	}

	if _, err := b.SavePrompt(ctx, ""); err == nil {
		t.Fatal("empty prompt should be rejected")
	}
}

func TestTemplateLifecycle(t *testing.T) {
	ctx := context.Background()
	b := NewBuilder(nil, zerolog.Nop())

	item, err := b.AddTemplate(ctx, "my custom template")
	if err != nil {
		t.Fatalf("AddTemplate: %v", err)
	}
	items := b.Build(nil).Folder(FolderTemplates).Items
	if len(items) != len(builtinTemplates)+1 {
		t.Fatalf("templates = %d", len(items))
	}

	if !b.DeleteTemplate(ctx, item.ID) {
		t.Fatal("DeleteTemplate returned false for existing template")
	}
	if b.DeleteTemplate(ctx, item.ID) {
		t.Fatal("DeleteTemplate returned true for already-deleted template")
	}
	if b.DeleteTemplate(ctx, "builtin-template-1") {
		t.Fatal("built-in template must not be deletable")
	}
	items = b.Build(nil).Folder(FolderTemplates).Items
	if len(items) != len(builtinTemplates) {
		t.Fatalf("templates after delete = %d", len(items))
	}
}

func TestBuildMergesBackendItems(t *testing.T) {
	b := NewBuilder(nil, zerolog.Nop())
	backend := []domain.CollectionItem{
		{ID: "a", Kind: domain.KindImage, Timestamp: 100},
		{ID: "b", Kind: domain.KindImage, Timestamp: 300},
		{ID: "c", Kind: domain.KindDecodedPrompt, Timestamp: 200},
	}
	items := b.Build(backend).Folder(FolderBackend).Items
	if len(items) != 3 {
		t.Fatalf("backend items = %d", len(items))
	}
	if items[0].ID != "b" || items[1].ID != "c" || items[2].ID != "a" {
		t.Fatalf("backend folder not sorted newest first: %+v", items)
	}
}

func TestSourcesPersistAcrossRestart(t *testing.T) {
	ctx := context.Background()
	local, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	b := NewBuilder(local, zerolog.Nop())
	if _, err := b.SavePrompt(ctx, "durable"); err != nil {
		t.Fatalf("SavePrompt: %v", err)
	}
	if _, err := b.AddReversePrompt(ctx, "reversed"); err != nil {
		t.Fatalf("AddReversePrompt: %v", err)
	}
	if _, err := b.AddTemplate(ctx, "custom"); err != nil {
		t.Fatalf("AddTemplate: %v", err)
	}

	b2 := NewBuilder(local, zerolog.Nop())
	c := b2.Build(nil)
	if items := c.Folder(FolderSavedPrompts).Items; len(items) != 1 || items[0].Content != "durable" {
		t.Fatalf("saved prompts not restored: %+v", items)
	}
	if items := c.Folder(FolderReverse).Items; len(items) != 1 || items[0].Content != "reversed" {
		t.Fatalf("reverse prompts not restored: %+v", items)
	}
	if items := c.Folder(FolderTemplates).Items; len(items) != len(builtinTemplates)+1 {
		t.Fatalf("templates not restored: %d", len(items))
	}
}

func TestUpdateTemplate(t *testing.T) {
	ctx := context.Background()
	b := NewBuilder(nil, zerolog.Nop())

	item, err := b.AddTemplate(ctx, "first draft")
	if err != nil {
		t.Fatalf("AddTemplate: %v", err)
	}
	updated, ok := b.UpdateTemplate(ctx, item.ID, "second draft")
	if !ok || updated.Content != "second draft" {
		t.Fatalf("UpdateTemplate = %+v, %v", updated, ok)
	}
	if updated.Timestamp < item.Timestamp {
		t.Fatal("update should refresh the timestamp")
	}
	if _, ok := b.UpdateTemplate(ctx, "builtin-template-1", "nope"); ok {
		t.Fatal("built-in templates must be immutable")
	}
	if _, ok := b.UpdateTemplate(ctx, item.ID, ""); ok {
		t.Fatal("empty content must be rejected")
	}
}

func TestResetTemplates(t *testing.T) {
	ctx := context.Background()
	local, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	b := NewBuilder(local, zerolog.Nop())
	if _, err := b.AddTemplate(ctx, "user one"); err != nil {
		t.Fatalf("AddTemplate: %v", err)
	}
	b.ResetTemplates(ctx)

	c := b.Build(nil)
	if got := len(c.Folder(FolderTemplates).Items); got != len(builtinTemplates) {
		t.Fatalf("after reset %d templates, want %d built-ins", got, len(builtinTemplates))
	}

	b2 := NewBuilder(local, zerolog.Nop())
	c2 := b2.Build(nil)
	if got := len(c2.Folder(FolderTemplates).Items); got != len(builtinTemplates) {
		t.Fatalf("reset not persisted, %d templates", got)
	}
}
