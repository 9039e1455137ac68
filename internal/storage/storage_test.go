package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestKeyRoundTrip(t *testing.T) {
	id := "3f2a9c1e"
	if got, ok := ParsePromptKey(PromptKey(id)); !ok || got != id {
		t.Fatalf("ParsePromptKey(%q) = %q, %v", PromptKey(id), got, ok)
	}
	if got, ok := ParseDecodedPromptKey(DecodedPromptKey(id)); !ok || got != id {
		t.Fatalf("ParseDecodedPromptKey = %q, %v", got, ok)
	}
}

func TestParsePromptKeyRejectsForeignKeys(t *testing.T) {
	for _, key := range []string{
		"image-abc.jpg",
		"decoded-prompt-abc.json",
		"prompt-.json",
		"prompt-abc.txt",
		"random.bin",
		"",
	} {
		if _, ok := ParsePromptKey(key); ok {
			t.Fatalf("ParsePromptKey(%q) accepted a non-sidecar key", key)
		}
	}
}

func TestParseDecodedPromptKey(t *testing.T) {
	if _, ok := ParseDecodedPromptKey("prompt-abc.json"); ok {
		t.Fatal("plain sidecar key parsed as decoded prompt")
	}
	id, ok := ParseDecodedPromptKey("decoded-prompt-xyz.json")
	if !ok || id != "xyz" {
		t.Fatalf("got %q, %v", id, ok)
	}
}

func TestLocalStoreDocRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	ctx := context.Background()

	type state struct {
		Prompt string `json:"prompt"`
		Count  int    `json:"count"`
	}
	want := state{Prompt: "sunset portrait", Count: 3}
	if err := store.WriteDoc(ctx, DocCreatorState, want); err != nil {
		t.Fatalf("WriteDoc: %v", err)
	}

	var got state
	if err := store.ReadDoc(ctx, DocCreatorState, &got); err != nil {
		t.Fatalf("ReadDoc: %v", err)
	}
	if got != want {
		t.Fatalf("round trip = %+v, want %+v", got, want)
	}
}

func TestLocalStoreMissingDoc(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	var v map[string]any
	err = store.ReadDoc(context.Background(), "never-written", &v)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing doc error = %v, want os.ErrNotExist", err)
	}
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	if _, err := store.Write(context.Background(), "../evil.json", []byte("{}")); err == nil {
		t.Fatal("traversal key accepted")
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "evil.json")); err == nil {
		t.Fatal("traversal write escaped the base path")
	}
}

func TestMemStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore("http://localhost/test-bucket")

	if err := store.Put(ctx, ImageKey("a1"), []byte{0xFF, 0xD8}, "image/jpeg"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(ctx, PromptKey("a1"), []byte(`{"prompt":"x"}`), "application/json"); err != nil {
		t.Fatalf("Put sidecar: %v", err)
	}

	infos, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("List returned %d objects, want 2", len(infos))
	}

	data, err := store.Get(ctx, PromptKey("a1"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(data) != `{"prompt":"x"}` {
		t.Fatalf("Get = %s", data)
	}

	if _, err := store.Get(ctx, "missing"); err == nil {
		t.Fatal("Get of missing key should fail")
	}

	if got := store.PublicURL(ImageKey("a1")); got != "http://localhost/test-bucket/image-a1.jpg" {
		t.Fatalf("PublicURL = %q", got)
	}
}

func TestS3StorePublicURL(t *testing.T) {
	cases := []struct {
		cfg  S3Config
		key  string
		want string
	}{
		{
			cfg:  S3Config{Endpoint: "http://localhost:9000", Bucket: "gallery", UsePathStyle: true},
			key:  "image-a.jpg",
			want: "http://localhost:9000/gallery/image-a.jpg",
		},
		{
			cfg:  S3Config{Endpoint: "https://nyc3.digitaloceanspaces.com", Bucket: "gallery"},
			key:  "image-a.jpg",
			want: "https://gallery.nyc3.digitaloceanspaces.com/image-a.jpg",
		},
		{
			cfg:  S3Config{Region: "us-east-1", Bucket: "gallery"},
			key:  "image-a.jpg",
			want: "https://gallery.s3.us-east-1.amazonaws.com/image-a.jpg",
		},
	}
	for _, tc := range cases {
		s := &S3Store{cfg: tc.cfg}
		if got := s.PublicURL(tc.key); got != tc.want {
			t.Fatalf("PublicURL(%+v, %q) = %q, want %q", tc.cfg, tc.key, got, tc.want)
		}
	}
}
