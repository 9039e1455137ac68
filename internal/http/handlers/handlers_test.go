package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"studio/internal/collection"
	"studio/internal/domain"
	"studio/internal/gallery"
	"studio/internal/prompt"
	"studio/internal/providers/image"
	promptproviders "studio/internal/providers/prompt"
	"studio/internal/storage"
)

type stubGenerator struct {
	lastReq image.GenerateRequest
	err     error
}

func (g *stubGenerator) Generate(ctx context.Context, req image.GenerateRequest) ([]image.Asset, error) {
	g.lastReq = req
	if g.err != nil {
		return nil, g.err
	}
	return []image.Asset{{Format: "image/png", Width: 8, Height: 8, Data: []byte{0x89, 0x50}}}, nil
}

type stubReverse struct{ out string }

func (r *stubReverse) Reverse(ctx context.Context, data []byte, mime string) (string, error) {
	return r.out, nil
}

func newTestApp(t *testing.T) (*App, *stubGenerator, *storage.MemStore) {
	t.Helper()
	local, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	store := storage.NewMemStore("http://s3.local/b")
	gen := &stubGenerator{}

	app := NewApp(zerolog.Nop(), local)
	app.Generator = gen
	app.Sync = gallery.NewSynchronizer(store, local, zerolog.Nop())
	app.Collection = collection.NewBuilder(local, zerolog.Nop())
	app.Decoder = promptproviders.NewStaticDecoder()
	app.Optimizer = promptproviders.NewStaticOptimizer()
	app.Reverse = &stubReverse{out: "a reverse engineered prompt"}
	app.Compiler = prompt.Compiler{}
	app.Rand = rand.New(rand.NewSource(1))
	return app, gen, store
}

func doJSON(t *testing.T, h http.HandlerFunc, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestGetSettingsReturnsCompiledPrompt(t *testing.T) {
	app, _, _ := newTestApp(t)
	rec := doJSON(t, app.GetSettings, http.MethodGet, "/v1/settings", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp stateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.State.Settings.DressStyle != domain.DressStyles[0] {
		t.Fatalf("default dress style = %q", resp.State.Settings.DressStyle)
	}
	if !strings.Contains(resp.Prompt, "photorealistic") {
		t.Fatalf("prompt = %q", resp.Prompt)
	}
}

func TestPutSettingsPersistsAcrossRestart(t *testing.T) {
	local, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	app := NewApp(zerolog.Nop(), local)
	app.Compiler = prompt.Compiler{}

	state := domain.DefaultCreatorState()
	state.Settings.DressColor = "midnight blue"
	state.UseFreeText = true
	state.FreeText = "my own prompt"
	rec := doJSON(t, app.PutSettings, http.MethodPut, "/v1/settings", state)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp stateResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Prompt != "my own prompt" {
		t.Fatalf("active prompt = %q, want the free-text prompt", resp.Prompt)
	}

	app2 := NewApp(zerolog.Nop(), local)
	if got := app2.State().Settings.DressColor; got != "midnight blue" {
		t.Fatalf("restored dress color = %q", got)
	}
}

func TestSetDressStyleResetsDetails(t *testing.T) {
	app, _, _ := newTestApp(t)
	rec := doJSON(t, app.SetDressStyle, http.MethodPost, "/v1/settings/dress-style", dressStyleRequest{DressStyle: "Qipao"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp stateResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.State.Settings.DressDetails != domain.DressDetails["Qipao"][0] {
		t.Fatalf("dress details = %q", resp.State.Settings.DressDetails)
	}

	rec = doJSON(t, app.SetDressStyle, http.MethodPost, "/v1/settings/dress-style", dressStyleRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty style status = %d", rec.Code)
	}
}

func TestRandomizeKeepsInvariant(t *testing.T) {
	app, _, _ := newTestApp(t)
	for i := 0; i < 10; i++ {
		rec := doJSON(t, app.RandomizeSettings, http.MethodPost, "/v1/settings/randomize", nil)
		var resp stateResponse
		json.Unmarshal(rec.Body.Bytes(), &resp)
		details := domain.DressDetails[resp.State.Settings.DressStyle]
		found := false
		for _, d := range details {
			if d == resp.State.Settings.DressDetails {
				found = true
			}
		}
		if !found {
			t.Fatalf("randomized details %q invalid for style %q", resp.State.Settings.DressDetails, resp.State.Settings.DressStyle)
		}
	}
}

func TestGenerateImagesPersistsAndReturns(t *testing.T) {
	app, gen, store := newTestApp(t)
	rec := doJSON(t, app.GenerateImages, http.MethodPost, "/v1/images/generate", imageGenerateRequest{})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var resp imageGenerateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Images) != 1 || !resp.Synced {
		t.Fatalf("response = %+v", resp)
	}
	if gen.lastReq.Prompt != resp.Prompt {
		t.Fatalf("generator prompt %q != response prompt %q", gen.lastReq.Prompt, resp.Prompt)
	}
	// Image plus sidecar were uploaded.
	if store.Len() != 2 {
		t.Fatalf("store has %d objects, want 2", store.Len())
	}
}

func TestGenerateImagesAddsFidelityPrefix(t *testing.T) {
	app, gen, _ := newTestApp(t)
	ref := base64.StdEncoding.EncodeToString([]byte{1, 2, 3})
	rec := doJSON(t, app.GenerateImages, http.MethodPost, "/v1/images/generate", imageGenerateRequest{
		SubjectImage:     ref,
		SubjectImageMIME: "image/png",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.HasPrefix(gen.lastReq.Prompt, "Critically important:") {
		t.Fatalf("fidelity prefix missing: %q", gen.lastReq.Prompt)
	}
	if gen.lastReq.SubjectImage == nil || gen.lastReq.SubjectImage.MIME != "image/png" {
		t.Fatalf("subject image not passed through: %+v", gen.lastReq.SubjectImage)
	}
}

func TestGenerateImagesModelRefusal(t *testing.T) {
	app, gen, _ := newTestApp(t)
	gen.err = image.ErrNoImage
	rec := doJSON(t, app.GenerateImages, http.MethodPost, "/v1/images/generate", imageGenerateRequest{})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "model_refused") {
		t.Fatalf("refusal should carry its own error code: %s", rec.Body)
	}
}

func TestGenerateImagesProviderFailure(t *testing.T) {
	app, gen, _ := newTestApp(t)
	gen.err = errors.New("upstream 500")
	rec := doJSON(t, app.GenerateImages, http.MethodPost, "/v1/images/generate", imageGenerateRequest{})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "generation_failed") {
		t.Fatalf("generic failure should not read as a refusal: %s", rec.Body)
	}
}

func TestGalleryAfterGenerate(t *testing.T) {
	app, _, _ := newTestApp(t)
	doJSON(t, app.GenerateImages, http.MethodPost, "/v1/images/generate", imageGenerateRequest{})

	rec := doJSON(t, app.Gallery, http.MethodGet, "/v1/gallery", nil)
	var resp struct {
		Items  []domain.CollectionItem `json:"items"`
		Status gallery.Status          `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 1 || !resp.Status.Available {
		t.Fatalf("gallery = %+v", resp)
	}
}

func TestCollectionEndpoints(t *testing.T) {
	app, _, _ := newTestApp(t)

	rec := doJSON(t, app.SavePrompt, http.MethodPost, "/v1/prompts/save", savePromptRequest{Prompt: "keep this"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("save status = %d", rec.Code)
	}

	rec = doJSON(t, app.GetCollection, http.MethodGet, "/v1/collection", nil)
	var c domain.Collection
	if err := json.Unmarshal(rec.Body.Bytes(), &c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(c.Folders) != 4 {
		t.Fatalf("folders = %d", len(c.Folders))
	}
	saved := c.Folder(collection.FolderSavedPrompts)
	if saved == nil || len(saved.Items) != 1 || saved.Items[0].Content != "keep this" {
		t.Fatalf("saved folder = %+v", saved)
	}

	rec = doJSON(t, app.RefreshCollection, http.MethodPost, "/v1/collection/refresh", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh status = %d", rec.Code)
	}
}

func TestDecodePrompt(t *testing.T) {
	app, _, _ := newTestApp(t)
	rec := doJSON(t, app.DecodePrompt, http.MethodPost, "/v1/prompts/decode", decodeRequest{
		Text: "portrait of a female wearing a Hanfu, shot on a Leica M11",
		Save: true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp decodeResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Settings.DressStyle != "Hanfu" || resp.Settings.CameraModel != "Leica M11" {
		t.Fatalf("decoded settings = %+v", resp.Settings)
	}
	if resp.Saved == nil {
		t.Fatal("decode with save=true should return the stored item")
	}

	rec = doJSON(t, app.ListDecodedPrompts, http.MethodGet, "/v1/prompts/decoded", nil)
	if !strings.Contains(rec.Body.String(), "Leica M11") {
		t.Fatalf("decoded history missing entry: %s", rec.Body)
	}
}

func TestApplyDecodedPromptNormalizes(t *testing.T) {
	app, _, _ := newTestApp(t)
	partial := domain.Settings{DressStyle: "Qipao", DressColor: "gold"}
	rec := doJSON(t, app.ApplyDecodedPrompt, http.MethodPost, "/v1/prompts/decoded/apply", applyDecodedRequest{Settings: partial})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp stateResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.State.Settings.DressColor != "gold" {
		t.Fatalf("dress color = %q", resp.State.Settings.DressColor)
	}
	if resp.State.Settings.HairStyle == "" {
		t.Fatal("missing fields should be filled from defaults")
	}
	if resp.State.UseFreeText {
		t.Fatal("applying a decoded prompt should activate the structured prompt")
	}
}

func TestReversePrompt(t *testing.T) {
	app, _, _ := newTestApp(t)
	img := base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8})
	rec := doJSON(t, app.ReversePrompt, http.MethodPost, "/v1/prompts/reverse", reverseRequest{Image: img, MIME: "image/jpeg"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp reverseResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Prompt != "a reverse engineered prompt" {
		t.Fatalf("prompt = %q", resp.Prompt)
	}

	built := app.Collection.Build(nil)
	if items := built.Folder(collection.FolderReverse).Items; len(items) != 1 {
		t.Fatalf("reverse folder = %+v", items)
	}
}

func TestOptimizePromptUsesActiveWhenEmpty(t *testing.T) {
	app, _, _ := newTestApp(t)
	rec := doJSON(t, app.OptimizePrompt, http.MethodPost, "/v1/prompts/optimize", optimizeRequest{Instruction: "add more drama"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp optimizeResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if !strings.Contains(resp.Prompt, "add more drama") {
		t.Fatalf("optimized = %q", resp.Prompt)
	}

	rec = doJSON(t, app.OptimizePrompt, http.MethodPost, "/v1/prompts/optimize", optimizeRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing instruction status = %d", rec.Code)
	}
}

func TestTemplateDeleteViaRouter(t *testing.T) {
	app, _, _ := newTestApp(t)
	item, err := app.Collection.AddTemplate(context.Background(), "delete me")
	if err != nil {
		t.Fatalf("AddTemplate: %v", err)
	}

	r := chi.NewRouter()
	r.Delete("/v1/prompts/templates/{id}", app.DeleteTemplate)

	req := httptest.NewRequest(http.MethodDelete, "/v1/prompts/templates/"+item.ID, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/v1/prompts/templates/"+item.ID, nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", rec.Code)
	}
}

func TestHealthAndStatus(t *testing.T) {
	app, _, _ := newTestApp(t)
	rec := doJSON(t, app.Health, http.MethodGet, "/v1/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}
	rec = doJSON(t, app.Status, http.MethodGet, "/v1/status", nil)
	var st gallery.Status
	json.Unmarshal(rec.Body.Bytes(), &st)
	if !st.Available {
		t.Fatalf("status = %+v", st)
	}
}
