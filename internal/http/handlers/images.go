package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"studio/internal/domain"
	"studio/internal/middleware"
	"studio/internal/prompt"
	"studio/internal/providers/image"
)

type imageGenerateRequest struct {
	// Prompt overrides the session's active prompt when set.
	Prompt   string `json:"prompt"`
	Quantity int    `json:"quantity"`
	// SubjectImage is the optional base64-encoded reference photo.
	SubjectImage     string `json:"subjectImage"`
	SubjectImageMIME string `json:"subjectImageMime"`
}

type generatedImage struct {
	Item   domain.CollectionItem `json:"item"`
	Width  int                   `json:"width"`
	Height int                   `json:"height"`
}

type imageGenerateResponse struct {
	Prompt string           `json:"prompt"`
	Images []generatedImage `json:"images"`
	Synced bool             `json:"synced"`
}

// GenerateImages runs a generation with the active prompt and persists each
// result. Persistence failures never fail the request; the artifacts fall
// back to local storage and stay visible in the gallery.
func (a *App) GenerateImages(w http.ResponseWriter, r *http.Request) {
	var req imageGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	state := a.State()
	promptText := req.Prompt
	if promptText == "" {
		promptText = a.activePrompt(state)
	}

	requestID := middleware.RequestIDFromContext(r.Context())
	if requestID == "" {
		requestID = uuid.NewString()
	}
	genReq := image.GenerateRequest{
		Prompt:      promptText,
		Quantity:    req.Quantity,
		AspectRatio: state.Settings.AspectRatio,
		RequestID:   requestID,
	}
	if req.SubjectImage != "" {
		data, err := base64.StdEncoding.DecodeString(req.SubjectImage)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "subjectImage is not valid base64")
			return
		}
		genReq.SubjectImage = &image.SubjectImage{MIME: req.SubjectImageMIME, Data: data}
		promptText = prompt.FidelityPrefix(true, state.StrictFaceLock, state.StrictHairLock) + promptText
		genReq.Prompt = promptText
	}

	assets, err := a.Generator.Generate(r.Context(), genReq)
	if err != nil {
		if errors.Is(err, image.ErrNoImage) {
			a.Log.Warn().Str("request_id", requestID).Msg("model returned no image")
			a.error(w, http.StatusBadGateway, "model_refused", "the model refused the prompt and returned no image")
			return
		}
		a.Log.Error().Err(err).Msg("image generation failed")
		a.error(w, http.StatusBadGateway, "generation_failed", "image provider returned an error")
		return
	}

	// Uploads run sequentially so a burst of results does not hammer the
	// backend.
	resp := imageGenerateResponse{Prompt: promptText, Synced: true}
	for _, asset := range assets {
		item, err := a.Sync.PersistArtifact(r.Context(), domain.Artifact{
			MIMEType:  asset.Format,
			Data:      asset.Data,
			Prompt:    promptText,
			Settings:  state.Settings,
			CreatedAt: time.Now(),
		})
		if err != nil {
			a.Log.Error().Err(err).Msg("persist artifact failed")
			continue
		}
		resp.Images = append(resp.Images, generatedImage{Item: item, Width: asset.Width, Height: asset.Height})
	}
	if !a.Sync.Status().Available {
		resp.Synced = false
	}
	if len(resp.Images) == 0 {
		a.error(w, http.StatusBadGateway, "generation_failed", "no images produced")
		return
	}
	a.json(w, http.StatusOK, resp)
}

// Gallery returns the persisted artifacts, newest first.
func (a *App) Gallery(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"items":  a.Sync.Images(),
		"status": a.Sync.Status(),
	})
}

// ExportGallery streams every stored image and prompt document as one zip.
func (a *App) ExportGallery(w http.ResponseWriter, r *http.Request) {
	archive, err := a.Sync.ExportArchive(r.Context())
	if err != nil {
		a.Log.Error().Err(err).Msg("gallery export failed")
		a.error(w, http.StatusBadGateway, "export_failed", "gallery backend is unreachable")
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="gallery-export.zip"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}
