package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"studio/internal/domain"
	promptproviders "studio/internal/providers/prompt"
)

type decodeRequest struct {
	Text string `json:"text"`
	// Save also stores the decoded settings in the decoded-prompts folder.
	Save bool `json:"save"`
}

type decodeResponse struct {
	Settings domain.Settings        `json:"settings"`
	Saved    *domain.CollectionItem `json:"saved,omitempty"`
}

// DecodePrompt extracts structured settings from free-form prompt text.
func (a *App) DecodePrompt(w http.ResponseWriter, r *http.Request) {
	var req decodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "text is required")
		return
	}
	settings, err := a.Decoder.Decode(r.Context(), req.Text)
	if err != nil {
		a.Log.Error().Err(err).Msg("prompt decode failed")
		a.error(w, http.StatusBadGateway, "decode_failed", "could not extract settings")
		return
	}
	resp := decodeResponse{Settings: settings}
	if req.Save {
		item, err := a.Sync.SaveDecodedPrompt(r.Context(), settings)
		if err != nil {
			a.Log.Warn().Err(err).Msg("save decoded prompt failed")
		} else {
			resp.Saved = &item
		}
	}
	a.json(w, http.StatusOK, resp)
}

// ListDecodedPrompts returns the decoded-prompt history.
func (a *App) ListDecodedPrompts(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"items": a.Sync.DecodedPrompts()})
}

type applyDecodedRequest struct {
	Settings domain.Settings `json:"settings"`
}

// ApplyDecodedPrompt overwrites the session settings with a decoded record.
// Missing fields are filled from the defaults so the session stays
// well-formed.
func (a *App) ApplyDecodedPrompt(w http.ResponseWriter, r *http.Request) {
	var req applyDecodedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Settings.Normalize()
	state := a.mutateState(r.Context(), func(s *domain.CreatorState) {
		s.Settings = req.Settings
		s.UseFreeText = false
	})
	a.json(w, http.StatusOK, stateResponse{State: state, Prompt: a.activePrompt(state)})
}

type reverseRequest struct {
	Image string `json:"image"`
	MIME  string `json:"mime"`
}

type reverseResponse struct {
	Prompt string                `json:"prompt"`
	Item   domain.CollectionItem `json:"item"`
}

// ReversePrompt derives a generation prompt from an uploaded image and
// records it in the reverse-engineered folder.
func (a *App) ReversePrompt(w http.ResponseWriter, r *http.Request) {
	var req reverseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Image == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "image is required")
		return
	}
	data, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "image is not valid base64")
		return
	}
	text, err := a.Reverse.Reverse(r.Context(), data, req.MIME)
	if err != nil {
		a.Log.Error().Err(err).Msg("reverse engineering failed")
		a.error(w, http.StatusBadGateway, "reverse_failed", "could not derive a prompt")
		return
	}
	item, err := a.Collection.AddReversePrompt(r.Context(), text)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "could not record prompt")
		return
	}
	a.json(w, http.StatusOK, reverseResponse{Prompt: text, Item: item})
}

type optimizeRequest struct {
	Prompt      string `json:"prompt"`
	Instruction string `json:"instruction"`
	// History carries earlier optimizer turns so the conversation can keep
	// refining; SystemPrompt overrides the built-in system prompt.
	History      []promptproviders.Turn `json:"history"`
	SystemPrompt string                 `json:"systemPrompt"`
}

type optimizeResponse struct {
	Prompt string `json:"prompt"`
}

// OptimizePrompt rewrites a prompt per the user's instruction. An empty
// prompt optimizes the session's active prompt.
func (a *App) OptimizePrompt(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Instruction == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "instruction is required")
		return
	}
	if req.Prompt == "" {
		req.Prompt = a.activePrompt(a.State())
	}
	out, err := a.Optimizer.Optimize(r.Context(), promptproviders.OptimizeRequest{
		Current:     req.Prompt,
		Instruction: req.Instruction,
		History:     req.History,
		System:      req.SystemPrompt,
	})
	if err != nil {
		a.Log.Error().Err(err).Msg("prompt optimization failed")
		a.error(w, http.StatusBadGateway, "optimize_failed", "could not rewrite the prompt")
		return
	}
	a.json(w, http.StatusOK, optimizeResponse{Prompt: out})
}

type savePromptRequest struct {
	Prompt string `json:"prompt"`
}

// SavePrompt stores a prompt in the user-saved folder. An empty body saves
// the session's active prompt.
func (a *App) SavePrompt(w http.ResponseWriter, r *http.Request) {
	var req savePromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Prompt == "" {
		req.Prompt = a.activePrompt(a.State())
	}
	item, err := a.Collection.SavePrompt(r.Context(), req.Prompt)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	a.json(w, http.StatusCreated, item)
}

type templateRequest struct {
	Content string `json:"content"`
}

// CreateTemplate adds a user-defined prompt template.
func (a *App) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "content is required")
		return
	}
	item, err := a.Collection.AddTemplate(r.Context(), req.Content)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	a.json(w, http.StatusCreated, item)
}

// DeleteTemplate removes a user template. Built-in templates cannot be
// removed and yield 404.
// UpdateTemplate rewrites a user template in place. Built-ins are
// immutable.
func (a *App) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "content is required")
		return
	}
	id := chi.URLParam(r, "id")
	item, ok := a.Collection.UpdateTemplate(r.Context(), id, req.Content)
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "no such template")
		return
	}
	a.json(w, http.StatusOK, item)
}

// ResetTemplates removes every user template, restoring the shipped set.
func (a *App) ResetTemplates(w http.ResponseWriter, r *http.Request) {
	a.Collection.ResetTemplates(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !a.Collection.DeleteTemplate(r.Context(), id) {
		a.error(w, http.StatusNotFound, "not_found", "no such template")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
