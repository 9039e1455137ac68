package handlers

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"studio/internal/domain"
)

type stateResponse struct {
	State  domain.CreatorState `json:"state"`
	Prompt string              `json:"prompt"`
}

// GetSettings returns the current creator session and the prompt it
// compiles to.
func (a *App) GetSettings(w http.ResponseWriter, r *http.Request) {
	state := a.State()
	a.json(w, http.StatusOK, stateResponse{State: state, Prompt: a.activePrompt(state)})
}

// PutSettings replaces the creator session wholesale.
func (a *App) PutSettings(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatorState
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	state := a.mutateState(r.Context(), func(s *domain.CreatorState) {
		*s = req
	})
	a.json(w, http.StatusOK, stateResponse{State: state, Prompt: a.activePrompt(state)})
}

// RandomizeSettings re-rolls every catalog-backed field.
func (a *App) RandomizeSettings(w http.ResponseWriter, r *http.Request) {
	rng := a.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	state := a.mutateState(r.Context(), func(s *domain.CreatorState) {
		s.Settings.Randomize(rng)
	})
	a.json(w, http.StatusOK, stateResponse{State: state, Prompt: a.activePrompt(state)})
}

type dressStyleRequest struct {
	DressStyle string `json:"dressStyle"`
}

// SetDressStyle changes the dress style, resetting the dress details to the
// first valid option for the new style.
func (a *App) SetDressStyle(w http.ResponseWriter, r *http.Request) {
	var req dressStyleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DressStyle == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "dressStyle is required")
		return
	}
	state := a.mutateState(r.Context(), func(s *domain.CreatorState) {
		s.Settings.SetDressStyle(req.DressStyle)
	})
	a.json(w, http.StatusOK, stateResponse{State: state, Prompt: a.activePrompt(state)})
}

// GetOptions exposes the option catalogs that back the settings fields.
func (a *App) GetOptions(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"genders":            domain.Genders,
		"ethnicities":        domain.Ethnicities,
		"dressStyles":        domain.DressStyles,
		"dressDetails":       domain.DressDetails,
		"hairStyles":         domain.HairStyles,
		"hairAccessories":    domain.HairAccessories,
		"backgrounds":        domain.Backgrounds,
		"backgroundElements": domain.BackgroundElements,
		"gazeOptions":        domain.GazeOptions,
		"lightingPresets":    domain.LightingPresets,
		"shadowIntensities":  domain.ShadowIntensities,
		"highlightBlooms":    domain.HighlightBlooms,
		"shotPoses":          domain.ShotPoses,
		"cameraModels":       domain.CameraModels,
		"lensTypes":          domain.LensTypes,
		"skinDetails":        domain.SkinDetails,
		"fashionAesthetics":  domain.FashionAesthetics,
		"aspectRatios":       domain.AspectRatios,
	})
}

type compileRequest struct {
	Settings domain.Settings `json:"settings"`
}

type compileResponse struct {
	Prompt string `json:"prompt"`
}

// CompilePrompt renders a settings record without touching the session.
// Used for live previews.
func (a *App) CompilePrompt(w http.ResponseWriter, r *http.Request) {
	var req compileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	a.json(w, http.StatusOK, compileResponse{Prompt: a.Compiler.Compile(req.Settings)})
}
