package handlers

import (
	"net/http"
)

// GetCollection rebuilds and returns the full folder tree.
func (a *App) GetCollection(w http.ResponseWriter, r *http.Request) {
	backend := append(a.Sync.Images(), a.Sync.DecodedPrompts()...)
	a.json(w, http.StatusOK, a.Collection.Build(backend))
}

// RefreshCollection re-lists the backend and returns the rebuilt tree. A
// listing failure flips the availability status but still returns the tree
// so the local folders stay usable.
func (a *App) RefreshCollection(w http.ResponseWriter, r *http.Request) {
	if err := a.Sync.Refresh(r.Context()); err != nil {
		a.Log.Warn().Err(err).Msg("collection refresh failed")
	}
	backend := append(a.Sync.Images(), a.Sync.DecodedPrompts()...)
	a.json(w, http.StatusOK, map[string]any{
		"collection": a.Collection.Build(backend),
		"status":     a.Sync.Status(),
	})
}

// SeedCollection copies the current session's compiled prompt into the
// saved-prompts folder, as a quick way to bootstrap a fresh install.
func (a *App) SeedCollection(w http.ResponseWriter, r *http.Request) {
	state := a.State()
	item, err := a.Collection.SavePrompt(r.Context(), a.activePrompt(state))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	a.json(w, http.StatusCreated, item)
}
