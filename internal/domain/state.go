package domain

// CreatorState is the full editing session: the structured settings, the
// optional free-text prompt, and the flag selecting which of the two is
// active, plus the fidelity locks applied when a subject reference image is
// attached. It is persisted on every change.
type CreatorState struct {
	Settings       Settings `json:"settings"`
	FreeText       string   `json:"freeText"`
	UseFreeText    bool     `json:"useFreeText"`
	StrictFaceLock bool     `json:"strictFaceLock"`
	StrictHairLock bool     `json:"strictHairLock"`
}

// DefaultCreatorState returns the session state a fresh install starts from.
func DefaultCreatorState() CreatorState {
	return CreatorState{
		Settings:       DefaultSettings(),
		StrictFaceLock: true,
		StrictHairLock: true,
	}
}
