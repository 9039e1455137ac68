package domain

import "time"

// ItemKind discriminates the entries a collection folder can hold.
type ItemKind string

const (
	KindImage         ItemKind = "image"
	KindSavedPrompt   ItemKind = "savedPrompt"
	KindDecodedPrompt ItemKind = "decodedPrompt"
	KindTemplate      ItemKind = "template"
	KindReversePrompt ItemKind = "reversePrompt"
)

// Artifact is a generated image together with the prompt and settings that
// produced it. It is the unit the synchronizer uploads.
type Artifact struct {
	ID        string    `json:"id"`
	MIMEType  string    `json:"mimeType"`
	Data      []byte    `json:"-"`
	Prompt    string    `json:"prompt"`
	Settings  Settings  `json:"settings"`
	CreatedAt time.Time `json:"createdAt"`
}

// CollectionItem is one entry of a collection folder. Which fields are
// populated depends on Kind: images carry an ImageURL and Settings, prompt
// kinds carry only Content.
type CollectionItem struct {
	ID        string    `json:"id"`
	Kind      ItemKind  `json:"kind"`
	Timestamp int64     `json:"timestamp"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Content   string    `json:"content,omitempty"`
	Settings  *Settings `json:"settings,omitempty"`
}

// CollectionFolder groups items under a stable id and display name.
type CollectionFolder struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Items []CollectionItem `json:"items"`
}

// Collection is the full browsable tree shown to the user.
type Collection struct {
	Folders []CollectionFolder `json:"folders"`
}

// Folder returns the folder with the given id, or nil when absent. The
// value receiver keeps it callable on freshly built collections.
func (c Collection) Folder(id string) *CollectionFolder {
	for i := range c.Folders {
		if c.Folders[i].ID == id {
			return &c.Folders[i]
		}
	}
	return nil
}

// EpochMillis converts a time to the millisecond timestamps stored in
// sidecar objects and collection items.
func EpochMillis(t time.Time) int64 {
	return t.UnixMilli()
}
