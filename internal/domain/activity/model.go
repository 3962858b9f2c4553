package activity

import "time"

type Type string

const (
	TypeRegistered      Type = "REGISTERED"
	TypeUpdated         Type = "UPDATED"
	TypeStatusChanged   Type = "STATUS_CHANGED"
	TypePhotoAttached   Type = "PHOTO_ATTACHED"
	TypeDocumentsIssued Type = "DOCUMENTS_ISSUED"
)

type ActorType string

const (
	ActorTypeAdmin  ActorType = "ADMIN"
	ActorTypePublic ActorType = "PUBLIC"
	ActorTypeSystem ActorType = "SYSTEM"
)

type Actor struct {
	Type ActorType
	ID   string
}

// Entry es un hecho del ciclo de vida de una ficha. Solo se agregan, nunca se editan.
type Entry struct {
	ID         string
	PetID      string
	Type       Type
	OccurredAt time.Time
	Actor      Actor
	Note       string
}
