package core

import "github.com/google/uuid"

// UniqueID is embedded by every type that participates in an execution
// graph (pads and elements). Equality and hashing are based on the
// generated identifier, never the display name: two elements or pads with
// the same user-supplied name are still distinct graph nodes unless they
// are the same Go value. The Pipeline registry separately enforces name
// uniqueness to catch user mistakes early (see Pipeline.Insert).
type UniqueID struct {
	id   string
	name string
}

// newUniqueID generates a fresh identifier. If name is empty, the
// identifier itself becomes the display name, mirroring the convention
// that every graph participant is addressable even when the user didn't
// bother to name it.
func newUniqueID(name string) UniqueID {
	id := uuid.New().String()
	if name == "" {
		name = id
	}
	return UniqueID{id: id, name: name}
}

// ID returns the internally generated identifier. Two UniqueID values with
// the same Name but different ID are different graph participants.
func (u UniqueID) ID() string { return u.id }

// Name returns the display name, either user-supplied or defaulted to the
// generated identifier.
func (u UniqueID) Name() string { return u.name }
