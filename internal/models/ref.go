package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Identifiable is implemented by every entity carrying a backend id.
type Identifiable interface {
	GetID() string
}

// Ref is a reference field that the backend populates as either a bare id
// string or a fully embedded related object. The union is resolved once here,
// at unmarshal time; views never re-derive the shape.
type Ref[T Identifiable] struct {
	ID     string
	Entity *T
}

// RefTo builds a bare-id reference, used when composing write payloads.
func RefTo[T Identifiable](id string) Ref[T] {
	return Ref[T]{ID: id}
}

// IsZero reports whether the reference is unset.
func (r Ref[T]) IsZero() bool {
	return r.ID == "" && r.Entity == nil
}

// Resolve returns the referenced entity, preferring the embedded copy and
// falling back to a scan of items by id. Returns nil when unresolvable.
func (r Ref[T]) Resolve(items []T) *T {
	if r.Entity != nil {
		return r.Entity
	}
	if r.ID == "" {
		return nil
	}
	for i := range items {
		if items[i].GetID() == r.ID {
			return &items[i]
		}
	}
	return nil
}

// UnmarshalJSON accepts `"id"`, `{...entity...}` or null.
func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Ref[T]{}
		return nil
	}
	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("decode reference id: %w", err)
		}
		*r = Ref[T]{ID: id}
		return nil
	}
	var entity T
	if err := json.Unmarshal(data, &entity); err != nil {
		return fmt.Errorf("decode embedded reference: %w", err)
	}
	*r = Ref[T]{ID: entity.GetID(), Entity: &entity}
	return nil
}

// MarshalJSON writes the reference back in the shape it arrived in.
func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.Entity != nil {
		return json.Marshal(r.Entity)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// RefIDs flattens a reference list into its ids.
func RefIDs[T Identifiable](refs []Ref[T]) []string {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref.ID != "" {
			ids = append(ids, ref.ID)
		}
	}
	return ids
}
