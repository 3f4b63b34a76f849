package helpers

import (
	"github.com/Masterminds/squirrel"

	"github.com/gradnexus/campusconnect/internal/app/models"
)

// SetPatch adds "col = value" to b when p is set. A set patch with a nil value writes NULL.
func SetPatch[T any](b squirrel.UpdateBuilder, col string, p models.Patch[T]) squirrel.UpdateBuilder {
	if !p.Set {
		return b
	}
	if p.Value == nil {
		return b.Set(col, nil)
	}
	return b.Set(col, *p.Value)
}

// Deref returns the value behind p, or the zero value when p is nil.
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
