// Package model defines the portfolio records and the request types the
// HTTP layer binds them from.
//
// Records carry `db` tags matching the columns returned by the stored
// procedures and `json` tags matching the client payloads.
package model

import (
	"github.com/deppfellow/portfolio/internal/validation"
)

// ListRequest is bound for list endpoints. It carries no input.
type ListRequest struct{}

func (r *ListRequest) Validate() error {
	return nil
}

// IDRequest is bound for endpoints addressing a single record by path id.
type IDRequest struct {
	ID int `param:"id"`
}

func (r *IDRequest) Validate() error {
	return nil
}

// CreateRequest is a validated create payload for record type T.
type CreateRequest[T any] interface {
	validation.Validatable
	// Record builds the record with the given id.
	Record(id int) T
}

// UpdateRequest is a validated update payload for record type T.
type UpdateRequest[T any] interface {
	CreateRequest[T]
	// TargetID is the id taken from the request path.
	TargetID() int
}

// validateUpdate runs tag validation on req, then checks the body id
// against the path id.
func validateUpdate(req any, pathID, bodyID int) error {
	if err := validation.Struct(req); err != nil {
		return err
	}

	if pathID != bodyID {
		return validation.CustomValidationErrors{
			{Field: "id", Message: "must match the id in the path"},
		}
	}
	return nil
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
