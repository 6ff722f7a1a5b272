package model

import (
	"time"

	"github.com/deppfellow/portfolio/internal/validation"
)

// Education is one entry of the education history.
type Education struct {
	ID            int       `json:"id" db:"id"`
	University    string    `json:"university" db:"university"`
	Qualification string    `json:"qualification" db:"qualification"`
	Description   string    `json:"description" db:"description"`
	StartDate     time.Time `json:"startDate" db:"start_date"`
	EndDate       time.Time `json:"endDate" db:"end_date"`
}

// EducationPayload is the JSON body of create and update calls.
// Pointer fields let "required" tell a missing field from an empty one.
type EducationPayload struct {
	ID            int        `json:"id"`
	University    *string    `json:"university" validate:"required"`
	Qualification *string    `json:"qualification" validate:"required"`
	Description   *string    `json:"description" validate:"required"`
	StartDate     *time.Time `json:"startDate" validate:"required"`
	EndDate       *time.Time `json:"endDate" validate:"required"`
}

func (p EducationPayload) Record(id int) Education {
	return Education{
		ID:            id,
		University:    deref(p.University),
		Qualification: deref(p.Qualification),
		Description:   deref(p.Description),
		StartDate:     deref(p.StartDate),
		EndDate:       deref(p.EndDate),
	}
}

type CreateEducationRequest struct {
	EducationPayload
}

func (r *CreateEducationRequest) Validate() error {
	return validation.Struct(r)
}

type UpdateEducationRequest struct {
	PathID int `param:"id" json:"-"`
	EducationPayload
}

func (r *UpdateEducationRequest) Validate() error {
	return validateUpdate(r, r.PathID, r.ID)
}

func (r *UpdateEducationRequest) TargetID() int {
	return r.PathID
}
