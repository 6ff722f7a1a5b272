package model

import (
	"time"

	"github.com/deppfellow/portfolio/internal/validation"
)

// Experience is one position held.
type Experience struct {
	ID          int       `json:"id" db:"id"`
	Company     string    `json:"company" db:"company"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	StartDate   time.Time `json:"startDate" db:"start_date"`
	EndDate     time.Time `json:"endDate" db:"end_date"`
}

type ExperiencePayload struct {
	ID          int        `json:"id"`
	Company     *string    `json:"company" validate:"required"`
	Title       *string    `json:"title" validate:"required"`
	Description *string    `json:"description" validate:"required"`
	StartDate   *time.Time `json:"startDate" validate:"required"`
	EndDate     *time.Time `json:"endDate" validate:"required"`
}

func (p ExperiencePayload) Record(id int) Experience {
	return Experience{
		ID:          id,
		Company:     deref(p.Company),
		Title:       deref(p.Title),
		Description: deref(p.Description),
		StartDate:   deref(p.StartDate),
		EndDate:     deref(p.EndDate),
	}
}

type CreateExperienceRequest struct {
	ExperiencePayload
}

func (r *CreateExperienceRequest) Validate() error {
	return validation.Struct(r)
}

type UpdateExperienceRequest struct {
	PathID int `param:"id" json:"-"`
	ExperiencePayload
}

func (r *UpdateExperienceRequest) Validate() error {
	return validateUpdate(r, r.PathID, r.ID)
}

func (r *UpdateExperienceRequest) TargetID() int {
	return r.PathID
}
