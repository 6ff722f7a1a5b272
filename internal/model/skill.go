package model

import (
	"github.com/deppfellow/portfolio/internal/validation"
)

// Skill is a single skill with the qualification backing it.
type Skill struct {
	ID            int    `json:"id" db:"id"`
	Skill         string `json:"skill" db:"skill"`
	Qualification string `json:"qualification" db:"qualification"`
	Description   string `json:"description" db:"description"`
}

type SkillPayload struct {
	ID            int     `json:"id"`
	Skill         *string `json:"skill" validate:"required"`
	Qualification *string `json:"qualification" validate:"required"`
	Description   *string `json:"description" validate:"required"`
}

func (p SkillPayload) Record(id int) Skill {
	return Skill{
		ID:            id,
		Skill:         deref(p.Skill),
		Qualification: deref(p.Qualification),
		Description:   deref(p.Description),
	}
}

type CreateSkillRequest struct {
	SkillPayload
}

func (r *CreateSkillRequest) Validate() error {
	return validation.Struct(r)
}

type UpdateSkillRequest struct {
	PathID int `param:"id" json:"-"`
	SkillPayload
}

func (r *UpdateSkillRequest) Validate() error {
	return validateUpdate(r, r.PathID, r.ID)
}

func (r *UpdateSkillRequest) TargetID() int {
	return r.PathID
}
