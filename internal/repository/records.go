package repository

import (
	"github.com/deppfellow/portfolio/internal/model"
)

// NewEducationRepository stores education entries.
func NewEducationRepository(opts Options) *Store[model.Education] {
	return newStore(opts, "education",
		Procedures{
			List:   "sp_get_all_education",
			Get:    "sp_get_education_by_id",
			Add:    "sp_add_education",
			Update: "sp_update_education",
			Delete: "sp_del_education",
		},
		[]string{"id", "university", "qualification", "description", "start_date", "end_date"},
		func(e model.Education) []any {
			return []any{e.University, e.Qualification, e.Description, e.StartDate, e.EndDate}
		},
		func(e model.Education) []any {
			return []any{e.ID, e.University, e.Qualification, e.Description, e.StartDate, e.EndDate}
		},
	)
}

// NewExperienceRepository stores positions held.
func NewExperienceRepository(opts Options) *Store[model.Experience] {
	return newStore(opts, "experience",
		Procedures{
			List:   "sp_get_experiences",
			Get:    "sp_get_experience_by_id",
			Add:    "sp_add_experience",
			Update: "sp_update_experience",
			Delete: "sp_del_experience",
		},
		[]string{"id", "company", "title", "description", "start_date", "end_date"},
		func(e model.Experience) []any {
			return []any{e.Company, e.Title, e.Description, e.StartDate, e.EndDate}
		},
		func(e model.Experience) []any {
			return []any{e.ID, e.Company, e.Title, e.Description, e.StartDate, e.EndDate}
		},
	)
}

// NewSkillRepository stores skills.
func NewSkillRepository(opts Options) *Store[model.Skill] {
	return newStore(opts, "skill",
		Procedures{
			List:   "sp_get_all_skills",
			Get:    "sp_get_skill_by_id",
			Add:    "sp_add_skill",
			Update: "sp_update_skill",
			Delete: "sp_del_skill",
		},
		[]string{"id", "skill", "qualification", "description"},
		func(s model.Skill) []any {
			return []any{s.Skill, s.Qualification, s.Description}
		},
		func(s model.Skill) []any {
			return []any{s.ID, s.Skill, s.Qualification, s.Description}
		},
	)
}
