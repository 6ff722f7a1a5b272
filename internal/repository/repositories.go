package repository

import (
	"github.com/deppfellow/portfolio/internal/model"
	"github.com/deppfellow/portfolio/internal/server"
)

// Repositories groups the record stores so services receive one value.
type Repositories struct {
	Education  RecordStore[model.Education]
	Experience RecordStore[model.Experience]
	Skills     RecordStore[model.Skill]
}

// NewRepositories builds the stores on top of the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	opts := Options{Sessions: s.DB, Logger: s.Logger}

	return &Repositories{
		Education:  NewEducationRepository(opts),
		Experience: NewExperienceRepository(opts),
		Skills:     NewSkillRepository(opts),
	}
}
