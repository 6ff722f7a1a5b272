// Package handler is the HTTP layer.
//
// Handlers bind and validate requests through the validation package, call
// the service layer and turn outcomes into status codes.
package handler

import (
	"github.com/deppfellow/portfolio/internal/model"
	"github.com/deppfellow/portfolio/internal/server"
	"github.com/deppfellow/portfolio/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health     *HealthHandler
	Education  *EducationHandler
	Experience *ExperienceHandler
	Skills     *SkillHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(s),
		Education:  NewRecordHandler[model.Education, *model.CreateEducationRequest, *model.UpdateEducationRequest](s, services.Education),
		Experience: NewRecordHandler[model.Experience, *model.CreateExperienceRequest, *model.UpdateExperienceRequest](s, services.Experience),
		Skills:     NewRecordHandler[model.Skill, *model.CreateSkillRequest, *model.UpdateSkillRequest](s, services.Skills),
	}
}
