package service

import (
	"github.com/deppfellow/portfolio/internal/model"
	"github.com/deppfellow/portfolio/internal/repository"
	"github.com/deppfellow/portfolio/internal/server"
)

// Resource names. They double as the route segment under /api.
const (
	EntityEducation  = "Education"
	EntityExperience = "Experience"
	EntitySkills     = "Skills"
)

// Services groups every service so handlers receive one value.
type Services struct {
	Education  *RecordService[model.Education]
	Experience *RecordService[model.Experience]
	Skills     *RecordService[model.Skill]
}

// NewServices builds the record services. Notifications go through the
// server's job service when the integration is configured.
func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	var notifier Notifier
	if s.Job != nil && s.Config.Integration.NotificationsEnabled() {
		notifier = s.Job
	}

	return &Services{
		Education:  NewRecordService(EntityEducation, repos.Education, notifier, s.Logger),
		Experience: NewRecordService(EntityExperience, repos.Experience, notifier, s.Logger),
		Skills:     NewRecordService(EntitySkills, repos.Skills, notifier, s.Logger),
	}
}
