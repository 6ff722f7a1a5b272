package handler

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/portfolio/internal/errs"
	"github.com/deppfellow/portfolio/internal/model"
	"github.com/deppfellow/portfolio/internal/server"
)

// RecordService is what a RecordHandler needs from the service layer.
type RecordService[T any] interface {
	Entity() string
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int) (*T, error)
	Create(ctx context.Context, record T) (int, error)
	Update(ctx context.Context, id int, record T) error
	Delete(ctx context.Context, id int) error
}

// RecordHandler exposes list, get, create, update and delete for one
// record type. C and U are the create and update request types.
type RecordHandler[T any, C model.CreateRequest[T], U model.UpdateRequest[T]] struct {
	Handler
	service RecordService[T]
}

type (
	EducationHandler  = RecordHandler[model.Education, *model.CreateEducationRequest, *model.UpdateEducationRequest]
	ExperienceHandler = RecordHandler[model.Experience, *model.CreateExperienceRequest, *model.UpdateExperienceRequest]
	SkillHandler      = RecordHandler[model.Skill, *model.CreateSkillRequest, *model.UpdateSkillRequest]
)

func NewRecordHandler[T any, C model.CreateRequest[T], U model.UpdateRequest[T]](s *server.Server, svc RecordService[T]) *RecordHandler[T, C, U] {
	return &RecordHandler[T, C, U]{
		Handler: NewHandler(s),
		service: svc,
	}
}

// Resource is the route segment under /api, e.g. "Skills".
func (h *RecordHandler[T, C, U]) Resource() string {
	return h.service.Entity()
}

func (h *RecordHandler[T, C, U]) List(c echo.Context, _ *model.ListRequest) ([]T, error) {
	return h.service.List(c.Request().Context())
}

func (h *RecordHandler[T, C, U]) Get(c echo.Context, req *model.IDRequest) (*T, error) {
	record, err := h.service.Get(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}

	if record == nil {
		return nil, errs.NewNotFoundError(fmt.Sprintf("%s %d not found", h.Resource(), req.ID), true, nil)
	}
	return record, nil
}

// Create stores the record and answers with the stored record and its
// location.
func (h *RecordHandler[T, C, U]) Create(c echo.Context, req C) (T, error) {
	id, err := h.service.Create(c.Request().Context(), req.Record(0))
	if err != nil {
		var zero T
		return zero, err
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/%s/%d", h.Resource(), id))
	return req.Record(id), nil
}

func (h *RecordHandler[T, C, U]) Update(c echo.Context, req U) error {
	id := req.TargetID()
	return h.service.Update(c.Request().Context(), id, req.Record(id))
}

func (h *RecordHandler[T, C, U]) Delete(c echo.Context, req *model.IDRequest) error {
	return h.service.Delete(c.Request().Context(), req.ID)
}
