package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/portfolio/internal/config"
	"github.com/deppfellow/portfolio/internal/errs"
	"github.com/deppfellow/portfolio/internal/handler"
	"github.com/deppfellow/portfolio/internal/model"
	"github.com/deppfellow/portfolio/internal/server"
	"github.com/deppfellow/portfolio/internal/service"
)

// memStore keeps records in memory with the same contract as the stored
// procedures: ids assigned on create, unknown ids ignored on update and
// delete.
type memStore[T any] struct {
	mu      sync.Mutex
	records map[int]T
	nextID  int
	idOf    func(T) int
	withID  func(T, int) T
	fault   error
}

func newMemStore[T any](idOf func(T) int, withID func(T, int) T) *memStore[T] {
	return &memStore[T]{records: map[int]T{}, idOf: idOf, withID: withID}
}

func (m *memStore[T]) ListAll(context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fault != nil {
		return nil, m.fault
	}

	ids := make([]int, 0, len(m.records))
	for id := range m.records {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := []T{}
	for _, id := range ids {
		out = append(out, m.records[id])
	}
	return out, nil
}

func (m *memStore[T]) GetByID(_ context.Context, id int) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fault != nil {
		return nil, m.fault
	}

	r, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *memStore[T]) Create(_ context.Context, r T) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fault != nil {
		return 0, m.fault
	}

	m.nextID++
	m.records[m.nextID] = m.withID(r, m.nextID)
	return m.nextID, nil
}

func (m *memStore[T]) Update(_ context.Context, r T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fault != nil {
		return m.fault
	}

	if _, ok := m.records[m.idOf(r)]; ok {
		m.records[m.idOf(r)] = r
	}
	return nil
}

func (m *memStore[T]) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fault != nil {
		return m.fault
	}

	delete(m.records, id)
	return nil
}

type stores struct {
	education  *memStore[model.Education]
	experience *memStore[model.Experience]
	skills     *memStore[model.Skill]
}

func newTestRouter(t *testing.T) (*echo.Echo, *stores) {
	t.Helper()

	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Server:        config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}

	st := &stores{
		education: newMemStore(
			func(r model.Education) int { return r.ID },
			func(r model.Education, id int) model.Education { r.ID = id; return r },
		),
		experience: newMemStore(
			func(r model.Experience) int { return r.ID },
			func(r model.Experience, id int) model.Experience { r.ID = id; return r },
		),
		skills: newMemStore(
			func(r model.Skill) int { return r.ID },
			func(r model.Skill, id int) model.Skill { r.ID = id; return r },
		),
	}

	services := &service.Services{
		Education:  service.NewRecordService[model.Education](service.EntityEducation, st.education, nil, &logger),
		Experience: service.NewRecordService[model.Experience](service.EntityExperience, st.experience, nil, &logger),
		Skills:     service.NewRecordService[model.Skill](service.EntitySkills, st.skills, nil, &logger),
	}

	e, err := NewRouter(s, handler.NewHandlers(s, services))
	require.NoError(t, err)
	return e, st
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateSkillThenGet(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/Skills", `{"id":0,"skill":"Go","qualification":"Cert","description":""}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Skill
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Positive(t, created.ID)
	require.Equal(t, "Go", created.Skill)
	require.Equal(t, "/api/Skills/1", rec.Header().Get(echo.HeaderLocation))

	rec = do(e, http.MethodGet, "/api/Skills/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Skill
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, model.Skill{ID: 1, Skill: "Go", Qualification: "Cert", Description: ""}, got)
}

func TestCreateIgnoresBodyID(t *testing.T) {
	e, st := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/Skills", `{"id":77,"skill":"Go","qualification":"Cert","description":"d"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, st.skills.records, 1)
	require.NotContains(t, st.skills.records, 77)
}

func TestListEmptyIsArray(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodGet, "/api/Education", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestEducationRoundTripsDates(t *testing.T) {
	e, _ := newTestRouter(t)

	body := `{"university":"MIT","qualification":"BSc","description":"CS",` +
		`"startDate":"2015-09-01T00:00:00Z","endDate":"2019-06-01T00:00:00Z"}`
	rec := do(e, http.MethodPost, "/api/Education", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodGet, "/api/Education", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []model.Education
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.True(t, list[0].StartDate.Equal(time.Date(2015, 9, 1, 0, 0, 0, 0, time.UTC)))
	require.True(t, list[0].EndDate.Equal(time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)))
}

func TestUpdateExperience(t *testing.T) {
	e, st := newTestRouter(t)

	create := `{"company":"Acme","title":"Engineer","description":"d",` +
		`"startDate":"2020-01-01T00:00:00Z","endDate":"2021-01-01T00:00:00Z"}`
	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/api/Experience", create).Code)

	update := `{"id":1,"company":"Acme","title":"Senior Engineer","description":"d",` +
		`"startDate":"2020-01-01T00:00:00Z","endDate":"2022-01-01T00:00:00Z"}`
	rec := do(e, http.MethodPut, "/api/Experience/1", update)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())
	require.Equal(t, "Senior Engineer", st.experience.records[1].Title)
}

func TestUpdateIDMismatch(t *testing.T) {
	e, _ := newTestRouter(t)

	body := `{"id":6,"company":"Acme","title":"Engineer","description":"d",` +
		`"startDate":"2020-01-01T00:00:00Z","endDate":"2021-01-01T00:00:00Z"}`
	rec := do(e, http.MethodPut, "/api/Experience/5", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var httpErr errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &httpErr))
	require.Equal(t, []errs.FieldError{{Field: "id", Error: "must match the id in the path"}}, httpErr.Errors)
}

func TestUpdateUnknownIDIsNoContent(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodPut, "/api/Skills/42", `{"id":42,"skill":"Go","qualification":"Cert","description":"d"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteUnknownIDIsNoContent(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodDelete, "/api/Education/999", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteThenGetIsNotFound(t *testing.T) {
	e, _ := newTestRouter(t)

	require.Equal(t, http.StatusCreated,
		do(e, http.MethodPost, "/api/Skills", `{"skill":"Go","qualification":"Cert","description":"d"}`).Code)
	require.Equal(t, http.StatusNoContent, do(e, http.MethodDelete, "/api/Skills/1", "").Code)

	rec := do(e, http.MethodGet, "/api/Skills/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMalformedBody(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/Skills", `{"skill":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMissingBody(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/Skills", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStoreFaultIsGeneric500(t *testing.T) {
	e, st := newTestRouter(t)
	st.skills.fault = errors.New("pq: connection refused to 10.0.0.5")

	rec := do(e, http.MethodGet, "/api/Skills", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var httpErr errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &httpErr))
	require.Equal(t, "Internal Server Error", httpErr.Message)
	require.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestConstraintViolationIsGeneric500(t *testing.T) {
	e, st := newTestRouter(t)
	st.skills.fault = fmt.Errorf("create skill: add: %w", &pgconn.PgError{
		Code:           "23505",
		TableName:      "skills",
		ConstraintName: "skills_skill_key",
	})

	rec := do(e, http.MethodPost, "/api/Skills", `{"skill":"Go","qualification":"Cert","description":""}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var httpErr errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &httpErr))
	require.Equal(t, "INTERNAL_SERVER_ERROR", httpErr.Code)
	require.Equal(t, "Internal Server Error", httpErr.Message)
	require.Empty(t, httpErr.Errors)
	require.NotContains(t, rec.Body.String(), "skills_skill_key")
}

func TestRouteCasingIsExact(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodGet, "/api/skills", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatus(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "healthy", body["status"])
	require.Equal(t, "test", body["environment"])
}

func TestFrontendServed(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `<script src="/app.js"></script>`)

	rec = do(e, http.MethodGet, "/app.js", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "/api/${section.resource}")

	rec = do(e, http.MethodGet, "/some/client/route", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "<title>Portfolio</title>")
}

func TestConcurrentCreates(t *testing.T) {
	e, st := newTestRouter(t)

	codes := make(chan int, 20)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			codes <- do(e, http.MethodPost, "/api/Skills", `{"skill":"Go","qualification":"Cert","description":"d"}`).Code
		}()
	}
	wg.Wait()
	close(codes)

	for code := range codes {
		require.Equal(t, http.StatusCreated, code)
	}
	require.Len(t, st.skills.records, 20)
}
