package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/portfolio/internal/config"
	"github.com/deppfellow/portfolio/internal/errs"
	"github.com/deppfellow/portfolio/internal/server"
)

func testServer(w io.Writer) *server.Server {
	logger := zerolog.Nop()
	if w != nil {
		logger = zerolog.New(w)
	}
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server:  config.ServerConfig{CORSAllowedOrigins: []string{"http://localhost:5173"}},
		},
		Logger: &logger,
	}
}

func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	return newEchoLogging(t, nil)
}

func newEchoLogging(t *testing.T, w io.Writer) *echo.Echo {
	t.Helper()

	s := testServer(w)
	mws := NewMiddlewares(s)

	e := echo.New()
	e.HTTPErrorHandler = mws.Global.GlobalErrorHandler
	e.Use(
		mws.Global.CORS(),
		RequestID(),
		mws.Tracing.NewRelicMiddleware(),
		mws.Tracing.EnhanceTracing(),
		mws.ContextEnhancer.EnhanceContext(),
		mws.Global.RequestLogger(),
		mws.Global.Recover(),
	)
	return e
}

func serve(e *echo.Echo, method, target string, header http.Header) (*httptest.ResponseRecorder, errs.HTTPError) {
	req := httptest.NewRequest(method, target, nil)
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body errs.HTTPError
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestRequestIDGeneratedAndReused(t *testing.T) {
	e := newEcho(t)
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	rec, _ := serve(e, http.MethodGet, "/ping", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	generated := rec.Header().Get(RequestIDHeader)
	require.Len(t, generated, 36)
	require.Equal(t, generated, rec.Body.String())

	rec, _ = serve(e, http.MethodGet, "/ping", http.Header{RequestIDHeader: {"abc-123"}})
	require.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestContextLoggerAvailable(t *testing.T) {
	e := newEcho(t)
	e.GET("/ping", func(c echo.Context) error {
		require.Same(t, GetLogger(c), LoggerFromContext(c.Request().Context()))
		return c.NoContent(http.StatusNoContent)
	})

	rec, _ := serve(e, http.MethodGet, "/ping", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGlobalErrorHandlerHTTPError(t *testing.T) {
	e := newEcho(t)
	e.GET("/missing", func(c echo.Context) error {
		return errs.NewNotFoundError("Skill not found", true, nil)
	})

	rec, body := serve(e, http.MethodGet, "/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "NOT_FOUND", body.Code)
	require.Equal(t, "Skill not found", body.Message)
	require.True(t, body.Override)
}

func TestGlobalErrorHandlerHidesStoreFaults(t *testing.T) {
	e := newEcho(t)
	e.GET("/fault", func(c echo.Context) error {
		return fmt.Errorf("list skill: calling sp_get_all_skills: %w", errors.New("dial tcp: connection refused"))
	})

	rec, body := serve(e, http.MethodGet, "/fault", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "Internal Server Error", body.Message)
	require.NotContains(t, rec.Body.String(), "connection refused")
}

func TestGlobalErrorHandlerConstraintViolation(t *testing.T) {
	var logs bytes.Buffer
	e := newEchoLogging(t, &logs)
	e.POST("/skills", func(c echo.Context) error {
		return fmt.Errorf("create skill: %w", &pgconn.PgError{
			Code:           "23505",
			TableName:      "skills",
			ConstraintName: "skills_skill_key",
		})
	})

	rec, body := serve(e, http.MethodPost, "/skills", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "INTERNAL_SERVER_ERROR", body.Code)
	require.Equal(t, "Internal Server Error", body.Message)
	require.NotContains(t, rec.Body.String(), "skills_skill_key")

	require.Contains(t, logs.String(), `"db_code":"23505"`)
	require.Contains(t, logs.String(), `"db_error":"unique_violation"`)
	require.Contains(t, logs.String(), `"db_detail":"A Skill violates skills_skill_key"`)
}

func TestGlobalErrorHandlerUnknownRoute(t *testing.T) {
	e := newEcho(t)

	rec, body := serve(e, http.MethodGet, "/nope", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Route not found", body.Message)
}

func TestGlobalErrorHandlerMethodNotAllowed(t *testing.T) {
	e := newEcho(t)
	e.GET("/only-get", func(c echo.Context) error { return nil })

	rec, body := serve(e, http.MethodPatch, "/only-get", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "METHOD_NOT_ALLOWED", body.Code)
}

func TestRecoverReturnsGeneric500(t *testing.T) {
	e := newEcho(t)
	e.GET("/panic", func(c echo.Context) error {
		panic("boom")
	})

	rec, body := serve(e, http.MethodGet, "/panic", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "Internal Server Error", body.Message)
}

func TestErrorStatus(t *testing.T) {
	require.Equal(t, http.StatusBadRequest, errorStatus(errs.NewBadRequestError("x", false, nil, nil)))
	require.Equal(t, http.StatusMethodNotAllowed, errorStatus(echo.ErrMethodNotAllowed))
	require.Equal(t, http.StatusInternalServerError, errorStatus(errors.New("x")))
}
