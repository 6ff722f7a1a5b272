// Package repository handles all interactions with the database.
//
// Every operation borrows one session, issues exactly one parameterized
// stored procedure call and releases the session on every exit path.
// No transaction spans more than one call.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/deppfellow/portfolio/internal/database"
	"github.com/deppfellow/portfolio/internal/sqlerr"
)

// RecordStore is the persistence contract shared by every record type.
//
// GetByID returns (nil, nil) when no row matches. Update and Delete with an
// unknown id succeed without touching anything.
type RecordStore[T any] interface {
	ListAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id int) (*T, error)
	Create(ctx context.Context, record T) (int, error)
	Update(ctx context.Context, record T) error
	Delete(ctx context.Context, id int) error
}

// Options carries the dependencies shared by every repository.
type Options struct {
	Sessions database.SessionSource
	Logger   *zerolog.Logger
}

// Procedures names the stored procedures backing one record type.
type Procedures struct {
	List   string
	Get    string
	Add    string
	Update string
	Delete string
}

// Store runs the five record operations against a set of stored
// procedures.
type Store[T any] struct {
	entity  string
	procs   Procedures
	columns []string

	// insertArgs returns the sp_add_* arguments; updateArgs the
	// sp_update_* arguments, id first.
	insertArgs func(T) []any
	updateArgs func(T) []any

	sessions database.SessionSource
	logger   zerolog.Logger
}

var _ RecordStore[struct{}] = (*Store[struct{}])(nil)

func newStore[T any](
	opts Options,
	entity string,
	procs Procedures,
	columns []string,
	insertArgs, updateArgs func(T) []any,
) *Store[T] {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &Store[T]{
		entity:     entity,
		procs:      procs,
		columns:    columns,
		insertArgs: insertArgs,
		updateArgs: updateArgs,
		sessions:   opts.Sessions,
		logger:     logger.With().Str("component", "repository").Str("entity", entity).Logger(),
	}
}

func (s *Store[T]) ListAll(ctx context.Context) ([]T, error) {
	session, err := s.sessions.Acquire(ctx)
	if err != nil {
		return nil, s.fail(err, "list", 0, "acquiring session")
	}
	defer session.Release()

	rows, err := session.Query(ctx, s.selectSQL(s.procs.List, 0))
	if err != nil {
		return nil, s.fail(err, "list", 0, "calling "+s.procs.List)
	}

	if err := s.checkColumns(s.procs.List, rows); err != nil {
		return nil, s.fail(err, "list", 0, "reading "+s.procs.List)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, s.fail(s.mappingErr(s.procs.List, err), "list", 0, "reading "+s.procs.List)
	}

	if records == nil {
		records = []T{}
	}
	return records, nil
}

func (s *Store[T]) GetByID(ctx context.Context, id int) (*T, error) {
	session, err := s.sessions.Acquire(ctx)
	if err != nil {
		return nil, s.fail(err, "get", id, "acquiring session")
	}
	defer session.Release()

	rows, err := session.Query(ctx, s.selectSQL(s.procs.Get, 1), id)
	if err != nil {
		return nil, s.fail(err, "get", id, "calling "+s.procs.Get)
	}

	if err := s.checkColumns(s.procs.Get, rows); err != nil {
		return nil, s.fail(err, "get", id, "reading "+s.procs.Get)
	}

	record, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, s.fail(s.mappingErr(s.procs.Get, err), "get", id, "reading "+s.procs.Get)
	}

	return record, nil
}

func (s *Store[T]) Create(ctx context.Context, record T) (int, error) {
	session, err := s.sessions.Acquire(ctx)
	if err != nil {
		return 0, s.fail(err, "create", 0, "acquiring session")
	}
	defer session.Release()

	args := s.insertArgs(record)

	var id int
	if err := session.QueryRow(ctx, functionSQL(s.procs.Add, len(args)), args...).Scan(&id); err != nil {
		return 0, s.fail(err, "create", 0, "calling "+s.procs.Add)
	}

	return id, nil
}

func (s *Store[T]) Update(ctx context.Context, record T) error {
	args := s.updateArgs(record)

	id, _ := args[0].(int)
	return s.call(ctx, "update", id, s.procs.Update, args...)
}

func (s *Store[T]) Delete(ctx context.Context, id int) error {
	return s.call(ctx, "delete", id, s.procs.Delete, id)
}

// call runs a procedure that returns nothing. Zero affected rows is not
// an error.
func (s *Store[T]) call(ctx context.Context, op string, id int, proc string, args ...any) error {
	session, err := s.sessions.Acquire(ctx)
	if err != nil {
		return s.fail(err, op, id, "acquiring session")
	}
	defer session.Release()

	if _, err := session.Exec(ctx, callSQL(proc, len(args)), args...); err != nil {
		return s.fail(err, op, id, "calling "+proc)
	}
	return nil
}

// checkColumns compares the result columns with the record's db tags
// before any row is read.
func (s *Store[T]) checkColumns(proc string, rows pgx.Rows) error {
	fields := rows.FieldDescriptions()

	got := make([]string, len(fields))
	for i, fd := range fields {
		got[i] = fd.Name
	}

	if !sameColumns(s.columns, got) {
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		return &sqlerr.MappingError{Procedure: proc, Expected: s.columns, Got: got}
	}
	return nil
}

// mappingErr marks scan failures as mapping errors and leaves driver
// errors untouched.
func (s *Store[T]) mappingErr(proc string, err error) error {
	var scanErr pgx.ScanArgError
	if errors.As(err, &scanErr) {
		return &sqlerr.MappingError{Procedure: proc, Err: err}
	}
	return err
}

func (s *Store[T]) fail(err error, op string, id int, action string) error {
	event := s.logger.Error().Err(err).Str("op", op)
	if id != 0 {
		event = event.Int("id", id)
	}
	if code := sqlerr.ErrCode(err); code != sqlerr.Other {
		event = event.Str("db_error", string(code))
	}
	event.Msg(action + " failed")

	return fmt.Errorf("%s %s: %s: %w", op, s.entity, action, err)
}

// selectSQL reads a set-returning function: SELECT cols FROM proc($1..$n).
func (s *Store[T]) selectSQL(proc string, n int) string {
	return fmt.Sprintf("SELECT %s FROM %s(%s)", strings.Join(s.columns, ", "), proc, placeholders(n))
}

func functionSQL(proc string, n int) string {
	return fmt.Sprintf("SELECT %s(%s)", proc, placeholders(n))
}

func callSQL(proc string, n int) string {
	return fmt.Sprintf("CALL %s(%s)", proc, placeholders(n))
}

func placeholders(n int) string {
	ps := make([]string, n)
	for i := range ps {
		ps[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(ps, ", ")
}

func sameColumns(want, got []string) bool {
	if len(want) != len(got) {
		return false
	}

	seen := make(map[string]bool, len(want))
	for _, c := range want {
		seen[c] = true
	}
	for _, c := range got {
		if !seen[c] {
			return false
		}
	}
	return true
}
