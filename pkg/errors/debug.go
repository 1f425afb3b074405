package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Diag is the loggable view of an error: the top-line message, the typed
// code when one is attached, the unwrap chain, and Postgres driver
// diagnostics when the chain bottoms out in the database.
type Diag struct {
	Message string
	Code    Code
	Chain   []string
	PG      *PGDiag
}

// PGDiag carries the server-side details of a Postgres error. Constraint and
// table names are what make unique-violation and FK failures actionable in
// the logs.
type PGDiag struct {
	Code       string
	Message    string
	Detail     string
	Table      string
	Column     string
	Constraint string
}

// Diagnose walks an error chain into a Diag.
func Diagnose(err error) Diag {
	if err == nil {
		return Diag{}
	}

	d := Diag{Message: err.Error()}
	if typed := As(err); typed != nil {
		d.Code = typed.Code()
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}
	d.PG = pgDiag(err)
	return d
}

// pgDiag normalizes whichever Postgres driver produced the error. The pgx
// and lib/pq error types carry the same server fields under different names.
func pgDiag(err error) *PGDiag {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return &PGDiag{
			Code:       pgxErr.Code,
			Message:    pgxErr.Message,
			Detail:     pgxErr.Detail,
			Table:      pgxErr.TableName,
			Column:     pgxErr.ColumnName,
			Constraint: pgxErr.ConstraintName,
		}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return &PGDiag{
			Code:       string(pqErr.Code),
			Message:    pqErr.Message,
			Detail:     pqErr.Detail,
			Table:      pqErr.Table,
			Column:     pqErr.Column,
			Constraint: pqErr.Constraint,
		}
	}

	return nil
}

// Fields renders the diagnostics as logger fields, dropping anything empty
// so plain application errors don't log a page of blank pg_* keys.
func (d Diag) Fields() map[string]any {
	fields := map[string]any{}
	if d.Message != "" {
		fields["error"] = d.Message
	}
	if d.Code != "" {
		fields["error_code"] = d.Code
	}
	if len(d.Chain) > 0 {
		fields["error_chain"] = d.Chain
	}
	if d.PG != nil {
		pg := map[string]string{
			"code":       d.PG.Code,
			"message":    d.PG.Message,
			"detail":     d.PG.Detail,
			"table":      d.PG.Table,
			"column":     d.PG.Column,
			"constraint": d.PG.Constraint,
		}
		for k, v := range pg {
			if v != "" {
				fields["pg_"+k] = v
			}
		}
	}
	return fields
}
