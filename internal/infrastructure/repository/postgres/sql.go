package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const (
	pqUndefinedTable  pq.ErrorCode = "42P01"
	pqUndefinedColumn pq.ErrorCode = "42703"
)

// ErrSchemaMissing means the football_players migrations have not been applied.
var ErrSchemaMissing = errors.New("football_players schema is missing, run cmd/migration up")

func describeStoreError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUndefinedTable, pqUndefinedColumn:
			return fmt.Errorf("%w: %s", ErrSchemaMissing, pqErr.Message)
		}
	}
	return err
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
