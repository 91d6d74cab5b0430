package postgres

import (
	"errors"
	"strings"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func pgError(err error, code string) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr, true
	}
	return nil, false
}

func isUniqueViolation(err error) (*pgconn.PgError, bool) {
	return pgError(err, pgerrcode.UniqueViolation)
}

func isForeignKeyViolation(err error) bool {
	_, ok := pgError(err, pgerrcode.ForeignKeyViolation)
	return ok
}

// duplicateFieldError turns a unique violation on a *_name_key or *_slug_key
// constraint into a field error for that column.
func duplicateFieldError(pgErr *pgconn.PgError, entity string) error {
	field := "non_field_errors"
	switch {
	case strings.HasSuffix(pgErr.ConstraintName, "slug_key"):
		field = "slug"
	case strings.HasSuffix(pgErr.ConstraintName, "name_key"):
		field = "name"
	}
	return domain.NewFieldError(field, entity+" with this "+field+" already exists.")
}

// nonNegativeColumns are the columns guarded by "CHECK (col >= 0)", mapped to
// the request field they are bound from.
var nonNegativeColumns = map[string]string{
	"rooms":        "rooms",
	"floor":        "floor",
	"total_floors": "total_floors",
	"year_built":   "year_built",
	"sort_order":   "order",
}

// rejectedInput turns a value the schema refused into a field error, so a
// bound that slipped past request validation still answers 400. It returns
// nil for any other error.
// Column checks keep PostgreSQL's default "<table>_<column>_check" name.
func rejectedInput(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	case pgerrcode.CheckViolation:
		column := strings.TrimSuffix(strings.TrimPrefix(pgErr.ConstraintName, pgErr.TableName+"_"), "_check")
		if field, ok := nonNegativeColumns[column]; ok {
			return domain.NewFieldError(field, "Ensure this value is greater than or equal to 0.")
		}
		return domain.NewFieldError("non_field_errors", "Invalid value.")
	case pgerrcode.StringDataRightTruncationDataException:
		return domain.NewFieldError("non_field_errors", "A value is longer than its field allows.")
	case pgerrcode.NumericValueOutOfRange:
		return domain.NewFieldError("non_field_errors", "A number is out of range.")
	}
	return nil
}
