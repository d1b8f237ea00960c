package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/heartmarshall/catalog-urlgen/internal/domain"
)

// MySQL server error numbers.
const (
	erDupEntry          = 1062
	erBadNull           = 1048
	erNoReferencedRow2  = 1452
	erRowIsReferenced2  = 1451
	erDataTooLong       = 1406
	erCheckConstraint   = 3819
	erLockWaitTimeout   = 1205
	erLockDeadlock      = 1213
	erTruncatedWrongVal = 1366
)

// MapError converts database/sql and MySQL errors to domain errors,
// prefixed with op. Context errors pass through unmapped.
func MapError(err error, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case erDupEntry:
			return fmt.Errorf("%s: %v: %w", op, myErr, domain.ErrAlreadyExists)
		case erNoReferencedRow2, erRowIsReferenced2:
			return fmt.Errorf("%s: %v: %w", op, myErr, domain.ErrNotFound)
		case erBadNull, erDataTooLong, erCheckConstraint, erTruncatedWrongVal:
			return fmt.Errorf("%s: %v: %w", op, myErr, domain.ErrValidation)
		case erLockWaitTimeout, erLockDeadlock:
			return fmt.Errorf("%s: %v: %w", op, myErr, domain.ErrConflict)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
