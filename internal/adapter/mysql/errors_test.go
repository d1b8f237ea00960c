package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/catalog-urlgen/internal/adapter/mysql"
	"github.com/heartmarshall/catalog-urlgen/internal/domain"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantIs  error
		wantMsg string
	}{
		{name: "duplicate entry", err: &gomysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a.html'"}, wantIs: domain.ErrAlreadyExists},
		{name: "missing parent", err: &gomysql.MySQLError{Number: 1452, Message: "foreign key"}, wantIs: domain.ErrNotFound},
		{name: "null column", err: &gomysql.MySQLError{Number: 1048, Message: "cannot be null"}, wantIs: domain.ErrValidation},
		{name: "data too long", err: &gomysql.MySQLError{Number: 1406, Message: "Data too long for column 'request_path'"}, wantIs: domain.ErrValidation},
		{name: "deadlock", err: &gomysql.MySQLError{Number: 1213, Message: "Deadlock found"}, wantIs: domain.ErrConflict},
		{name: "wrapped", err: fmt.Errorf("exec: %w", &gomysql.MySQLError{Number: 1205}), wantIs: domain.ErrConflict},
		{name: "no rows", err: sql.ErrNoRows, wantIs: domain.ErrNotFound},
		{name: "canceled", err: context.Canceled, wantIs: context.Canceled},
		{name: "other server error", err: &gomysql.MySQLError{Number: 1146, Message: "Table doesn't exist"}, wantMsg: "Table doesn't exist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := mysql.MapError(tt.err, "exec")
			assert.ErrorContains(t, err, "exec: ")
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			if tt.wantMsg != "" {
				assert.ErrorContains(t, err, tt.wantMsg)
				for _, sentinel := range []error{domain.ErrAlreadyExists, domain.ErrNotFound, domain.ErrValidation, domain.ErrConflict} {
					assert.False(t, errors.Is(err, sentinel), "unexpected %v", sentinel)
				}
			}
		})
	}

	assert.NoError(t, mysql.MapError(nil, "exec"))
}

func TestParseDSN(t *testing.T) {
	t.Parallel()

	cfg, err := mysql.ParseDSN("urlgen:secret@tcp(db:3306)/catalog?timeout=5s")
	if assert.NoError(t, err) {
		assert.Equal(t, "catalog", cfg.DBName)
		assert.Equal(t, "db:3306", cfg.Addr)
		assert.Equal(t, "urlgen", cfg.User)
	}

	for _, dsn := range []string{"", "   ", "not a dsn", "urlgen@tcp(db:3306)/"} {
		_, err := mysql.ParseDSN(dsn)
		assert.Error(t, err, "dsn %q", dsn)
	}
}
