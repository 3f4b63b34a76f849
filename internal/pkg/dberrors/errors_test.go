package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	unique := fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})
	fk := &pgconn.PgError{Code: "23503"}
	check := &pgconn.PgError{Code: "23514"}

	assert.True(t, IsDuplicateConstraintError(unique, "users_username_key"))
	assert.False(t, IsDuplicateConstraintError(unique, "other_key"))
	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.True(t, IsCheckViolation(check))

	plain := errors.New("boom")
	assert.False(t, IsUniqueViolation(plain))
	assert.False(t, IsForeignKeyViolation(plain))
	assert.False(t, IsCheckViolation(nil))
}
