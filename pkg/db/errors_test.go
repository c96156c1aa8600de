package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolationPgconn(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "idx_stores_domain"}

	assert.True(t, IsUniqueViolation(err, ""))
	assert.True(t, IsUniqueViolation(err, "idx_stores_domain"))
	assert.False(t, IsUniqueViolation(err, "idx_codes_store_code"))
}

func TestIsUniqueViolationPq(t *testing.T) {
	err := &pq.Error{Code: "23505", Constraint: "idx_creator_codes_pair"}

	assert.True(t, IsUniqueViolation(err, ""))
	assert.True(t, IsUniqueViolation(err, "idx_creator_codes_pair"))
	assert.False(t, IsUniqueViolation(err, "other"))
}

func TestIsUniqueViolationOtherPGCode(t *testing.T) {
	err := &pgconn.PgError{Code: "23503", ConstraintName: "fk_codes_store"}

	assert.False(t, IsUniqueViolation(err, ""))
	assert.False(t, IsUniqueViolation(err, "fk_codes_store"))
}

func TestIsUniqueViolationWrapped(t *testing.T) {
	inner := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	wrapped := fmt.Errorf("create user: %w", inner)

	assert.True(t, IsUniqueViolation(wrapped, "users_email_key"))
}

func TestIsUniqueViolationStringFallback(t *testing.T) {
	assert.True(t, IsUniqueViolation(errors.New(`duplicate key value violates unique constraint "idx_stores_domain"`), ""))
	assert.True(t, IsUniqueViolation(errors.New(`violates constraint "idx_stores_domain"`), "idx_stores_domain"))
	assert.False(t, IsUniqueViolation(errors.New("connection refused"), ""))
	assert.False(t, IsUniqueViolation(nil, ""))
}
