package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPgUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "categories_name_key"}
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, isPgUniqueViolation(unique))
	assert.True(t, isPgUniqueViolation(fmt.Errorf("insert category: %w", unique)))
	assert.False(t, isPgUniqueViolation(fk))
	assert.False(t, isPgUniqueViolation(errors.New("boom")))
	assert.False(t, isPgUniqueViolation(nil))
}

func TestDecimalNumericRoundTrip(t *testing.T) {
	for _, s := range []string{"100", "0.01", "1234567.89", "30.50"} {
		num, err := decimalToPgNumeric(decimal.RequireFromString(s))
		require.NoError(t, err)

		got := pgNumericToDecimal(num)
		assert.True(t, got.Equal(decimal.RequireFromString(s)), "round trip of %s gave %s", s, got)
	}
}

func TestPgNumericToDecimal_Invalid(t *testing.T) {
	assert.True(t, pgNumericToDecimal(pgtype.Numeric{}).IsZero())
}

func TestPgTextConversions(t *testing.T) {
	assert.Nil(t, pgTextToStringPtr(pgtype.Text{}))
	assert.False(t, stringPtrToPgText(nil).Valid)

	s := "lunch"
	text := stringPtrToPgText(&s)
	require.True(t, text.Valid)
	assert.Equal(t, "lunch", *pgTextToStringPtr(text))
}
