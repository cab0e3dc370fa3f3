package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/ashecone/expense-tracker-api/internal/domain"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTransactionQuery_Defaults(t *testing.T) {
	sql, args := buildTransactionQuery(domain.TransactionQuery{UserID: 7})

	assert.Contains(t, sql, "WHERE t.user_id = $1")
	assert.Contains(t, sql, "ORDER BY t.date DESC, t.id_transaction DESC")
	assert.NotContains(t, sql, "LIMIT")
	assert.Equal(t, []any{int32(7)}, args)
}

func TestBuildTransactionQuery_SortAllowList(t *testing.T) {
	tests := []struct {
		field domain.SortField
		order domain.SortOrder
		want  string
	}{
		{domain.SortByAmount, domain.SortAsc, "ORDER BY t.amount ASC, t.id_transaction ASC"},
		{domain.SortByType, domain.SortDesc, "ORDER BY t.type DESC, t.id_transaction DESC"},
		{domain.SortByID, domain.SortAsc, "ORDER BY t.id_transaction ASC"},
		{domain.SortField("name; DROP TABLE users"), domain.SortOrder("sideways"), "ORDER BY t.date DESC"},
	}

	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			sql, _ := buildTransactionQuery(domain.TransactionQuery{UserID: 1, SortField: tt.field, SortOrder: tt.order})
			assert.Contains(t, sql, tt.want)
			assert.NotContains(t, sql, "DROP")
			assert.NotContains(t, sql, "sideways")
		})
	}
}

func TestBuildTransactionQuery_AllFilters(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	txType := domain.TransactionTypeExpense
	category := "Food' OR '1'='1"

	sql, args := buildTransactionQuery(domain.TransactionQuery{
		UserID:       3,
		StartDate:    &start,
		EndDate:      &end,
		Type:         &txType,
		CategoryName: &category,
		Limit:        5,
	})

	assert.Contains(t, sql, "t.user_id = $1 AND t.date >= $2 AND t.date <= $3 AND t.type = $4 AND c.name = $5")
	assert.True(t, strings.HasSuffix(sql, "LIMIT $6"))
	assert.NotContains(t, sql, "Food")

	require.Len(t, args, 6)
	assert.Equal(t, int32(3), args[0])
	assert.Equal(t, pgtype.Date{Time: start, Valid: true}, args[1])
	assert.Equal(t, pgtype.Date{Time: end, Valid: true}, args[2])
	assert.Equal(t, "expense", args[3])
	assert.Equal(t, category, args[4])
	assert.Equal(t, int32(5), args[5])
}

func TestBuildTransactionQuery_CategoryOnly(t *testing.T) {
	category := "Salary"
	sql, args := buildTransactionQuery(domain.TransactionQuery{UserID: 1, CategoryName: &category})

	assert.Contains(t, sql, "WHERE t.user_id = $1 AND c.name = $2")
	assert.Equal(t, []any{int32(1), "Salary"}, args)
}
