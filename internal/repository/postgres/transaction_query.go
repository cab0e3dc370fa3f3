package postgres

import (
	"fmt"
	"strings"

	"github.com/ashecone/expense-tracker-api/internal/domain"
	"github.com/jackc/pgx/v5/pgtype"
)

const selectTransactionColumns = `
	SELECT
		t.id_transaction,
		t.user_id,
		t.type,
		t.amount,
		t.description,
		t.category_id,
		c.name,
		t.date
	FROM transactions t
	JOIN categories c ON t.category_id = c.id_category`

// sortColumns is the allow-list of ORDER BY expressions. Only these constant
// fragments ever reach the query text.
var sortColumns = map[domain.SortField]string{
	domain.SortByDate:   "t.date",
	domain.SortByAmount: "t.amount",
	domain.SortByType:   "t.type",
	domain.SortByID:     "t.id_transaction",
}

var sortDirections = map[domain.SortOrder]string{
	domain.SortAsc:  "ASC",
	domain.SortDesc: "DESC",
}

// transactionQuery accumulates WHERE predicates with positional arguments
type transactionQuery struct {
	predicates []string
	args       []any
}

func (q *transactionQuery) where(format string, value any) {
	q.args = append(q.args, value)
	q.predicates = append(q.predicates, fmt.Sprintf(format, len(q.args)))
}

// buildTransactionQuery renders a parameterized SELECT for q. Caller-provided
// values are only ever passed as arguments.
func buildTransactionQuery(q domain.TransactionQuery) (string, []any) {
	b := &transactionQuery{}
	b.where("t.user_id = $%d", q.UserID)

	if q.StartDate != nil {
		b.where("t.date >= $%d", pgtype.Date{Time: *q.StartDate, Valid: true})
	}
	if q.EndDate != nil {
		b.where("t.date <= $%d", pgtype.Date{Time: *q.EndDate, Valid: true})
	}
	if q.Type != nil {
		b.where("t.type = $%d", string(*q.Type))
	}
	if q.CategoryName != nil {
		b.where("c.name = $%d", *q.CategoryName)
	}

	column, ok := sortColumns[q.SortField]
	if !ok {
		column = sortColumns[domain.SortByDate]
	}
	direction, ok := sortDirections[q.SortOrder]
	if !ok {
		direction = sortDirections[domain.SortDesc]
	}

	var sb strings.Builder
	sb.WriteString(selectTransactionColumns)
	sb.WriteString("\n\tWHERE ")
	sb.WriteString(strings.Join(b.predicates, " AND "))
	sb.WriteString("\n\tORDER BY ")
	sb.WriteString(column)
	sb.WriteString(" ")
	sb.WriteString(direction)
	if column != sortColumns[domain.SortByID] {
		// keep ties stable across pages and repeated calls
		sb.WriteString(", t.id_transaction ")
		sb.WriteString(direction)
	}

	args := b.args
	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&sb, "\n\tLIMIT $%d", len(args))
	}

	return sb.String(), args
}
