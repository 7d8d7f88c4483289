package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 500

	orderByCreated = "created_at"
	orderByPrice   = "final_price"
)

// validOrderBy maps allowed OrderBy values to their SQL column expressions.
var validOrderBy = map[string]string{
	orderByCreated: "created_at DESC",
	orderByPrice:   "final_price DESC",
}

const defaultOrderBy = "created_at DESC"

const baseOrdersSelect = `SELECT id, session_id, category, brand, model, final_price, payload, created_at
FROM orders`

const countOrdersSelect = "SELECT COUNT(*) FROM orders"

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for an order query.
// It returns two SQL strings (one for the data query, one for the count query)
// and the positional parameters.
func (q *OrderQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	if q.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", paramIdx))
		args = append(args, *q.Category)
		paramIdx++
	}

	if q.Brand != nil {
		conditions = append(conditions, fmt.Sprintf("lower(brand) = lower($%d)", paramIdx))
		args = append(args, *q.Brand)
		paramIdx++
	}

	if q.Since != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", paramIdx))
		args = append(args, *q.Since)
		paramIdx++
	}

	if q.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("final_price >= $%d", paramIdx))
		args = append(args, *q.MinPrice)
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	orderClause := defaultOrderBy
	if q.OrderBy != "" {
		if col, ok := validOrderBy[q.OrderBy]; ok {
			orderClause = col
		}
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := max(q.Offset, 0)

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY %s LIMIT %d OFFSET %d",
		baseOrdersSelect, whereClause, orderClause, limit, offset,
	)

	countSQL = countOrdersSelect + whereClause

	return dataSQL, countSQL, args
}
