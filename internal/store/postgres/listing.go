package postgres

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// OrderField is one validated `field:direction` pair from an orderBy string.
type OrderField struct {
	Column string
	Desc   bool
}

// postOrderColumns is the allow-list of sortable post fields, keyed by the
// API-facing name. Anything else is rejected instead of passed through.
var postOrderColumns = map[string]string{
	"createdAt":  "created_at",
	"modifiedAt": "modified_at",
	"title":      "title",
	"status":     "status",
}

// ParsePostOrderBy parses a comma-separated list of `field:direction` pairs
// against the post allow-list. Direction defaults to asc. An empty input
// yields no ordering (callers fall back to id order).
func ParsePostOrderBy(orderBy string) ([]OrderField, error) {
	orderBy = strings.TrimSpace(orderBy)
	if orderBy == "" {
		return nil, nil
	}

	var fields []OrderField
	for _, pair := range strings.Split(orderBy, ",") {
		name, dir, _ := strings.Cut(strings.TrimSpace(pair), ":")
		col, ok := postOrderColumns[strings.TrimSpace(name)]
		if !ok {
			return nil, fmt.Errorf("unknown order field %q", name)
		}
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
			fields = append(fields, OrderField{Column: col})
		case "desc":
			fields = append(fields, OrderField{Column: col, Desc: true})
		default:
			return nil, fmt.Errorf("unknown order direction %q", dir)
		}
	}
	return fields, nil
}

// orderClauses renders the ORDER BY list with id as the final tiebreaker,
// which keeps the ordering total and the keyset predicate correct.
func orderClauses(order []OrderField) []string {
	clauses := make([]string, 0, len(order)+1)
	for _, f := range order {
		dir := "ASC"
		if f.Desc {
			dir = "DESC"
		}
		clauses = append(clauses, f.Column+" "+dir)
	}
	return append(clauses, "id ASC")
}

// keysetPredicate builds the lexicographic row comparison that resumes a
// page strictly after the cursor row. For an order (f1 asc, f2 desc) it
// expands to:
//
//	f1 > v1 OR (f1 = v1 AND f2 < v2) OR (f1 = v1 AND f2 = v2 AND id > cid)
func keysetPredicate(order []OrderField, cursorVals []any, cursorID uuid.UUID) sq.Sqlizer {
	var or sq.Or
	for i, f := range order {
		and := make(sq.And, 0, i+1)
		for j := 0; j < i; j++ {
			and = append(and, sq.Eq{order[j].Column: cursorVals[j]})
		}
		if f.Desc {
			and = append(and, sq.Lt{f.Column: cursorVals[i]})
		} else {
			and = append(and, sq.Gt{f.Column: cursorVals[i]})
		}
		or = append(or, and)
	}

	final := make(sq.And, 0, len(order)+1)
	for j := range order {
		final = append(final, sq.Eq{order[j].Column: cursorVals[j]})
	}
	final = append(final, sq.Gt{"id": cursorID})
	return append(or, final)
}

// postOrderValue extracts the cursor row's value for an allow-listed column.
func postOrderValue(p Post, column string) any {
	switch column {
	case "created_at":
		return p.CreatedAt
	case "modified_at":
		return p.ModifiedAt
	case "title":
		return p.Title
	case "status":
		return p.Status
	default:
		return nil
	}
}

type ListPostsParams struct {
	After *uuid.UUID
	Limit int32
	Order []OrderField
}

// ListPostsPage returns one page of posts under the given ordering. When a
// cursor is present the cursor row is read first so its sort-column values
// can seed the keyset predicate.
func (q *Queries) ListPostsPage(ctx context.Context, p ListPostsParams) ([]Post, error) {
	qb := sq.Select(strings.Split(postColumns, ", ")...).
		From("posts").
		OrderBy(orderClauses(p.Order)...).
		Limit(uint64(p.Limit)).
		PlaceholderFormat(sq.Dollar)

	if p.After != nil {
		cursor, err := q.GetPostByID(ctx, *p.After)
		if err != nil {
			return nil, fmt.Errorf("resolve cursor: %w", err)
		}
		vals := make([]any, len(p.Order))
		for i, f := range p.Order {
			vals[i] = postOrderValue(cursor, f.Column)
		}
		qb = qb.Where(keysetPredicate(p.Order, vals, cursor.ID))
	}

	sqlStr, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}
