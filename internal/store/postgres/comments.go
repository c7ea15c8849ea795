package postgres

import (
	"context"

	"github.com/google/uuid"
)

const commentColumns = `id, post_id, content, is_blocked, created_at, modified_at`

func scanComment(row interface{ Scan(dest ...any) error }) (Comment, error) {
	var c Comment
	err := row.Scan(&c.ID, &c.PostID, &c.Content, &c.IsBlocked, &c.CreatedAt, &c.ModifiedAt)
	return c, err
}

type CreateCommentParams struct {
	ID      uuid.UUID
	PostID  uuid.UUID
	Content string
}

func (q *Queries) CreateComment(ctx context.Context, p CreateCommentParams) (Comment, error) {
	row := q.db.QueryRow(ctx,
		`INSERT INTO comments (id, post_id, content)
		 VALUES ($1, $2, $3)
		 RETURNING `+commentColumns,
		p.ID, p.PostID, p.Content)
	return scanComment(row)
}

func (q *Queries) ListCommentsAfter(ctx context.Context, after *uuid.UUID, limit int32) ([]Comment, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+commentColumns+`
		 FROM comments
		 WHERE $1::uuid IS NULL OR id > $1
		 ORDER BY id
		 LIMIT $2`,
		after, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// ListCommentsByPostAfter pages a post's comments by id keyset.
func (q *Queries) ListCommentsByPostAfter(ctx context.Context, postID uuid.UUID, after *uuid.UUID, limit int32) ([]Comment, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+commentColumns+`
		 FROM comments
		 WHERE post_id = $1 AND ($2::uuid IS NULL OR id > $2)
		 ORDER BY id
		 LIMIT $3`,
		postID, after, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (q *Queries) CountComments(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `SELECT count(*) FROM comments`).Scan(&n)
	return n, err
}

func (q *Queries) CountCommentsByPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `SELECT count(*) FROM comments WHERE post_id = $1`, postID).Scan(&n)
	return n, err
}
