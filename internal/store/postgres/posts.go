package postgres

import (
	"context"

	"github.com/google/uuid"
)

const postColumns = `id, title, description, content, slug, status, author_id, created_at, modified_at`

func scanPost(row interface{ Scan(dest ...any) error }) (Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Content, &p.Slug,
		&p.Status, &p.AuthorID, &p.CreatedAt, &p.ModifiedAt)
	return p, err
}

type CreatePostParams struct {
	ID          uuid.UUID
	Title       string
	Description *string
	Content     string
	Slug        string
	Status      string
	AuthorID    uuid.UUID
}

func (q *Queries) CreatePost(ctx context.Context, p CreatePostParams) (Post, error) {
	row := q.db.QueryRow(ctx,
		`INSERT INTO posts (id, title, description, content, slug, status, author_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+postColumns,
		p.ID, p.Title, p.Description, p.Content, p.Slug, p.Status, p.AuthorID)
	return scanPost(row)
}

type UpdatePostParams struct {
	ID          uuid.UUID
	Title       string
	Description *string
	Content     string
	Status      string
}

// UpdatePost rewrites the mutable fields of a post. The slug and author_id
// are immutable once set at creation.
func (q *Queries) UpdatePost(ctx context.Context, p UpdatePostParams) (Post, error) {
	row := q.db.QueryRow(ctx,
		`UPDATE posts
		 SET title = $2, description = $3, content = $4, status = $5, modified_at = now()
		 WHERE id = $1
		 RETURNING `+postColumns,
		p.ID, p.Title, p.Description, p.Content, p.Status)
	return scanPost(row)
}

func (q *Queries) GetPostByID(ctx context.Context, id uuid.UUID) (Post, error) {
	row := q.db.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	return scanPost(row)
}

func (q *Queries) GetPostBySlug(ctx context.Context, slug string) (Post, error) {
	row := q.db.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE slug = $1`, slug)
	return scanPost(row)
}

func (q *Queries) CountPosts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `SELECT count(*) FROM posts`).Scan(&n)
	return n, err
}

func (q *Queries) CountPostsByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `SELECT count(*) FROM posts WHERE author_id = $1`, authorID).Scan(&n)
	return n, err
}

func collectPosts(rows interface {
	Next() bool
	Scan(dest ...any) error
	Close()
	Err() error
}) ([]Post, error) {
	defer rows.Close()
	var items []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// ListPostsByAuthorAfter pages an author's posts by id keyset.
func (q *Queries) ListPostsByAuthorAfter(ctx context.Context, authorID uuid.UUID, after *uuid.UUID, limit int32) ([]Post, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+postColumns+`
		 FROM posts
		 WHERE author_id = $1 AND ($2::uuid IS NULL OR id > $2)
		 ORDER BY id
		 LIMIT $3`,
		authorID, after, limit)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

// ListPostsByCategoryAfter pages the posts linked to a category.
func (q *Queries) ListPostsByCategoryAfter(ctx context.Context, categoryID uuid.UUID, after *uuid.UUID, limit int32) ([]Post, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+prefixedPostColumns("p")+`
		 FROM posts p
		 JOIN categories_on_posts cp ON cp.post_id = p.id
		 WHERE cp.category_id = $1 AND ($2::uuid IS NULL OR p.id > $2)
		 ORDER BY p.id
		 LIMIT $3`,
		categoryID, after, limit)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

// ListPostsByTagAfter pages the posts linked to a tag.
func (q *Queries) ListPostsByTagAfter(ctx context.Context, tagID uuid.UUID, after *uuid.UUID, limit int32) ([]Post, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+prefixedPostColumns("p")+`
		 FROM posts p
		 JOIN tags_on_posts tp ON tp.post_id = p.id
		 WHERE tp.tag_id = $1 AND ($2::uuid IS NULL OR p.id > $2)
		 ORDER BY p.id
		 LIMIT $3`,
		tagID, after, limit)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

// ListPostsByGroupAfter pages the posts linked to a group.
func (q *Queries) ListPostsByGroupAfter(ctx context.Context, groupID uuid.UUID, after *uuid.UUID, limit int32) ([]Post, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+prefixedPostColumns("p")+`
		 FROM posts p
		 JOIN groups_on_posts gp ON gp.post_id = p.id
		 WHERE gp.group_id = $1 AND ($2::uuid IS NULL OR p.id > $2)
		 ORDER BY p.id
		 LIMIT $3`,
		groupID, after, limit)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

func prefixedPostColumns(alias string) string {
	return alias + ".id, " + alias + ".title, " + alias + ".description, " + alias + ".content, " +
		alias + ".slug, " + alias + ".status, " + alias + ".author_id, " + alias + ".created_at, " + alias + ".modified_at"
}

func (q *Queries) CountPostsByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx,
		`SELECT count(*) FROM categories_on_posts WHERE category_id = $1`, categoryID).Scan(&n)
	return n, err
}

func (q *Queries) CountPostsByTag(ctx context.Context, tagID uuid.UUID) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx,
		`SELECT count(*) FROM tags_on_posts WHERE tag_id = $1`, tagID).Scan(&n)
	return n, err
}

func (q *Queries) CountPostsByGroup(ctx context.Context, groupID uuid.UUID) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx,
		`SELECT count(*) FROM groups_on_posts WHERE group_id = $1`, groupID).Scan(&n)
	return n, err
}
