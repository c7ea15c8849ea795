package postgres

import (
	"context"

	"github.com/google/uuid"
)

const categoryColumns = `id, name, slug, description, color, is_private, created_at, modified_at`

func scanCategory(row interface{ Scan(dest ...any) error }) (Category, error) {
	var c Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Color,
		&c.IsPrivate, &c.CreatedAt, &c.ModifiedAt)
	return c, err
}

type UpsertCategoryParams struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description *string
	Color       *string
	IsPrivate   bool
}

// UpsertCategoryBySlug creates the category, or returns the existing row
// when the slug is already taken. The no-op DO UPDATE makes RETURNING yield
// the existing row on conflict.
func (q *Queries) UpsertCategoryBySlug(ctx context.Context, p UpsertCategoryParams) (Category, error) {
	row := q.db.QueryRow(ctx,
		`INSERT INTO categories (id, name, slug, description, color, is_private)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (slug) DO UPDATE SET slug = EXCLUDED.slug
		 RETURNING `+categoryColumns,
		p.ID, p.Name, p.Slug, p.Description, p.Color, p.IsPrivate)
	return scanCategory(row)
}

func (q *Queries) LinkPostCategory(ctx context.Context, postID, categoryID uuid.UUID) error {
	_, err := q.db.Exec(ctx,
		`INSERT INTO categories_on_posts (post_id, category_id)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		postID, categoryID)
	return err
}

func (q *Queries) ListCategoriesByPost(ctx context.Context, postID uuid.UUID) ([]Category, error) {
	rows, err := q.db.Query(ctx,
		`SELECT c.id, c.name, c.slug, c.description, c.color, c.is_private, c.created_at, c.modified_at
		 FROM categories c
		 JOIN categories_on_posts cp ON cp.category_id = c.id
		 WHERE cp.post_id = $1
		 ORDER BY c.id`,
		postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (q *Queries) ListCategoriesAfter(ctx context.Context, after *uuid.UUID, limit int32) ([]Category, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+categoryColumns+`
		 FROM categories
		 WHERE $1::uuid IS NULL OR id > $1
		 ORDER BY id
		 LIMIT $2`,
		after, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (q *Queries) CountCategories(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `SELECT count(*) FROM categories`).Scan(&n)
	return n, err
}

const tagColumns = `id, name, slug, created_at, modified_at`

func scanTag(row interface{ Scan(dest ...any) error }) (Tag, error) {
	var t Tag
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.ModifiedAt)
	return t, err
}

type UpsertTagParams struct {
	ID   uuid.UUID
	Name string
	Slug string
}

// UpsertTagBySlug creates the tag, or returns the existing row when the
// slug is already taken.
func (q *Queries) UpsertTagBySlug(ctx context.Context, p UpsertTagParams) (Tag, error) {
	row := q.db.QueryRow(ctx,
		`INSERT INTO tags (id, name, slug)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (slug) DO UPDATE SET slug = EXCLUDED.slug
		 RETURNING `+tagColumns,
		p.ID, p.Name, p.Slug)
	return scanTag(row)
}

func (q *Queries) LinkPostTag(ctx context.Context, postID, tagID uuid.UUID) error {
	_, err := q.db.Exec(ctx,
		`INSERT INTO tags_on_posts (post_id, tag_id)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		postID, tagID)
	return err
}

func (q *Queries) ListTagsByPost(ctx context.Context, postID uuid.UUID) ([]Tag, error) {
	rows, err := q.db.Query(ctx,
		`SELECT t.id, t.name, t.slug, t.created_at, t.modified_at
		 FROM tags t
		 JOIN tags_on_posts tp ON tp.tag_id = t.id
		 WHERE tp.post_id = $1
		 ORDER BY t.id`,
		postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (q *Queries) ListTagsAfter(ctx context.Context, after *uuid.UUID, limit int32) ([]Tag, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+tagColumns+`
		 FROM tags
		 WHERE $1::uuid IS NULL OR id > $1
		 ORDER BY id
		 LIMIT $2`,
		after, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (q *Queries) CountTags(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `SELECT count(*) FROM tags`).Scan(&n)
	return n, err
}

const groupColumns = `id, name, slug, description, is_private, created_at, modified_at`

func scanGroup(row interface{ Scan(dest ...any) error }) (Group, error) {
	var g Group
	err := row.Scan(&g.ID, &g.Name, &g.Slug, &g.Description, &g.IsPrivate,
		&g.CreatedAt, &g.ModifiedAt)
	return g, err
}

type UpsertGroupParams struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description *string
	IsPrivate   bool
}

// UpsertGroupBySlug creates the group, or returns the existing row when the
// slug is already taken.
func (q *Queries) UpsertGroupBySlug(ctx context.Context, p UpsertGroupParams) (Group, error) {
	row := q.db.QueryRow(ctx,
		`INSERT INTO groups (id, name, slug, description, is_private)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (slug) DO UPDATE SET slug = EXCLUDED.slug
		 RETURNING `+groupColumns,
		p.ID, p.Name, p.Slug, p.Description, p.IsPrivate)
	return scanGroup(row)
}

func (q *Queries) LinkPostGroup(ctx context.Context, postID, groupID uuid.UUID) error {
	_, err := q.db.Exec(ctx,
		`INSERT INTO groups_on_posts (post_id, group_id)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		postID, groupID)
	return err
}

func (q *Queries) ListGroupsByPost(ctx context.Context, postID uuid.UUID) ([]Group, error) {
	rows, err := q.db.Query(ctx,
		`SELECT g.id, g.name, g.slug, g.description, g.is_private, g.created_at, g.modified_at
		 FROM groups g
		 JOIN groups_on_posts gp ON gp.group_id = g.id
		 WHERE gp.post_id = $1
		 ORDER BY g.id`,
		postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, g)
	}
	return items, rows.Err()
}

func (q *Queries) ListGroupsAfter(ctx context.Context, after *uuid.UUID, limit int32) ([]Group, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+groupColumns+`
		 FROM groups
		 WHERE $1::uuid IS NULL OR id > $1
		 ORDER BY id
		 LIMIT $2`,
		after, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, g)
	}
	return items, rows.Err()
}

func (q *Queries) CountGroups(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `SELECT count(*) FROM groups`).Scan(&n)
	return n, err
}
