package commentrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"shareit/model"
	"shareit/util/database"
)

type Repo interface {
	Create(ctx context.Context, c *model.Comment) error
	ByItem(ctx context.Context, itemID int64) ([]model.Comment, error)
	ByItems(ctx context.Context, itemIDs []int64) ([]model.Comment, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, c *model.Comment) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO comments(text, item_id, author_id, created)
		VALUES ($1,$2,$3,$4)
		RETURNING id`,
		c.Text, c.ItemID, c.AuthorID, c.Created,
	).Scan(&c.ID)
}

func (r *repo) ByItem(ctx context.Context, itemID int64) ([]model.Comment, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT c.id, c.text, c.item_id, c.author_id, u.name, c.created
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.item_id = $1
		ORDER BY c.created DESC`,
		itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComments(rows)
}

func (r *repo) ByItems(ctx context.Context, itemIDs []int64) ([]model.Comment, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT c.id, c.text, c.item_id, c.author_id, u.name, c.created
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.item_id = ANY($1)
		ORDER BY c.created DESC`,
		itemIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComments(rows)
}

func scanComments(rows pgx.Rows) ([]model.Comment, error) {
	var out []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Created); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
