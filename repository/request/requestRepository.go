package requestrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"shareit/model"
	"shareit/util/database"
)

type Repo interface {
	Create(ctx context.Context, req *model.ItemRequest) error
	ByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	ByRequestor(ctx context.Context, requestorID int64) ([]model.ItemRequest, error)
	// ByOtherRequestors pages requests not authored by the user,
	// newest first. limit <= 0 disables pagination.
	ByOtherRequestors(ctx context.Context, requestorID int64, limit, offset int) ([]model.ItemRequest, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, req *model.ItemRequest) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO requests(description, requestor_id, created)
		VALUES ($1,$2,$3)
		RETURNING id`,
		req.Description, req.RequestorID, req.Created,
	).Scan(&req.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	req := &model.ItemRequest{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, description, requestor_id, created
		FROM requests
		WHERE id = $1`,
		id,
	).Scan(&req.ID, &req.Description, &req.RequestorID, &req.Created)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *repo) ByRequestor(ctx context.Context, requestorID int64) ([]model.ItemRequest, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, description, requestor_id, created
		FROM requests
		WHERE requestor_id = $1
		ORDER BY created DESC`,
		requestorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *repo) ByOtherRequestors(ctx context.Context, requestorID int64, limit, offset int) ([]model.ItemRequest, error) {
	q := `
		SELECT id, description, requestor_id, created
		FROM requests
		WHERE requestor_id <> $1
		ORDER BY created DESC`
	args := []any{requestorID}
	if limit > 0 {
		q += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func scanRequests(rows pgx.Rows) ([]model.ItemRequest, error) {
	var out []model.ItemRequest
	for rows.Next() {
		var req model.ItemRequest
		if err := rows.Scan(&req.ID, &req.Description, &req.RequestorID, &req.Created); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}
