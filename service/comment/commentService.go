package commentsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"shareit/model"
	bookingrepo "shareit/repository/booking"
	commentrepo "shareit/repository/comment"
	itemrepo "shareit/repository/item"
	userrepo "shareit/repository/user"
	"shareit/util/apperr"
)

type Service interface {
	// Add stores a comment if the author has an approved booking of the
	// item that already ended.
	Add(ctx context.Context, userID, itemID int64, text string) (*model.Comment, error)
}

type service struct {
	cr commentrepo.Repo
	ur userrepo.Repo
	ir itemrepo.Repo
	br bookingrepo.Repo
}

func New(cr commentrepo.Repo, ur userrepo.Repo, ir itemrepo.Repo, br bookingrepo.Repo) Service {
	return &service{cr: cr, ur: ur, ir: ir, br: br}
}

func (s *service) Add(ctx context.Context, userID, itemID int64, text string) (*model.Comment, error) {
	u, err := s.ur.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, fmt.Sprintf("user %d not found", userID))
		}
		return nil, err
	}

	if _, err := s.ir.ByID(ctx, itemID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, fmt.Sprintf("item %d not found", itemID))
		}
		return nil, err
	}

	now := time.Now().UTC()
	completed, err := s.br.ExistsCompleted(ctx, userID, itemID, now)
	if err != nil {
		return nil, err
	}
	if !completed {
		return nil, apperr.New(apperr.InvalidArgument, "user has not completed booking for this item")
	}

	c := &model.Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   userID,
		AuthorName: u.Name,
		Created:    now,
	}
	if err := s.cr.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
