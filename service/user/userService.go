package usersvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"shareit/model"
	userrepo "shareit/repository/user"
	"shareit/util/apperr"
)

// Patch distinguishes "not provided" (nil) from a provided value.
type Patch struct {
	Name  *string
	Email *string
}

type Service interface {
	Create(ctx context.Context, name, email string) (*model.User, error)
	Update(ctx context.Context, id int64, p Patch) (*model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	Delete(ctx context.Context, id int64) error
	All(ctx context.Context) ([]model.User, error)
}

type service struct{ ur userrepo.Repo }

func New(ur userrepo.Repo) Service { return &service{ur} }

func (s *service) Create(ctx context.Context, name, email string) (*model.User, error) {
	u := &model.User{Name: name, Email: email}
	if err := s.ur.Create(ctx, u); err != nil {
		if derr := mapDuplicateErr(err, email); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Update(ctx context.Context, id int64, p Patch) (*model.User, error) {
	u, err := s.ur.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, fmt.Sprintf("user %d not found", id))
		}
		return nil, err
	}

	// nil or blank means "not provided"; setting the email to its current
	// value is a no-op, not a conflict.
	if p.Name != nil && strings.TrimSpace(*p.Name) != "" {
		u.Name = *p.Name
	}
	if p.Email != nil && strings.TrimSpace(*p.Email) != "" {
		u.Email = *p.Email
	}

	if err := s.ur.Update(ctx, u); err != nil {
		if derr := mapDuplicateErr(err, u.Email); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.ur.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, fmt.Sprintf("user %d not found", id))
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.ur.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.New(apperr.NotFound, fmt.Sprintf("user %d not found", id))
	}
	return nil
}

func (s *service) All(ctx context.Context) ([]model.User, error) {
	return s.ur.All(ctx)
}

// mapDuplicateErr turns a unique-constraint violation on the email index
// into a Conflict. Other errors pass through untouched.
func mapDuplicateErr(err error, email string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return apperr.New(apperr.Conflict, fmt.Sprintf("user with email %s already exists", email))
	}
	return nil
}
