package requestsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"shareit/model"
	itemrepo "shareit/repository/item"
	requestrepo "shareit/repository/request"
	userrepo "shareit/repository/user"
	"shareit/util/apperr"
)

type Service interface {
	Create(ctx context.Context, userID int64, description string) (*model.ItemRequest, error)
	// ForUser lists the user's own requests, newest first.
	ForUser(ctx context.Context, userID int64) ([]model.ItemRequest, error)
	// Others lists requests from other users, newest first, paged by
	// from/size (zero-based offset, page size). size <= 0 disables paging.
	Others(ctx context.Context, userID int64, from, size int) ([]model.ItemRequest, error)
	Get(ctx context.Context, userID, requestID int64) (*model.ItemRequest, error)
}

type service struct {
	rr requestrepo.Repo
	ur userrepo.Repo
	ir itemrepo.Repo
}

func New(rr requestrepo.Repo, ur userrepo.Repo, ir itemrepo.Repo) Service {
	return &service{rr: rr, ur: ur, ir: ir}
}

func (s *service) Create(ctx context.Context, userID int64, description string) (*model.ItemRequest, error) {
	if err := s.mustExist(ctx, userID); err != nil {
		return nil, err
	}

	req := &model.ItemRequest{
		Description: description,
		RequestorID: userID,
		Created:     time.Now().UTC(),
		Items:       []model.ItemShort{},
	}
	if err := s.rr.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) ForUser(ctx context.Context, userID int64) ([]model.ItemRequest, error) {
	if err := s.mustExist(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.rr.ByRequestor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, requests)
}

func (s *service) Others(ctx context.Context, userID int64, from, size int) ([]model.ItemRequest, error) {
	if err := s.mustExist(ctx, userID); err != nil {
		return nil, err
	}
	if from < 0 || size < 0 {
		return nil, apperr.New(apperr.InvalidArgument, "from and size must not be negative")
	}

	limit, offset := 0, 0
	if size > 0 {
		// zero-based page = from/size
		limit = size
		offset = from / size * size
	}
	requests, err := s.rr.ByOtherRequestors(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, requests)
}

func (s *service) Get(ctx context.Context, userID, requestID int64) (*model.ItemRequest, error) {
	if err := s.mustExist(ctx, userID); err != nil {
		return nil, err
	}
	req, err := s.rr.ByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, fmt.Sprintf("request %d not found", requestID))
		}
		return nil, err
	}
	enriched, err := s.enrich(ctx, []model.ItemRequest{*req})
	if err != nil {
		return nil, err
	}
	return &enriched[0], nil
}

// enrich batch-fetches the items offered against the requests and groups
// them by request id.
func (s *service) enrich(ctx context.Context, requests []model.ItemRequest) ([]model.ItemRequest, error) {
	if len(requests) == 0 {
		return []model.ItemRequest{}, nil
	}

	ids := make([]int64, 0, len(requests))
	for _, req := range requests {
		ids = append(ids, req.ID)
	}
	items, err := s.ir.ByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byRequest := map[int64][]model.ItemShort{}
	for _, it := range items {
		if it.RequestID == nil {
			continue
		}
		byRequest[*it.RequestID] = append(byRequest[*it.RequestID],
			model.ItemShort{ID: it.ID, Name: it.Name, OwnerID: it.OwnerID})
	}

	out := make([]model.ItemRequest, 0, len(requests))
	for _, req := range requests {
		req.Items = byRequest[req.ID]
		if req.Items == nil {
			req.Items = []model.ItemShort{}
		}
		out = append(out, req)
	}
	return out, nil
}

func (s *service) mustExist(ctx context.Context, userID int64) error {
	ok, err := s.ur.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.New(apperr.NotFound, fmt.Sprintf("user %d not found", userID))
	}
	return nil
}
