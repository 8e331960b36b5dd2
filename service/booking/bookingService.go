package bookingsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"shareit/model"
	bookingrepo "shareit/repository/booking"
	itemrepo "shareit/repository/item"
	userrepo "shareit/repository/user"
	"shareit/util/apperr"
)

type Service interface {
	Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*model.Booking, error)
	// UpdateStatus approves or rejects a WAITING booking; owner only.
	UpdateStatus(ctx context.Context, userID, bookingID int64, approved bool) (*model.Booking, error)
	Get(ctx context.Context, userID, bookingID int64) (*model.Booking, error)
	ListForBooker(ctx context.Context, userID int64, state model.BookingState) ([]model.Booking, error)
	ListForOwner(ctx context.Context, userID int64, state model.BookingState) ([]model.Booking, error)
}

type service struct {
	br bookingrepo.Repo
	ur userrepo.Repo
	ir itemrepo.Repo
}

func New(br bookingrepo.Repo, ur userrepo.Repo, ir itemrepo.Repo) Service {
	return &service{br: br, ur: ur, ir: ir}
}

func (s *service) Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*model.Booking, error) {
	if !end.After(start) {
		return nil, apperr.New(apperr.InvalidArgument, "end must be after start")
	}

	if _, err := s.ur.ByID(ctx, bookerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, fmt.Sprintf("user %d not found", bookerID))
		}
		return nil, err
	}

	it, err := s.ir.ByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, fmt.Sprintf("item %d not found", itemID))
		}
		return nil, err
	}

	if !it.Available {
		return nil, apperr.New(apperr.InvalidArgument, "item is not available for booking")
	}
	if it.OwnerID == bookerID {
		return nil, apperr.New(apperr.Forbidden, "owner cannot book their own item")
	}

	b := &model.Booking{
		Start:     start,
		End:       end,
		ItemID:    itemID,
		ItemName:  it.Name,
		ItemOwner: it.OwnerID,
		BookerID:  bookerID,
		Status:    model.BookingWaiting,
	}
	// the repo re-checks availability and overlap under the item row lock
	if err := s.br.Create(ctx, b); err != nil {
		switch {
		case errors.Is(err, bookingrepo.ErrOverlap):
			return nil, apperr.New(apperr.InvalidArgument, "item is already booked for this period")
		case errors.Is(err, bookingrepo.ErrUnavailable):
			return nil, apperr.New(apperr.InvalidArgument, "item is not available for booking")
		}
		return nil, err
	}
	return b, nil
}

func (s *service) UpdateStatus(ctx context.Context, userID, bookingID int64, approved bool) (*model.Booking, error) {
	b, err := s.byID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.ItemOwner != userID {
		return nil, apperr.New(apperr.Forbidden, "only the item owner can change booking status")
	}
	if b.Status != model.BookingWaiting {
		return nil, apperr.New(apperr.InvalidArgument, "booking status is already processed")
	}

	status := model.BookingRejected
	if approved {
		status = model.BookingApproved
	}
	changed, err := s.br.UpdateStatus(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}
	if !changed {
		// decided concurrently between the read above and the update
		return nil, apperr.New(apperr.InvalidArgument, "booking status is already processed")
	}
	b.Status = status
	return b, nil
}

func (s *service) Get(ctx context.Context, userID, bookingID int64) (*model.Booking, error) {
	b, err := s.byID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.BookerID != userID && b.ItemOwner != userID {
		return nil, apperr.New(apperr.Forbidden, "user has no access to this booking")
	}
	return b, nil
}

// ListForBooker reports a missing user as InvalidArgument rather than
// NotFound. Every other missing-user path uses NotFound; this one is kept
// as-is until the contract is settled (see DESIGN.md).
func (s *service) ListForBooker(ctx context.Context, userID int64, state model.BookingState) ([]model.Booking, error) {
	ok, err := s.ur.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.New(apperr.InvalidArgument, fmt.Sprintf("user %d not found", userID))
	}
	return emptyIfNil(s.br.ListByBooker(ctx, userID, state, time.Now().UTC()))
}

func (s *service) ListForOwner(ctx context.Context, userID int64, state model.BookingState) ([]model.Booking, error) {
	ok, err := s.ur.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.New(apperr.NotFound, fmt.Sprintf("user %d not found", userID))
	}
	return emptyIfNil(s.br.ListByOwner(ctx, userID, state, time.Now().UTC()))
}

func (s *service) byID(ctx context.Context, bookingID int64) (*model.Booking, error) {
	b, err := s.br.ByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, fmt.Sprintf("booking %d not found", bookingID))
		}
		return nil, err
	}
	return b, nil
}

func emptyIfNil(bs []model.Booking, err error) ([]model.Booking, error) {
	if err != nil {
		return nil, err
	}
	if bs == nil {
		bs = []model.Booking{}
	}
	return bs, nil
}
