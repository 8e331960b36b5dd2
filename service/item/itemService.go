package itemsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"shareit/model"
	bookingrepo "shareit/repository/booking"
	commentrepo "shareit/repository/comment"
	itemrepo "shareit/repository/item"
	userrepo "shareit/repository/user"
	"shareit/util/apperr"
)

type CreateReq struct {
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

// Patch applies only provided, non-blank fields; owner is immutable.
type Patch struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, ownerID int64, req CreateReq) (*model.Item, error)
	Update(ctx context.Context, userID, itemID int64, p Patch) (*model.Item, error)
	Get(ctx context.Context, userID, itemID int64) (*model.ItemWithBookings, error)
	ByOwner(ctx context.Context, ownerID int64) ([]model.ItemWithBookings, error)
	Search(ctx context.Context, text string) ([]model.Item, error)
}

type service struct {
	ir itemrepo.Repo
	ur userrepo.Repo
	br bookingrepo.Repo
	cr commentrepo.Repo
}

func New(ir itemrepo.Repo, ur userrepo.Repo, br bookingrepo.Repo, cr commentrepo.Repo) Service {
	return &service{ir: ir, ur: ur, br: br, cr: cr}
}

func (s *service) Create(ctx context.Context, ownerID int64, req CreateReq) (*model.Item, error) {
	ok, err := s.ur.Exists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.New(apperr.NotFound, fmt.Sprintf("user %d not found", ownerID))
	}

	it := &model.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}
	if err := s.ir.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, userID, itemID int64, p Patch) (*model.Item, error) {
	it, err := s.ir.ByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, fmt.Sprintf("item %d not found", itemID))
		}
		return nil, err
	}

	// ownership is checked before any field is applied
	if it.OwnerID != userID {
		return nil, apperr.New(apperr.Forbidden, "user is not the owner of the item")
	}

	if p.Name != nil && strings.TrimSpace(*p.Name) != "" {
		it.Name = *p.Name
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) != "" {
		it.Description = *p.Description
	}
	if p.Available != nil {
		it.Available = *p.Available
	}

	if err := s.ir.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Get(ctx context.Context, userID, itemID int64) (*model.ItemWithBookings, error) {
	it, err := s.ir.ByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, fmt.Sprintf("item %d not found", itemID))
		}
		return nil, err
	}

	comments, err := s.cr.ByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	out := &model.ItemWithBookings{Item: *it, Comments: emptyIfNil(comments)}

	// last/next are owner-only
	if it.OwnerID == userID {
		bookings, err := s.br.ListByItems(ctx, []int64{itemID})
		if err != nil {
			return nil, err
		}
		out.LastBooking, out.NextBooking = bookingWindows(bookings, time.Now().UTC())
	}
	return out, nil
}

func (s *service) ByOwner(ctx context.Context, ownerID int64) ([]model.ItemWithBookings, error) {
	items, err := s.ir.ByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []model.ItemWithBookings{}, nil
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}

	bookings, err := s.br.ListByItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	bookingsByItem := map[int64][]model.Booking{}
	for _, b := range bookings {
		bookingsByItem[b.ItemID] = append(bookingsByItem[b.ItemID], b)
	}

	comments, err := s.cr.ByItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	commentsByItem := map[int64][]model.Comment{}
	for _, c := range comments {
		commentsByItem[c.ItemID] = append(commentsByItem[c.ItemID], c)
	}

	now := time.Now().UTC()
	out := make([]model.ItemWithBookings, 0, len(items))
	for _, it := range items {
		last, next := bookingWindows(bookingsByItem[it.ID], now)
		out = append(out, model.ItemWithBookings{
			Item:        it,
			LastBooking: last,
			NextBooking: next,
			Comments:    emptyIfNil(commentsByItem[it.ID]),
		})
	}
	return out, nil
}

func (s *service) Search(ctx context.Context, text string) ([]model.Item, error) {
	// blank text is a non-error default: empty result, no store round trip
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}
	items, err := s.ir.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// bookingWindows derives the last and next booking from bookings sorted
// descending by start, skipping rejected ones. Last is the most recent
// with start <= now; next has the smallest start still in the future.
func bookingWindows(bookings []model.Booking, now time.Time) (last, next *model.BookingShort) {
	for i := range bookings {
		b := bookings[i]
		if b.Status == model.BookingRejected {
			continue
		}
		if !b.Start.After(now) {
			if last == nil {
				last = short(b)
			}
		} else {
			// descending order: each later element starts earlier,
			// so the final one seen is the soonest upcoming booking
			next = short(b)
		}
	}
	return last, next
}

func short(b model.Booking) *model.BookingShort {
	return &model.BookingShort{ID: b.ID, BookerID: b.BookerID, Start: b.Start, End: b.End}
}

func emptyIfNil(cs []model.Comment) []model.Comment {
	if cs == nil {
		return []model.Comment{}
	}
	return cs
}
