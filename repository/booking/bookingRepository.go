package bookingrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"shareit/model"
	"shareit/util/database"
)

// guard errors surfaced by Create when the transactional re-check fails
var (
	ErrOverlap     = errors.New("item is already booked for this period")
	ErrUnavailable = errors.New("item is not available")
)

type Repo interface {
	// Create inserts the booking after re-checking availability and
	// overlap under a lock on the item row, in one transaction.
	Create(ctx context.Context, b *model.Booking) error
	ByID(ctx context.Context, id int64) (*model.Booking, error)
	// UpdateStatus flips a WAITING booking; reports whether a row changed.
	UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) (bool, error)
	ListByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time) ([]model.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time) ([]model.Booking, error)
	ListByItems(ctx context.Context, itemIDs []int64) ([]model.Booking, error)
	ExistsCompleted(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const bookingCols = `
		b.id, b.start_date, b.end_date, b.item_id, i.name, i.owner_id, b.booker_id, b.status
	FROM bookings b
	JOIN items i ON i.id = b.item_id`

func (r *repo) Create(ctx context.Context, b *model.Booking) (err error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Lock the item row so concurrent bookings of the same item serialize
	// on the overlap check.
	var available bool
	err = tx.QueryRow(ctx, `
		SELECT available
		FROM items
		WHERE id = $1
		FOR UPDATE`,
		b.ItemID,
	).Scan(&available)
	if err != nil {
		return err
	}
	if !available {
		return ErrUnavailable
	}

	// Half-open interval overlap: touching endpoints do not collide.
	var overlaps bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1
			FROM bookings
			WHERE item_id = $1
			AND status NOT IN ('REJECTED','CANCELED')
			AND start_date < $3
			AND end_date > $2)`,
		b.ItemID, b.Start, b.End,
	).Scan(&overlaps)
	if err != nil {
		return err
	}
	if overlaps {
		return ErrOverlap
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO bookings(start_date, end_date, item_id, booker_id, status)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id`,
		b.Start, b.End, b.ItemID, b.BookerID, b.Status,
	).Scan(&b.ID)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Booking, error) {
	b := &model.Booking{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT`+bookingCols+`
		WHERE b.id = $1`,
		id,
	).Scan(&b.ID, &b.Start, &b.End, &b.ItemID, &b.ItemName, &b.ItemOwner, &b.BookerID, &b.Status)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE bookings
		SET status = $2
		WHERE id = $1
		AND status = 'WAITING'`,
		id, status)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// stateFilter keeps each listing state next to its SQL predicate so the
// set stays co-located and exhaustive.
type stateFilter struct {
	clause  string // references $2 when withNow
	withNow bool
}

var stateFilters = map[model.BookingState]stateFilter{
	model.StateAll:      {},
	model.StateCurrent:  {clause: " AND b.start_date < $2 AND b.end_date > $2", withNow: true},
	model.StatePast:     {clause: " AND b.end_date < $2", withNow: true},
	model.StateFuture:   {clause: " AND b.start_date > $2", withNow: true},
	model.StateWaiting:  {clause: " AND b.status = 'WAITING'"},
	model.StateRejected: {clause: " AND b.status = 'REJECTED'"},
}

func (r *repo) listFiltered(ctx context.Context, base string, userID int64, state model.BookingState, now time.Time) ([]model.Booking, error) {
	f, ok := stateFilters[state]
	if !ok {
		return nil, errors.New("unknown booking state: " + string(state))
	}
	q := base + f.clause + " ORDER BY b.start_date DESC"
	args := []any{userID}
	if f.withNow {
		args = append(args, now)
	}
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *repo) ListByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time) ([]model.Booking, error) {
	const base = `
		SELECT` + bookingCols + `
		WHERE b.booker_id = $1`
	return r.listFiltered(ctx, base, bookerID, state, now)
}

func (r *repo) ListByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time) ([]model.Booking, error) {
	const base = `
		SELECT` + bookingCols + `
		WHERE i.owner_id = $1`
	return r.listFiltered(ctx, base, ownerID, state, now)
}

func (r *repo) ListByItems(ctx context.Context, itemIDs []int64) ([]model.Booking, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT`+bookingCols+`
		WHERE b.item_id = ANY($1)
		ORDER BY b.start_date DESC`,
		itemIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *repo) ExistsCompleted(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	var ok bool
	err := r.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1
			FROM bookings
			WHERE booker_id = $1
			AND item_id = $2
			AND status = 'APPROVED'
			AND end_date < $3)`,
		bookerID, itemID, now,
	).Scan(&ok)
	return ok, err
}

func scanBookings(rows pgx.Rows) ([]model.Booking, error) {
	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.Start, &b.End, &b.ItemID, &b.ItemName, &b.ItemOwner, &b.BookerID, &b.Status); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
