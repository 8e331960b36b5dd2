package booking

import (
	"time"

	"shareit/model"
)

type CreateBookingReq struct {
	ItemID int64     `json:"itemId" validate:"required,gt=0"`
	Start  time.Time `json:"start" validate:"required"`
	End    time.Time `json:"end" validate:"required"`
}

type BookingResp struct {
	ID     int64               `json:"id"`
	Start  time.Time           `json:"start"`
	End    time.Time           `json:"end"`
	Status model.BookingStatus `json:"status"`
	Booker UserRef             `json:"booker"`
	Item   ItemRef             `json:"item"`
}

type UserRef struct {
	ID int64 `json:"id"`
}

type ItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toResp(b *model.Booking) BookingResp {
	return BookingResp{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status,
		Booker: UserRef{ID: b.BookerID},
		Item:   ItemRef{ID: b.ItemID, Name: b.ItemName},
	}
}

func toResps(bs []model.Booking) []BookingResp {
	out := make([]BookingResp, 0, len(bs))
	for i := range bs {
		out = append(out, toResp(&bs[i]))
	}
	return out
}
