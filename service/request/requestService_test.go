package requestsvc_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"shareit/model"
	requestsvc "shareit/service/request"
	"shareit/util/apperr"
)

type requestRepoMock struct {
	createFn            func(ctx context.Context, req *model.ItemRequest) error
	byIDFn              func(ctx context.Context, id int64) (*model.ItemRequest, error)
	byRequestorFn       func(ctx context.Context, requestorID int64) ([]model.ItemRequest, error)
	byOtherRequestorsFn func(ctx context.Context, requestorID int64, limit, offset int) ([]model.ItemRequest, error)
}

func (m *requestRepoMock) Create(ctx context.Context, req *model.ItemRequest) error {
	return m.createFn(ctx, req)
}
func (m *requestRepoMock) ByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	return m.byIDFn(ctx, id)
}
func (m *requestRepoMock) ByRequestor(ctx context.Context, requestorID int64) ([]model.ItemRequest, error) {
	return m.byRequestorFn(ctx, requestorID)
}
func (m *requestRepoMock) ByOtherRequestors(ctx context.Context, requestorID int64, limit, offset int) ([]model.ItemRequest, error) {
	return m.byOtherRequestorsFn(ctx, requestorID, limit, offset)
}

type userRepoMock struct {
	existsFn func(ctx context.Context, id int64) (bool, error)
}

func (m *userRepoMock) Create(ctx context.Context, u *model.User) error         { panic("unexpected") }
func (m *userRepoMock) Update(ctx context.Context, u *model.User) error         { panic("unexpected") }
func (m *userRepoMock) ByID(ctx context.Context, id int64) (*model.User, error) { panic("unexpected") }
func (m *userRepoMock) Delete(ctx context.Context, id int64) (bool, error)      { panic("unexpected") }
func (m *userRepoMock) All(ctx context.Context) ([]model.User, error)           { panic("unexpected") }
func (m *userRepoMock) Exists(ctx context.Context, id int64) (bool, error) {
	return m.existsFn(ctx, id)
}

type itemRepoMock struct {
	byRequestIDsFn func(ctx context.Context, ids []int64) ([]model.Item, error)
}

func (m *itemRepoMock) Create(ctx context.Context, it *model.Item) error        { panic("unexpected") }
func (m *itemRepoMock) Update(ctx context.Context, it *model.Item) error        { panic("unexpected") }
func (m *itemRepoMock) ByID(ctx context.Context, id int64) (*model.Item, error) { panic("unexpected") }
func (m *itemRepoMock) ByOwner(ctx context.Context, ownerID int64) ([]model.Item, error) {
	panic("unexpected")
}
func (m *itemRepoMock) Search(ctx context.Context, text string) ([]model.Item, error) {
	panic("unexpected")
}
func (m *itemRepoMock) ByRequestIDs(ctx context.Context, ids []int64) ([]model.Item, error) {
	return m.byRequestIDsFn(ctx, ids)
}

func allUsersExist() *userRepoMock {
	return &userRepoMock{existsFn: func(ctx context.Context, id int64) (bool, error) { return true, nil }}
}

func noUsersExist() *userRepoMock {
	return &userRepoMock{existsFn: func(ctx context.Context, id int64) (bool, error) { return false, nil }}
}

func ridPtr(v int64) *int64 { return &v }

func TestCreate(t *testing.T) {
	ctx := context.Background()
	rr := &requestRepoMock{
		createFn: func(ctx context.Context, req *model.ItemRequest) error {
			req.ID = 11
			return nil
		},
	}
	svc := requestsvc.New(rr, allUsersExist(), &itemRepoMock{})

	req, err := svc.Create(ctx, 2, "need a drill")
	require.NoError(t, err)
	require.Equal(t, int64(11), req.ID)
	require.Equal(t, int64(2), req.RequestorID)
	require.False(t, req.Created.IsZero())
	require.NotNil(t, req.Items)
	require.Empty(t, req.Items)
}

func TestCreate_MissingUser(t *testing.T) {
	ctx := context.Background()
	svc := requestsvc.New(&requestRepoMock{}, noUsersExist(), &itemRepoMock{})

	_, err := svc.Create(ctx, 404, "need a drill")
	require.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestForUser_Enrichment(t *testing.T) {
	ctx := context.Background()
	created := time.Now().UTC()
	rr := &requestRepoMock{
		byRequestorFn: func(ctx context.Context, requestorID int64) ([]model.ItemRequest, error) {
			return []model.ItemRequest{
				{ID: 2, Description: "newer", RequestorID: requestorID, Created: created},
				{ID: 1, Description: "older", RequestorID: requestorID, Created: created.Add(-time.Hour)},
			}, nil
		},
	}
	ir := &itemRepoMock{
		byRequestIDsFn: func(ctx context.Context, ids []int64) ([]model.Item, error) {
			require.ElementsMatch(t, []int64{1, 2}, ids)
			return []model.Item{
				{ID: 7, Name: "drill", OwnerID: 10, RequestID: ridPtr(1)},
				{ID: 8, Name: "hammer", OwnerID: 11, RequestID: ridPtr(1)},
			}, nil
		},
	}
	svc := requestsvc.New(rr, allUsersExist(), ir)

	out, err := svc.ForUser(ctx, 2)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Empty(t, out[0].Items) // request 2 has no offers
	require.Len(t, out[1].Items, 2)
	require.Equal(t, "drill", out[1].Items[0].Name)
	require.Equal(t, int64(10), out[1].Items[0].OwnerID)
}

func TestOthers_Paging(t *testing.T) {
	ctx := context.Background()
	var gotLimit, gotOffset int
	rr := &requestRepoMock{
		byOtherRequestorsFn: func(ctx context.Context, requestorID int64, limit, offset int) ([]model.ItemRequest, error) {
			gotLimit, gotOffset = limit, offset
			return nil, nil
		},
	}
	svc := requestsvc.New(rr, allUsersExist(), &itemRepoMock{})

	// zero-based page: from=7 size=3 lands on page 2 -> offset 6
	out, err := svc.Others(ctx, 2, 7, 3)
	require.NoError(t, err)
	require.Empty(t, out)
	require.Equal(t, 3, gotLimit)
	require.Equal(t, 6, gotOffset)

	_, err = svc.Others(ctx, 2, -1, 3)
	require.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))
}

func TestGet_MissingRequest(t *testing.T) {
	ctx := context.Background()
	rr := &requestRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.ItemRequest, error) {
			return nil, pgx.ErrNoRows
		},
	}
	svc := requestsvc.New(rr, allUsersExist(), &itemRepoMock{})

	_, err := svc.Get(ctx, 2, 404)
	require.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestGet_Enriched(t *testing.T) {
	ctx := context.Background()
	rr := &requestRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.ItemRequest, error) {
			return &model.ItemRequest{ID: id, Description: "need a saw", RequestorID: 5}, nil
		},
	}
	ir := &itemRepoMock{
		byRequestIDsFn: func(ctx context.Context, ids []int64) ([]model.Item, error) {
			return []model.Item{{ID: 3, Name: "saw", OwnerID: 9, RequestID: ridPtr(1)}}, nil
		},
	}
	svc := requestsvc.New(rr, allUsersExist(), ir)

	req, err := svc.Get(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, req.Items, 1)
	require.Equal(t, "saw", req.Items[0].Name)
}
