package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestApprove(t *testing.T) {
	f := newFixture()
	seeded := f.seed(span(12, 14), StatusPending, monday)

	res, err := f.svc.Approve(context.Background(), seeded.ID, testOwnerID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, res.Status)

	_, err = f.svc.Approve(context.Background(), seeded.ID, testOwnerID)
	assert.ErrorIs(t, err, ErrInvalidTransition, "approving twice must fail")
	assert.ErrorContains(t, err, string(StatusConfirmed), "error names the current status")
}

func TestApproveByNonOwner(t *testing.T) {
	f := newFixture()
	seeded := f.seed(span(12, 14), StatusPending, monday)

	_, err := f.svc.Approve(context.Background(), seeded.ID, testCustomerID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestApproveAfterAutoConfirmWindow(t *testing.T) {
	f := newFixture()
	seeded := f.seed(span(12, 14), StatusPending, monday)
	f.now = monday.Add(31 * time.Minute)

	_, err := f.svc.Approve(context.Background(), seeded.ID, testOwnerID)
	assert.ErrorIs(t, err, ErrInvalidTransition, "auto-confirm already promoted it")
}

func TestReject(t *testing.T) {
	f := newFixture()
	seeded := f.seed(span(12, 14), StatusPending, monday)

	res, err := f.svc.Reject(context.Background(), seeded.ID, testOwnerID, strptr("double booking"))
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, res.Status)
	assert.Equal(t, "double booking", *res.CancelReason)

	_, err = f.svc.Reject(context.Background(), seeded.ID, testOwnerID, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelComputesRefund(t *testing.T) {
	f := newFixture()
	// Window starts 36 hours out, policy threshold is 24 hours.
	window := span(36, 38)
	seeded := f.seed(window, StatusConfirmed, monday)

	result, err := f.svc.Cancel(context.Background(), seeded.ID, testCustomerID, strptr("band split up"))
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, result.Reservation.Status)
	assert.Equal(t, 80, result.RefundPercentage)
	require.NotNil(t, result.Reservation.CancelledAt)
	assert.Equal(t, "band split up", *result.Reservation.CancelReason)
}

func TestCancelLateForfeitsRefund(t *testing.T) {
	f := newFixture()
	seeded := f.seed(span(12, 14), StatusConfirmed, monday)
	f.now = at(10) // 2 hours before start, threshold is 24

	result, err := f.svc.Cancel(context.Background(), seeded.ID, testCustomerID, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.RefundPercentage)
}

func TestCancelByNonCustomer(t *testing.T) {
	f := newFixture()
	seeded := f.seed(span(12, 14), StatusConfirmed, monday)

	_, err := f.svc.Cancel(context.Background(), seeded.ID, testOwnerID, nil)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancelAfterStart(t *testing.T) {
	f := newFixture()
	seeded := f.seed(span(12, 14), StatusConfirmed, monday)
	f.now = at(13)

	_, err := f.svc.Cancel(context.Background(), seeded.ID, testCustomerID, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorContains(t, err, string(StatusInProgress))
}

func TestCancelAtStartInstant(t *testing.T) {
	f := newFixture()
	seeded := f.seed(span(12, 14), StatusPending, at(12))
	f.now = at(12) // still pending, but the window has begun

	_, err := f.svc.Cancel(context.Background(), seeded.ID, testCustomerID, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorContains(t, err, "already started")
}

func TestCancelCompleted(t *testing.T) {
	f := newFixture()
	seeded := f.seed(span(12, 14), StatusConfirmed, monday)
	f.now = at(15) // past the window end, effectively COMPLETED

	_, err := f.svc.Cancel(context.Background(), seeded.ID, testCustomerID, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAutoConfirmBoundaryOnRead(t *testing.T) {
	f := newFixture()
	seeded := f.seed(span(12, 14), StatusPending, monday)

	f.now = monday.Add(29 * time.Minute)
	res, err := f.svc.GetByID(context.Background(), seeded.ID, testCustomerID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, res.Status, "29 minutes in, still pending")

	f.now = monday.Add(31 * time.Minute)
	res, err = f.svc.GetByID(context.Background(), seeded.ID, testCustomerID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, res.Status, "31 minutes in, auto-confirmed")

	stored, err := f.repo.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, stored.Status, "lazy read persists the promotion")
}

func TestInProgressAndCompletedDerivedOnRead(t *testing.T) {
	f := newFixture()
	seeded := f.seed(span(12, 14), StatusConfirmed, monday)

	f.now = at(12)
	res, err := f.svc.GetByID(context.Background(), seeded.ID, testCustomerID)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, res.Status)

	f.now = at(14)
	res, err = f.svc.GetByID(context.Background(), seeded.ID, testCustomerID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, res.Status)
}

func TestGetByIDAuthorization(t *testing.T) {
	f := newFixture()
	seeded := f.seed(span(12, 14), StatusPending, monday)

	_, err := f.svc.GetByID(context.Background(), seeded.ID, testOwnerID)
	assert.NoError(t, err, "studio owner may read")

	_, err = f.svc.GetByID(context.Background(), seeded.ID, "stranger")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListPendingExcludesAutoConfirmable(t *testing.T) {
	f := newFixture()
	stale := f.seed(span(12, 14), StatusPending, monday)
	fresh := f.seed(span(16, 18), StatusPending, monday.Add(20*time.Minute))
	f.now = monday.Add(35 * time.Minute)

	pending, err := f.svc.ListPendingByRoom(context.Background(), testRoomID, testOwnerID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, fresh.ID, pending[0].ID)
	assert.NotEqual(t, stale.ID, pending[0].ID)

	_, err = f.svc.ListPendingByRoom(context.Background(), testRoomID, testCustomerID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListScopesToCaller(t *testing.T) {
	f := newFixture()
	mine := f.seed(span(10, 12), StatusConfirmed, monday)
	f.repo.put(&Reservation{
		RoomID:     testRoomID,
		CustomerID: "customer-2",
		Window:     span(14, 16),
		Status:     StatusConfirmed,
		CreatedAt:  monday,
	})

	got, total, err := f.svc.List(context.Background(), testCustomerID, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, mine.ID, got[0].ID)
}

func TestListByStudioForOwner(t *testing.T) {
	f := newFixture()
	f.seed(span(10, 12), StatusConfirmed, monday)
	f.repo.put(&Reservation{
		RoomID:     testRoomID,
		CustomerID: "customer-2",
		Window:     span(14, 16),
		Status:     StatusPending,
		CreatedAt:  monday,
	})

	got, total, err := f.svc.List(context.Background(), testOwnerID, Filter{StudioID: testStudioID})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, got, 2, "owner sees every customer's reservations in the studio")
}

func TestListByStudioForbiddenForNonOwner(t *testing.T) {
	f := newFixture()
	f.seed(span(10, 12), StatusConfirmed, monday)

	_, _, err := f.svc.List(context.Background(), testCustomerID, Filter{StudioID: testStudioID})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSweepAppliesTimeDerivedTransitions(t *testing.T) {
	f := newFixture()
	stale := f.seed(span(12, 14), StatusPending, monday)               // auto-confirm due
	running := f.seed(span(0, 2), StatusConfirmed, monday.Add(-time.Hour)) // started
	done := f.seed(span(-4, -2), StatusConfirmed, monday.Add(-6*time.Hour)) // ended

	f.now = monday.Add(time.Hour)
	stats, err := f.svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.AutoConfirmed)
	assert.Equal(t, int64(1), stats.Started)
	assert.Equal(t, int64(1), stats.Completed)

	for id, want := range map[string]Status{
		stale.ID:   StatusConfirmed,
		running.ID: StatusInProgress,
		done.ID:    StatusCompleted,
	} {
		stored, err := f.repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, want, stored.Status)
	}

	again, err := f.svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepStats{}, again, "sweep is idempotent")
}
