package reservation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProposeSuccess(t *testing.T) {
	f := newFixture()

	res, err := f.svc.Propose(context.Background(), ProposeRequest{
		RoomID:     testRoomID,
		CustomerID: testCustomerID,
		Start:      at(12),
		End:        at(14),
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPending, res.Status)
	assert.Equal(t, float64(100), res.TotalPrice)
	assert.Equal(t, span(12, 14), res.Window)
	assert.NotEmpty(t, res.ID)
}

func TestProposeRejectsInvertedWindow(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Propose(context.Background(), ProposeRequest{
		RoomID:     testRoomID,
		CustomerID: testCustomerID,
		Start:      at(14),
		End:        at(12),
	})
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestProposeRejectsPastStart(t *testing.T) {
	f := newFixture()
	f.now = at(13)

	_, err := f.svc.Propose(context.Background(), ProposeRequest{
		RoomID:     testRoomID,
		CustomerID: testCustomerID,
		Start:      at(12),
		End:        at(14),
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestProposeRejectsFractionalHours(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Propose(context.Background(), ProposeRequest{
		RoomID:     testRoomID,
		CustomerID: testCustomerID,
		Start:      at(12),
		End:        at(13).Add(30 * time.Minute),
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestProposeRejectsInactiveRoom(t *testing.T) {
	f := newFixture()
	f.rooms.byID[testRoomID].Active = false

	_, err := f.svc.Propose(context.Background(), ProposeRequest{
		RoomID:     testRoomID,
		CustomerID: testCustomerID,
		Start:      at(12),
		End:        at(14),
	})
	assert.ErrorIs(t, err, ErrRoomInactive)
}

func TestProposeConflictCarriesBusyInterval(t *testing.T) {
	f := newFixture()
	f.seed(span(10, 12), StatusConfirmed, monday)

	_, err := f.svc.Propose(context.Background(), ProposeRequest{
		RoomID:     testRoomID,
		CustomerID: testCustomerID,
		Start:      at(10),
		End:        at(11),
	})
	require.ErrorIs(t, err, ErrSlotConflict)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, span(10, 11), conflict.Conflict)
}

func TestProposeConflictOnClosedPeriod(t *testing.T) {
	f := newFixture()

	// Open hours end at 22:00; the tail of this window is closed.
	_, err := f.svc.Propose(context.Background(), ProposeRequest{
		RoomID:     testRoomID,
		CustomerID: testCustomerID,
		Start:      at(21),
		End:        at(23),
	})
	require.ErrorIs(t, err, ErrSlotConflict)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, span(22, 23), conflict.Conflict)
}

func TestProposeTouchingWindowsDoNotConflict(t *testing.T) {
	f := newFixture()
	f.seed(span(10, 12), StatusConfirmed, monday)

	_, err := f.svc.Propose(context.Background(), ProposeRequest{
		RoomID:     testRoomID,
		CustomerID: testCustomerID,
		Start:      at(12),
		End:        at(13),
	})
	assert.NoError(t, err)
}

func TestProposePendingReservationsOccupyTime(t *testing.T) {
	f := newFixture()
	f.seed(span(10, 12), StatusPending, monday)

	_, err := f.svc.Propose(context.Background(), ProposeRequest{
		RoomID:     testRoomID,
		CustomerID: "someone-else",
		Start:      at(11),
		End:        at(13),
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

// N concurrent proposals for the same window must yield exactly one success
// and N-1 conflicts, and leave the store without overlapping active rows.
func TestProposeConcurrentSingleSuccess(t *testing.T) {
	f := newFixture()

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Propose(context.Background(), ProposeRequest{
				RoomID:     testRoomID,
				CustomerID: testCustomerID,
				Start:      at(12),
				End:        at(14),
			})
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrSlotConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, conflicts)

	active, err := f.repo.ListActiveInWindow(context.Background(), testRoomID, at(0), at(24))
	require.NoError(t, err)
	require.Len(t, active, 1)
}
