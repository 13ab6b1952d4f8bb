package reservation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/slapp/studio-booking-backend/internal/availability"
	"github.com/slapp/studio-booking-backend/internal/interval"
	"github.com/slapp/studio-booking-backend/internal/pkg/lock"
	"github.com/slapp/studio-booking-backend/internal/policy"
	"github.com/slapp/studio-booking-backend/internal/room"
	"github.com/slapp/studio-booking-backend/internal/studio"
)

// monday is a fixed reference Monday, midnight UTC.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(h int) time.Time {
	return monday.Add(time.Duration(h) * time.Hour)
}

func span(from, to int) interval.Interval {
	return interval.Interval{Start: at(from), End: at(to)}
}

const (
	testRoomID     = "room-1"
	testStudioID   = "studio-1"
	testOwnerID    = "owner-1"
	testCustomerID = "customer-1"
	testPolicyID   = "policy-1"
)

// memRepo is an in-memory Repository. It deliberately does NOT check for
// overlaps on Create: the service's serialized check-then-insert is what
// keeps the store consistent, and the tests verify exactly that.
type memRepo struct {
	mu   sync.Mutex
	seq  int
	byID map[string]*Reservation
}

func newMemRepo() *memRepo {
	return &memRepo{byID: make(map[string]*Reservation)}
}

func (m *memRepo) put(res *Reservation) *Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()
	if res.ID == "" {
		m.seq++
		res.ID = fmt.Sprintf("res-%d", m.seq)
	}
	m.byID[res.ID] = res
	return res
}

func (m *memRepo) Create(ctx context.Context, res *Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	res.ID = fmt.Sprintf("res-%d", m.seq)
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now()
	}
	res.UpdatedAt = res.CreatedAt
	stored := *res
	m.byID[res.ID] = &stored
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id string) (*Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copy := *res
	return &copy, nil
}

func (m *memRepo) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Reservation
	for _, res := range m.byID {
		if filter.CustomerID != "" && res.CustomerID != filter.CustomerID {
			continue
		}
		if filter.RoomID != "" && res.RoomID != filter.RoomID {
			continue
		}
		// All test rooms belong to the single test studio.
		if filter.StudioID != "" && (filter.StudioID != testStudioID || res.RoomID != testRoomID) {
			continue
		}
		if filter.Status != "" && res.Status != filter.Status {
			continue
		}
		copy := *res
		out = append(out, &copy)
	}
	return out, len(out), nil
}

func (m *memRepo) ListActiveInWindow(ctx context.Context, roomID string, start, end time.Time) ([]*Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	window := interval.Interval{Start: start, End: end}
	var out []*Reservation
	for _, res := range m.byID {
		if res.RoomID == roomID && res.Status.Active() && res.Window.Overlaps(window) {
			copy := *res
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (m *memRepo) ListPendingByRoom(ctx context.Context, roomID string, createdAfter time.Time) ([]*Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Reservation
	for _, res := range m.byID {
		if res.RoomID == roomID && res.Status == StatusPending && res.CreatedAt.After(createdAfter) {
			copy := *res
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (m *memRepo) ListPendingByStudio(ctx context.Context, studioID string, createdAfter time.Time) ([]*Reservation, error) {
	// All test rooms belong to the single test studio.
	return m.ListPendingByRoom(ctx, testRoomID, createdAfter)
}

func (m *memRepo) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.byID[id]
	if !ok || res.Status != from {
		return ErrInvalidTransition
	}
	res.Status = to
	return nil
}

func (m *memRepo) Finalize(ctx context.Context, id string, from []Status, to Status, reason *string, cancelledAt *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.byID[id]
	if !ok {
		return ErrInvalidTransition
	}
	matched := false
	for _, f := range from {
		if res.Status == f {
			matched = true
		}
	}
	if !matched {
		return ErrInvalidTransition
	}
	res.Status = to
	res.CancelReason = reason
	res.CancelledAt = cancelledAt
	return nil
}

func (m *memRepo) Sweep(ctx context.Context, now time.Time) (SweepStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var stats SweepStats
	for _, res := range m.byID {
		if res.Status == StatusPending && !res.CreatedAt.After(now.Add(-AutoConfirmAfter)) {
			res.Status = StatusConfirmed
			stats.AutoConfirmed++
		}
	}
	for _, res := range m.byID {
		if (res.Status == StatusConfirmed || res.Status == StatusInProgress) && !res.Window.End.After(now) {
			res.Status = StatusCompleted
			stats.Completed++
		}
	}
	for _, res := range m.byID {
		if res.Status == StatusConfirmed && !res.Window.Start.After(now) && res.Window.End.After(now) {
			res.Status = StatusInProgress
			stats.Started++
		}
	}
	return stats, nil
}

type fakeRooms struct {
	room.Service
	byID map[string]*room.Room
}

func (f *fakeRooms) GetByID(ctx context.Context, id string) (*room.Room, error) {
	rm, ok := f.byID[id]
	if !ok {
		return nil, room.ErrNotFound
	}
	return rm, nil
}

type fakeStudios struct {
	studio.Service
	byID map[string]*studio.Studio
}

func (f *fakeStudios) GetByID(ctx context.Context, id string) (*studio.Studio, error) {
	st, ok := f.byID[id]
	if !ok {
		return nil, studio.ErrNotFound
	}
	return st, nil
}

type fakePolicies struct {
	policy.Service
	byID map[string]*policy.CancellationPolicy
}

func (f *fakePolicies) GetByID(ctx context.Context, id string) (*policy.CancellationPolicy, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, policy.ErrNotFound
	}
	return p, nil
}

// fakeLedger reports fixed open intervals, clamped to the query window.
type fakeLedger struct {
	open []interval.Interval
}

var _ availability.Ledger = (*fakeLedger)(nil)

func (f *fakeLedger) IsOpenAt(ctx context.Context, roomID string, instant time.Time) (bool, error) {
	for _, iv := range f.open {
		if iv.Contains(instant) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLedger) OpenIntervalsWithin(ctx context.Context, roomID string, window interval.Interval) ([]interval.Interval, error) {
	var out []interval.Interval
	for _, iv := range f.open {
		if clamped, ok := iv.Clamp(window); ok {
			out = append(out, clamped)
		}
	}
	return out, nil
}

type fixture struct {
	svc    *service
	repo   *memRepo
	rooms  *fakeRooms
	ledger *fakeLedger
	now    time.Time
}

// newFixture wires a service around in-memory collaborators: one studio with
// a 24-hours-before / 80% cancellation policy, and one active room open
// Monday 08:00 to 22:00 at 50 per hour. The clock starts at Monday midnight.
func newFixture() *fixture {
	f := &fixture{
		repo: newMemRepo(),
		rooms: &fakeRooms{byID: map[string]*room.Room{
			testRoomID: {
				ID:         testRoomID,
				StudioID:   testStudioID,
				Name:       "Live Room A",
				HourlyRate: 50,
				RoomType:   room.TypeRecording,
				Active:     true,
			},
		}},
		ledger: &fakeLedger{open: []interval.Interval{span(8, 22)}},
		now:    monday,
	}

	policyID := testPolicyID
	studios := &fakeStudios{byID: map[string]*studio.Studio{
		testStudioID: {
			ID:                   testStudioID,
			OwnerID:              testOwnerID,
			CancellationPolicyID: &policyID,
			Name:                 "Slapp Studio",
			Active:               true,
		},
	}}
	policies := &fakePolicies{byID: map[string]*policy.CancellationPolicy{
		testPolicyID: {
			ID:               testPolicyID,
			Name:             "standard",
			HoursBeforeEvent: 24,
			RefundPercentage: 80,
			Active:           true,
		},
	}}

	f.svc = NewService(f.repo, f.rooms, studios, policies, f.ledger, lock.NewKeyedMutex()).(*service)
	f.svc.now = func() time.Time { return f.now }
	return f
}

// seed stores a reservation directly, bypassing the guard.
func (f *fixture) seed(window interval.Interval, status Status, createdAt time.Time) *Reservation {
	return f.repo.put(&Reservation{
		RoomID:     testRoomID,
		CustomerID: testCustomerID,
		Window:     window,
		TotalPrice: 50 * window.Duration().Hours(),
		Status:     status,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	})
}
