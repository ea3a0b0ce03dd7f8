package usecase_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// memStore is an in-memory stand-in for Postgres. Within runs one
// transaction at a time and restores a snapshot when fn fails, which gives
// the same all-or-nothing behaviour the row locks give in production.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	showtimes map[uuid.UUID]entity.Showtime
	seats     map[uuid.UUID]entity.Seat
	locks     map[uuid.UUID]entity.SeatLock
	sessions  map[uuid.UUID]entity.BookingSession
	orders    map[uuid.UUID]entity.Order

	faults map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		showtimes: make(map[uuid.UUID]entity.Showtime),
		seats:     make(map[uuid.UUID]entity.Seat),
		locks:     make(map[uuid.UUID]entity.SeatLock),
		sessions:  make(map[uuid.UUID]entity.BookingSession),
		orders:    make(map[uuid.UUID]entity.Order),
		faults:    make(map[string]error),
	}
}

func (s *memStore) repository() *repository.Repository {
	return &repository.Repository{
		Seat:     memSeats{s},
		SeatLock: memSeatLocks{s},
		Session:  memSessions{s},
		Order:    memOrders{s},
		Showtime: memShowtimes{s},
		UoW:      memUoW{s},
	}
}

// failOn makes the named operation return err until cleared with nil.
func (s *memStore) failOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.faults, op)
		return
	}
	s.faults[op] = err
}

type memSnapshot struct {
	seats    map[uuid.UUID]entity.Seat
	locks    map[uuid.UUID]entity.SeatLock
	sessions map[uuid.UUID]entity.BookingSession
	orders   map[uuid.UUID]entity.Order
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memSnapshot{
		seats:    cloneMap(s.seats),
		locks:    cloneMap(s.locks),
		sessions: cloneMap(s.sessions),
		orders:   cloneMap(s.orders),
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seats = snap.seats
	s.locks = snap.locks
	s.sessions = snap.sessions
	s.orders = snap.orders
}

// --- fixtures ---

func (s *memStore) addShowtime(now time.Time) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.showtimes[id] = entity.Showtime{
		Base:     entity.Base{ID: id, CreatedAt: now, UpdatedAt: now},
		Title:    "Late Show",
		StartsAt: now.Add(48 * time.Hour),
	}
	return id
}

// addRow creates seats row1..rowN, all AVAILABLE, and returns their ids in
// seat-number order.
func (s *memStore) addRow(showtimeID uuid.UUID, row string, n int, now time.Time) []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uuid.UUID, n)
	for i := 0; i < n; i++ {
		id := uuid.New()
		s.seats[id] = entity.Seat{
			Base:       entity.Base{ID: id, CreatedAt: now, UpdatedAt: now},
			ShowtimeID: showtimeID,
			RowLabel:   row,
			SeatNumber: i + 1,
			Status:     entity.SeatStatusAvailable,
		}
		ids[i] = id
	}
	return ids
}

func (s *memStore) addSession(state entity.BookingSessionState, now time.Time) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.sessions[id] = entity.BookingSession{
		Base:  entity.Base{ID: id, CreatedAt: now, UpdatedAt: now},
		State: state,
	}
	return id
}

func (s *memStore) setSeatStatus(id uuid.UUID, status entity.SeatStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seat := s.seats[id]
	seat.Status = status
	s.seats[id] = seat
}

// putLock writes a LOCKED seat and its lock directly, bypassing the service.
func (s *memStore) putLock(seatID, sessionID uuid.UUID, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seat := s.seats[seatID]
	seat.Status = entity.SeatStatusLocked
	s.seats[seatID] = seat
	s.locks[seatID] = entity.SeatLock{SeatID: seatID, LockedBySession: sessionID, ExpiresAt: expiresAt, CreatedAt: expiresAt}
}

func (s *memStore) seat(id uuid.UUID) entity.Seat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seats[id]
}

func (s *memStore) lock(seatID uuid.UUID) (entity.SeatLock, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[seatID]
	return l, ok
}

func (s *memStore) lockCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}

func (s *memStore) session(id uuid.UUID) entity.BookingSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

func (s *memStore) order(id uuid.UUID) entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id]
}

// --- unit of work ---

type memUoW struct{ s *memStore }

func (u memUoW) Within(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	u.s.txMu.Lock()
	defer u.s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snap := u.s.snapshot()
	if err := fn(ctx, memTx{u.s}); err != nil {
		u.s.restore(snap)
		return err
	}
	if err := ctx.Err(); err != nil {
		u.s.restore(snap)
		return err
	}
	return nil
}

type memTx struct{ s *memStore }

func (t memTx) Seats() repository.SeatRepository { return memSeats{t.s} }
func (t memTx) SeatLocks() repository.SeatLockRepository { return memSeatLocks{t.s} }
func (t memTx) Sessions() repository.BookingSessionRepository { return memSessions{t.s} }
func (t memTx) Orders() repository.OrderRepository { return memOrders{t.s} }

// --- seats ---

type memSeats struct{ s *memStore }

func (r memSeats) Create(_ context.Context, seat *entity.Seat) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.seats[seat.ID] = *seat
	return nil
}

func (r memSeats) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	for _, seat := range seats {
		if err := r.Create(ctx, seat); err != nil {
			return err
		}
	}
	return nil
}

func (r memSeats) FindByShowtime(_ context.Context, showtimeID uuid.UUID) ([]*entity.Seat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Seat
	for _, seat := range r.s.seats {
		if seat.ShowtimeID == showtimeID {
			out = append(out, &seat)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RowLabel != out[j].RowLabel {
			return out[i].RowLabel < out[j].RowLabel
		}
		return out[i].SeatNumber < out[j].SeatNumber
	})
	return out, nil
}

func (r memSeats) FindByIDsForUpdate(_ context.Context, ids []uuid.UUID) ([]*entity.Seat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.faults["Seats.FindByIDsForUpdate"]; err != nil {
		return nil, err
	}
	var out []*entity.Seat
	for _, id := range ids {
		if seat, ok := r.s.seats[id]; ok {
			out = append(out, &seat)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (r memSeats) UpdateStatus(_ context.Context, ids []uuid.UUID, from, to entity.SeatStatus, updatedAt time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.faults["Seats.UpdateStatus"]; err != nil {
		return 0, err
	}
	var n int64
	for _, id := range ids {
		seat, ok := r.s.seats[id]
		if !ok || seat.Status != from {
			continue
		}
		seat.Status = to
		seat.UpdatedAt = updatedAt
		r.s.seats[id] = seat
		n++
	}
	return n, nil
}

// --- seat locks ---

type memSeatLocks struct{ s *memStore }

func (r memSeatLocks) CreateBatch(_ context.Context, locks []*entity.SeatLock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.faults["SeatLocks.CreateBatch"]; err != nil {
		return err
	}
	for _, l := range locks {
		if _, exists := r.s.locks[l.SeatID]; exists {
			return errors.Mark(errors.Newf("duplicate lock for seat %s", l.SeatID), repository.ErrSeatAlreadyLocked)
		}
	}
	for _, l := range locks {
		r.s.locks[l.SeatID] = *l
	}
	return nil
}

func (r memSeatLocks) FindBySeatIDs(_ context.Context, seatIDs []uuid.UUID) ([]*entity.SeatLock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SeatLock
	for _, id := range seatIDs {
		if l, ok := r.s.locks[id]; ok {
			out = append(out, &l)
		}
	}
	return out, nil
}

func (r memSeatLocks) FindBySession(_ context.Context, sessionID uuid.UUID) ([]*entity.SeatLock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SeatLock
	for _, l := range r.s.locks {
		if l.LockedBySession == sessionID {
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SeatID.String() < out[j].SeatID.String() })
	return out, nil
}

func (r memSeatLocks) CountBySession(ctx context.Context, sessionID uuid.UUID) (int, error) {
	locks, err := r.FindBySession(ctx, sessionID)
	return len(locks), err
}

func (r memSeatLocks) Extend(_ context.Context, sessionID uuid.UUID, seatIDs []uuid.UUID, expiresAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range seatIDs {
		if l, ok := r.s.locks[id]; ok && l.LockedBySession == sessionID {
			l.ExpiresAt = expiresAt
			r.s.locks[id] = l
		}
	}
	return nil
}

func (r memSeatLocks) DeleteBySeats(_ context.Context, sessionID uuid.UUID, seatIDs []uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var deleted []uuid.UUID
	for _, id := range seatIDs {
		if l, ok := r.s.locks[id]; ok && l.LockedBySession == sessionID {
			delete(r.s.locks, id)
			deleted = append(deleted, id)
		}
	}
	return deleted, nil
}

func (r memSeatLocks) DeleteBySession(_ context.Context, sessionID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var deleted []uuid.UUID
	for id, l := range r.s.locks {
		if l.LockedBySession == sessionID {
			delete(r.s.locks, id)
			deleted = append(deleted, id)
		}
	}
	return deleted, nil
}

func (r memSeatLocks) FindExpired(_ context.Context, now time.Time, limit int) ([]*entity.SeatLock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SeatLock
	for _, l := range r.s.locks {
		if now.Before(l.ExpiresAt) || r.s.sessions[l.LockedBySession].State != entity.BookingSessionDraft {
			continue
		}
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiresAt.Before(out[j].ExpiresAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- booking sessions ---

type memSessions struct{ s *memStore }

func (r memSessions) Create(_ context.Context, session *entity.BookingSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sessions[session.ID] = *session
	return nil
}

func (r memSessions) FindByID(_ context.Context, id uuid.UUID) (*entity.BookingSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	session, ok := r.s.sessions[id]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (r memSessions) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.BookingSession, error) {
	return r.FindByID(ctx, id)
}

func (r memSessions) UpdateState(_ context.Context, id uuid.UUID, state entity.BookingSessionState, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	session, ok := r.s.sessions[id]
	if !ok {
		return errors.Newf("booking session %s not found", id)
	}
	session.State = state
	session.UpdatedAt = updatedAt
	r.s.sessions[id] = session
	return nil
}

// --- orders ---

type memOrders struct{ s *memStore }

func (r memOrders) Create(_ context.Context, order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		if o.BookingSessionID == order.BookingSessionID && o.Status == entity.OrderStatusPending {
			return errors.Mark(errors.New("duplicate pending order"), repository.ErrPendingOrderExists)
		}
	}
	r.s.orders[order.ID] = *order
	return nil
}

func (r memOrders) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	order, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

func (r memOrders) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.FindByID(ctx, id)
}

func (r memOrders) UpdateStatus(_ context.Context, id uuid.UUID, status entity.OrderStatus, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	order, ok := r.s.orders[id]
	if !ok {
		return errors.Newf("order %s not found", id)
	}
	order.Status = status
	order.UpdatedAt = updatedAt
	r.s.orders[id] = order
	return nil
}

func (r memOrders) FindStalePending(_ context.Context, createdBefore time.Time, limit int) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var stale []entity.Order
	for _, o := range r.s.orders {
		if o.Status == entity.OrderStatusPending && !o.CreatedAt.After(createdBefore) {
			stale = append(stale, o)
		}
	}
	sort.Slice(stale, func(i, j int) bool { return stale[i].CreatedAt.Before(stale[j].CreatedAt) })
	if len(stale) > limit {
		stale = stale[:limit]
	}
	ids := make([]uuid.UUID, len(stale))
	for i, o := range stale {
		ids[i] = o.ID
	}
	return ids, nil
}

// --- showtimes ---

type memShowtimes struct{ s *memStore }

func (r memShowtimes) Create(_ context.Context, showtime *entity.Showtime) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.showtimes[showtime.ID] = *showtime
	return nil
}

func (r memShowtimes) FindByID(_ context.Context, id uuid.UUID) (*entity.Showtime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	showtime, ok := r.s.showtimes[id]
	if !ok {
		return nil, nil
	}
	return &showtime, nil
}
