package usecase

import (
	"context"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/pkg/apperr"
	"cinema-reservation/pkg/clock"
	"cinema-reservation/pkg/events"
	"cinema-reservation/pkg/utils"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SeatLockService interface {
	// Lock claims every requested seat for the session or none of them.
	// Seats the session already holds have their expiry refreshed.
	Lock(ctx context.Context, sessionID string, req *request.SeatSelectionRequest) (*response.LockSeatsResponse, error)

	// Release frees seats held by the session. A seat the session does not
	// hold aborts the whole batch.
	Release(ctx context.Context, sessionID string, req *request.SeatSelectionRequest) (*response.ReleaseSeatsResponse, error)

	// ReleaseExpired frees up to limit expired locks of DRAFT sessions and
	// returns how many seats became available.
	ReleaseExpired(ctx context.Context, limit int) (int, error)
}

type seatLockService struct {
	repo    *repository.Repository
	lockTTL time.Duration
	clock   clock.Clock
	after   afterCommit
	log     *zap.Logger
}

func NewSeatLockService(repo *repository.Repository, config utils.ReservationConfig, ports Ports, log *zap.Logger) SeatLockService {
	log = log.With(zap.String("service", "seat_lock"))
	return &seatLockService{
		repo:    repo,
		lockTTL: config.LockTTL,
		clock:   ports.Clock,
		after:   newAfterCommit(ports, log),
		log:     log,
	}
}

func (s *seatLockService) Lock(ctx context.Context, sessionID string, req *request.SeatSelectionRequest) (res *response.LockSeatsResponse, err error) {
	defer func() {
		seats := 0
		if res != nil {
			seats = len(res.LockedSeats)
		}
		s.after.observe("lock", err, seats)
	}()

	sid, seatIDs, err := parseSelection(sessionID, req)
	if err != nil {
		return nil, err
	}
	if err := CheckCapacity(len(seatIDs)); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	expiresAt := now.Add(s.lockTTL)

	var (
		result     *response.LockSeatsResponse
		showtimeID uuid.UUID
	)

	err = s.repo.UoW.Within(ctx, func(ctx context.Context, tx repository.Tx) error {
		session, err := tx.Sessions().FindByIDForUpdate(ctx, sid)
		if err != nil {
			return err
		}
		if session == nil {
			return apperr.NotFound("booking session", sid.String())
		}
		if !session.CanHoldSeats() {
			return apperr.Validation(apperr.KindInvalidSessionState,
				"booking session "+sid.String()+" cannot hold seats in state "+string(session.State), nil)
		}

		seats, err := tx.Seats().FindByIDsForUpdate(ctx, seatIDs)
		if err != nil {
			return err
		}
		byID := indexSeats(seats)
		if missing := missingIDs(seatIDs, byID); len(missing) > 0 {
			return apperr.NotFound("seat", missing...)
		}

		showtimeID = byID[seatIDs[0]].ShowtimeID
		var foreign []string
		for _, id := range seatIDs {
			if byID[id].ShowtimeID != showtimeID {
				foreign = append(foreign, id.String())
			}
		}
		if len(foreign) > 0 {
			return apperr.NotFound("seat in showtime "+showtimeID.String(), foreign...)
		}

		if err := CheckGaps(seats); err != nil {
			return err
		}

		locks, err := tx.SeatLocks().FindBySeatIDs(ctx, seatIDs)
		if err != nil {
			return err
		}
		lockBySeat := make(map[uuid.UUID]*entity.SeatLock, len(locks))
		for _, l := range locks {
			lockBySeat[l.SeatID] = l
		}

		var (
			conflicts []apperr.SeatConflict
			held      []uuid.UUID
			fresh     []uuid.UUID
		)
		for _, id := range seatIDs {
			seat, lock := byID[id], lockBySeat[id]
			switch {
			case seat.Status == entity.SeatStatusSold:
				conflicts = append(conflicts, apperr.SeatConflict{SeatID: id, Status: string(seat.Status)})
			case lock != nil && lock.LockedBySession == sid:
				held = append(held, id)
			case lock != nil:
				holder := lock.LockedBySession
				conflicts = append(conflicts, apperr.SeatConflict{SeatID: id, Status: string(entity.SeatStatusLocked), Holder: &holder})
			case seat.Status != entity.SeatStatusAvailable:
				conflicts = append(conflicts, apperr.SeatConflict{SeatID: id, Status: string(seat.Status)})
			default:
				fresh = append(fresh, id)
			}
		}
		if len(conflicts) > 0 {
			return apperr.Conflict("some seats are no longer available", conflicts)
		}

		if err := tx.SeatLocks().Extend(ctx, sid, held, expiresAt); err != nil {
			return err
		}

		if len(fresh) > 0 {
			n, err := tx.Seats().UpdateStatus(ctx, fresh, entity.SeatStatusAvailable, entity.SeatStatusLocked, now)
			if err != nil {
				return err
			}
			if n != int64(len(fresh)) {
				return errors.Newf("locked %d of %d seats", n, len(fresh))
			}

			newLocks := make([]*entity.SeatLock, len(fresh))
			for i, id := range fresh {
				newLocks[i] = &entity.SeatLock{
					SeatID:          id,
					LockedBySession: sid,
					ExpiresAt:       expiresAt,
					CreatedAt:       now,
				}
			}
			if err := tx.SeatLocks().CreateBatch(ctx, newLocks); err != nil {
				if errors.Is(err, repository.ErrSeatAlreadyLocked) {
					// the insert does not say which seat clashed, so all of them are reported
					taken := make([]apperr.SeatConflict, len(fresh))
					for i, id := range fresh {
						taken[i] = apperr.SeatConflict{SeatID: id, Status: string(entity.SeatStatusLocked)}
					}
					return apperr.Conflict("some seats are no longer available", taken)
				}
				return err
			}
		}

		total, err := tx.SeatLocks().CountBySession(ctx, sid)
		if err != nil {
			return err
		}

		result = &response.LockSeatsResponse{
			LockedSeats: make([]response.LockedSeatResponse, 0, len(seatIDs)),
			TotalHeld:   total,
		}
		for _, id := range seatIDs {
			seat := *byID[id]
			seat.Status = entity.SeatStatusLocked
			result.LockedSeats = append(result.LockedSeats, response.LockedSeatResponse{
				SeatResponse: response.SeatToResponse(&seat),
				ExpiresAt:    expiresAt,
			})
		}
		return nil
	})
	if err != nil {
		s.logFailure("Lock seats failed", err, sid)
		return nil, err
	}

	s.log.Info("Seats locked",
		zap.String("session_id", sid.String()),
		zap.Int("seats", len(seatIDs)),
		zap.Int("total_held", result.TotalHeld),
	)

	s.after.invalidate(ctx, showtimeID.String())
	s.after.publish(ctx, events.RoutingSeatLocked, events.SeatsLocked{
		SessionID:  sid.String(),
		ShowtimeID: showtimeID.String(),
		SeatIDs:    utils.UUIDStrings(seatIDs),
		ExpiresAt:  expiresAt,
		TotalHeld:  result.TotalHeld,
		OccurredAt: now,
	})

	return result, nil
}

func (s *seatLockService) Release(ctx context.Context, sessionID string, req *request.SeatSelectionRequest) (res *response.ReleaseSeatsResponse, err error) {
	defer func() {
		seats := 0
		if res != nil {
			seats = len(res.ReleasedSeats)
		}
		s.after.observe("release", err, seats)
	}()

	sid, seatIDs, err := parseSelection(sessionID, req)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	var showtimes []string

	err = s.repo.UoW.Within(ctx, func(ctx context.Context, tx repository.Tx) error {
		session, err := tx.Sessions().FindByIDForUpdate(ctx, sid)
		if err != nil {
			return err
		}
		if session == nil {
			return apperr.NotFound("booking session", sid.String())
		}

		seats, err := tx.Seats().FindByIDsForUpdate(ctx, seatIDs)
		if err != nil {
			return err
		}
		if missing := missingIDs(seatIDs, indexSeats(seats)); len(missing) > 0 {
			return apperr.NotFound("seat", missing...)
		}

		locks, err := tx.SeatLocks().FindBySeatIDs(ctx, seatIDs)
		if err != nil {
			return err
		}
		heldBySession := make(map[uuid.UUID]bool, len(locks))
		for _, l := range locks {
			heldBySession[l.SeatID] = l.LockedBySession == sid
		}

		notHeld := make(map[string]apperr.Field)
		for _, id := range seatIDs {
			if !heldBySession[id] {
				notHeld[id.String()] = apperr.Field{
					Msg:      "seat is not held by this booking session",
					Path:     "seatIds",
					Location: "body",
				}
			}
		}
		if len(notHeld) > 0 {
			return apperr.Validation(apperr.KindNotHeldBySession,
				"some seats are not held by booking session "+sid.String(), notHeld)
		}

		if _, err := tx.SeatLocks().DeleteBySeats(ctx, sid, seatIDs); err != nil {
			return err
		}
		if _, err := tx.Seats().UpdateStatus(ctx, seatIDs, entity.SeatStatusLocked, entity.SeatStatusAvailable, now); err != nil {
			return err
		}

		showtimes = showtimeIDs(seats)
		return nil
	})
	if err != nil {
		s.logFailure("Release seats failed", err, sid)
		return nil, err
	}

	released := utils.UUIDStrings(seatIDs)
	s.log.Info("Seats released",
		zap.String("session_id", sid.String()),
		zap.Int("seats", len(released)),
	)

	s.after.invalidate(ctx, showtimes...)
	s.after.publish(ctx, events.RoutingSeatReleased, events.SeatsReleased{
		SessionID:  sid.String(),
		SeatIDs:    released,
		Reason:     "released",
		OccurredAt: now,
	})

	return &response.ReleaseSeatsResponse{ReleasedSeats: released}, nil
}

func (s *seatLockService) ReleaseExpired(ctx context.Context, limit int) (int, error) {
	now := s.clock.Now()

	candidates, err := s.repo.SeatLock.FindExpired(ctx, now, limit)
	if err != nil {
		return 0, err
	}

	bySession := make(map[uuid.UUID][]uuid.UUID)
	var order []uuid.UUID
	for _, l := range candidates {
		if _, ok := bySession[l.LockedBySession]; !ok {
			order = append(order, l.LockedBySession)
		}
		bySession[l.LockedBySession] = append(bySession[l.LockedBySession], l.SeatID)
	}

	var (
		total int
		errs  error
	)
	for _, sid := range order {
		n, err := s.releaseExpiredForSession(ctx, sid, bySession[sid], now)
		if err != nil {
			s.log.Error("Failed to release expired locks",
				zap.Error(err),
				zap.String("session_id", sid.String()),
			)
			errs = errors.CombineErrors(errs, err)
			continue
		}
		total += n
	}

	s.after.observe("sweep", errs, total)
	return total, errs
}

// releaseExpiredForSession re-checks the candidates under the session lock:
// the session may have moved to PENDING_PAYMENT or refreshed its locks since
// they were listed.
func (s *seatLockService) releaseExpiredForSession(ctx context.Context, sid uuid.UUID, candidates []uuid.UUID, now time.Time) (int, error) {
	var (
		released  []uuid.UUID
		showtimes []string
	)

	err := s.repo.UoW.Within(ctx, func(ctx context.Context, tx repository.Tx) error {
		released = nil

		session, err := tx.Sessions().FindByIDForUpdate(ctx, sid)
		if err != nil {
			return err
		}
		if session == nil || session.State != entity.BookingSessionDraft {
			return nil
		}

		seats, err := tx.Seats().FindByIDsForUpdate(ctx, candidates)
		if err != nil {
			return err
		}

		locks, err := tx.SeatLocks().FindBySeatIDs(ctx, candidates)
		if err != nil {
			return err
		}
		for _, l := range locks {
			if l.LockedBySession == sid && l.Expired(now) {
				released = append(released, l.SeatID)
			}
		}
		if len(released) == 0 {
			return nil
		}

		if _, err := tx.SeatLocks().DeleteBySeats(ctx, sid, released); err != nil {
			return err
		}
		if _, err := tx.Seats().UpdateStatus(ctx, released, entity.SeatStatusLocked, entity.SeatStatusAvailable, now); err != nil {
			return err
		}

		releasedSet := make(map[uuid.UUID]struct{}, len(released))
		for _, id := range released {
			releasedSet[id] = struct{}{}
		}
		var affected []*entity.Seat
		for _, seat := range seats {
			if _, ok := releasedSet[seat.ID]; ok {
				affected = append(affected, seat)
			}
		}
		showtimes = showtimeIDs(affected)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if len(released) == 0 {
		return 0, nil
	}

	s.log.Info("Expired seat locks released",
		zap.String("session_id", sid.String()),
		zap.Int("seats", len(released)),
	)

	s.after.invalidate(ctx, showtimes...)
	s.after.publish(ctx, events.RoutingSeatReleased, events.SeatsReleased{
		SessionID:  sid.String(),
		SeatIDs:    utils.UUIDStrings(released),
		Reason:     "lock_expired",
		OccurredAt: now,
	})

	return len(released), nil
}

// logFailure logs unexpected errors with their stack; expected outcomes are
// logged at debug level only.
func (s *seatLockService) logFailure(msg string, err error, sid uuid.UUID) {
	logFailure(s.log, msg, err, zap.String("session_id", sid.String()))
}

func logFailure(log *zap.Logger, msg string, err error, fields ...zap.Field) {
	if outcome(err) != "error" {
		log.Debug(msg, append(fields, zap.Error(err))...)
		return
	}
	log.Error(msg, append(fields, zap.Error(err), zap.Strings("stack", apperr.StackLines(err, 12)))...)
}
