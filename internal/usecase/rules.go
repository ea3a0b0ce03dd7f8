package usecase

import (
	"fmt"
	"sort"
	"strconv"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/pkg/apperr"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
)

// MaxSeatsPerRequest caps a single lock request.
const MaxSeatsPerRequest = 8

// dedupeIDs drops repeated ids and keeps first-seen order.
func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func CheckCapacity(count int) error {
	if count > MaxSeatsPerRequest {
		return apperr.Validation(apperr.KindTooManySeats,
			fmt.Sprintf("at most %d seats can be locked per request, got %d", MaxSeatsPerRequest, count),
			map[string]apperr.Field{
				"seatIds": {Msg: "must contain at most " + strconv.Itoa(MaxSeatsPerRequest) + " seats", Path: "seatIds", Location: "body"},
			})
	}
	return nil
}

// CheckGaps rejects a selection that would leave exactly one unselected seat
// between two selected seats of the same row.
func CheckGaps(seats []*entity.Seat) error {
	rows := make(map[string][]int)
	for _, seat := range seats {
		rows[seat.RowLabel] = append(rows[seat.RowLabel], seat.SeatNumber)
	}

	fields := make(map[string]apperr.Field)
	for row, numbers := range rows {
		sort.Ints(numbers)
		for i := 1; i < len(numbers); i++ {
			if numbers[i]-numbers[i-1] != 2 {
				continue
			}
			orphan := row + strconv.Itoa(numbers[i-1]+1)
			fields[orphan] = apperr.Field{
				Msg:      "seat " + orphan + " would be left isolated",
				Path:     "seatIds",
				Location: "body",
			}
		}
	}

	if len(fields) > 0 {
		return apperr.Validation(apperr.KindSeatGapViolation,
			"selection leaves a single empty seat between selected seats", fields)
	}
	return nil
}

// parseSelection validates the request body and path id shared by lock and
// release.
func parseSelection(sessionID string, req *request.SeatSelectionRequest) (uuid.UUID, []uuid.UUID, error) {
	sid, err := uuid.Parse(sessionID)
	if err != nil {
		return uuid.Nil, nil, invalidPathID("session_id", sessionID)
	}

	if req == nil {
		return uuid.Nil, nil, apperr.Validation(apperr.KindInvalidRequest, "request body is required", nil)
	}
	if details := utils.ValidateStruct(req); len(details) > 0 {
		return uuid.Nil, nil, apperr.Validation(apperr.KindInvalidRequest, "invalid request body", toFields(details))
	}

	ids, err := utils.ParseUUIDs(req.SeatIDs)
	if err != nil {
		return uuid.Nil, nil, apperr.Validation(apperr.KindInvalidRequest, err.Error(), nil)
	}

	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return uuid.Nil, nil, apperr.Validation(apperr.KindInvalidRequest, "at least one seat id is required", nil)
	}
	return sid, ids, nil
}

func invalidPathID(name, value string) error {
	return apperr.Validation(apperr.KindInvalidRequest, "invalid "+name, map[string]apperr.Field{
		name: {Msg: fmt.Sprintf("%q is not a valid UUID", value), Path: name, Location: "path"},
	})
}

func toFields(details map[string]utils.ErrorDetail) map[string]apperr.Field {
	fields := make(map[string]apperr.Field, len(details))
	for k, d := range details {
		fields[k] = apperr.Field{Msg: d.Msg, Path: d.Path, Location: d.Location}
	}
	return fields
}

// missingIDs returns the requested ids that have no loaded seat.
func missingIDs(requested []uuid.UUID, seats map[uuid.UUID]*entity.Seat) []string {
	var missing []string
	for _, id := range requested {
		if _, ok := seats[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	return missing
}

func indexSeats(seats []*entity.Seat) map[uuid.UUID]*entity.Seat {
	m := make(map[uuid.UUID]*entity.Seat, len(seats))
	for _, s := range seats {
		m[s.ID] = s
	}
	return m
}

func showtimeIDs(seats []*entity.Seat) []string {
	seen := make(map[uuid.UUID]struct{})
	var ids []string
	for _, s := range seats {
		if _, ok := seen[s.ShowtimeID]; ok {
			continue
		}
		seen[s.ShowtimeID] = struct{}{}
		ids = append(ids, s.ShowtimeID.String())
	}
	return ids
}
