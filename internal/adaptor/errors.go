package adaptor

import (
	"net/http"

	"cinema-reservation/pkg/apperr"
	"cinema-reservation/pkg/utils"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// writeServiceError maps the reservation error taxonomy to HTTP. Anything
// outside it is a 500 whose details stay in the log.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var (
		ve *apperr.ValidationError
		ce *apperr.ConflictError
		nf *apperr.NotFoundError
	)

	switch {
	case errors.As(err, &ve):
		log.Warn(operation+" rejected",
			zap.String("kind", string(ve.Kind)),
			zap.String("reason", ve.Message),
		)
		utils.ResponseBadRequest(w, string(ve.Kind), ve.Message, fieldDetails(ve.Fields))

	case errors.As(err, &ce):
		log.Info(operation+" conflict", zap.Int("seats", len(ce.Seats)))
		utils.ResponseConflict(w, ce.Message, conflictDetails(ce.Seats))

	case errors.As(err, &nf):
		log.Info(operation+" failed - not found", zap.String("reason", nf.Error()))
		utils.ResponseNotFound(w, nf.Error())

	default:
		log.Error(operation+" failed",
			zap.Error(err),
			zap.Strings("stack", apperr.StackLines(err, 20)),
		)
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func fieldDetails(fields map[string]apperr.Field) map[string]utils.ErrorDetail {
	if len(fields) == 0 {
		return nil
	}
	details := make(map[string]utils.ErrorDetail, len(fields))
	for key, f := range fields {
		details[key] = utils.ErrorDetail{Msg: f.Msg, Path: f.Path, Location: f.Location}
	}
	return details
}

// conflictDetails keys each blocked seat by its id.
func conflictDetails(seats []apperr.SeatConflict) map[string]utils.ErrorDetail {
	details := make(map[string]utils.ErrorDetail, len(seats))
	for _, seat := range seats {
		d := utils.ErrorDetail{
			Msg:      "seat is " + seat.Status,
			Path:     "seatIds",
			Location: "body",
			Status:   seat.Status,
		}
		if seat.Holder != nil {
			d.Msg = "seat is locked by another booking session"
			d.Holder = seat.Holder.String()
		}
		details[seat.SeatID.String()] = d
	}
	return details
}
