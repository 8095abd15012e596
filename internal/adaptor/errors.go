package adaptor

import (
	"net/http"

	"flight-booking/pkg/apperror"
	"flight-booking/pkg/utils"

	"go.uber.org/zap"
)

var defaultStatus = map[apperror.Kind]int{
	apperror.KindValidation:            http.StatusBadRequest,
	apperror.KindNotFound:              http.StatusNotFound,
	apperror.KindForbidden:             http.StatusForbidden,
	apperror.KindUnauthorized:          http.StatusUnauthorized,
	apperror.KindConflict:              http.StatusBadRequest,
	apperror.KindInsufficientInventory: http.StatusBadRequest,
	apperror.KindUnavailable:           http.StatusServiceUnavailable,
	apperror.KindInternal:              http.StatusInternalServerError,
}

// mutationStatus is used by booking create and cancel, whose clients
// receive every business failure as 400.
var mutationStatus = map[apperror.Kind]int{
	apperror.KindNotFound:  http.StatusBadRequest,
	apperror.KindForbidden: http.StatusBadRequest,
}

// respondError writes err using its kind. overrides, when non-nil, replace
// the default status for the kinds they list.
func respondError(w http.ResponseWriter, log *zap.Logger, err error, operation string, overrides map[apperror.Kind]int) {
	kind := apperror.KindOf(err)

	status, ok := overrides[kind]
	if !ok {
		status = defaultStatus[kind]
	}

	message := apperror.PublicMessage(err)
	switch kind {
	case apperror.KindInternal:
		log.Error(operation+" failed", zap.Error(err))
		message = "Server error during " + operation + "."
	case apperror.KindUnavailable:
		log.Warn(operation+" unavailable", zap.Error(err))
	default:
		log.Debug(operation+" rejected",
			zap.String("kind", kind.String()),
			zap.String("reason", message))
	}

	utils.ResponseError(w, status, message)
}
