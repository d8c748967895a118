package v1

var (
	// common errors
	ErrSuccess             = newError(0, "ok")
	ErrBadRequest          = newError(400, "bad request")
	ErrNotFound            = newError(404, "not found")
	ErrInternalServerError = newError(500, "internal server error")

	// sync errors
	ErrSyncInProgress      = newError(1001, "a sync batch is already running")
	ErrBatchNotFound       = newError(1002, "sync batch not found")
	ErrSnapshotUnavailable = newError(1003, "inventory snapshot unavailable")
)
