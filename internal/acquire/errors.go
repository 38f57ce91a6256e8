package acquire

import "errors"

// Per-id failures. Each is logged and recorded against its id; the dispatcher
// continues with remaining ids, and a rerun of the whole job is the recovery
// path (idempotent via the existence check).
var (
	// ErrNoUsableAsset indicates the item offers neither an 8-band nor a
	// 4-band analytic product.
	ErrNoUsableAsset = errors.New("no usable analytic asset")

	// ErrActivationAbandoned indicates the asset reported inactive again
	// after the single re-activation attempt.
	ErrActivationAbandoned = errors.New("activation abandoned after retry")

	// ErrActivationTimeout indicates the asset did not become active within
	// the maximum wait.
	ErrActivationTimeout = errors.New("activation timed out")

	// ErrDownload indicates a transport failure while streaming asset bytes.
	ErrDownload = errors.New("download failed")
)
