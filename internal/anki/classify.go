package anki

import (
	"context"
	"net"
	"syscall"

	"github.com/btrkeks/bookminer/internal/errors"
)

// classifyTransport maps an HTTP client error to a service error. A request
// abandoned because ctx ended is cancelled, whatever the dialer reported.
// Otherwise only a failure to establish the connection counts as
// unreachable; timeouts and resets after connecting are ordinary transport
// failures.
func classifyTransport(ctx context.Context, action string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return errors.NewServiceError(action, errors.KindCancelled, err)
	}
	if isConnectFailure(err) {
		return errors.NewServiceError(action, errors.KindUnreachable, err)
	}
	return errors.NewServiceError(action, errors.KindTransport, err)
}

func isConnectFailure(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" && !opErr.Timeout() {
		return true
	}
	return false
}
