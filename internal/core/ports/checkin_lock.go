package ports

import "context"

// CheckinLocker serialises check-in writes per participant identifier so two
// staff scanning the same badge cannot interleave a read-modify-write at the
// store. It does not change the last-writer-wins outcome, only removes the
// torn-write window.
type CheckinLocker interface {
	// Lock blocks until the lock for id is held or ctx is done. The
	// returned function releases the lock.
	Lock(ctx context.Context, id string) (unlock func(), err error)
}
