package interfaces

import "context"

// ILocker serializes writers of one entity. Lock blocks until the key is
// held or the wait budget runs out (ErrLockTimeout); the returned func
// releases it.
type ILocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
