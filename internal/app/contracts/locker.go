package contracts

import (
	"context"
	"time"
)

type LockerService interface {
	// TryLock acquires key for the expiration window. It returns whether the
	// lock was taken and the value needed to release it.
	TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error)
	Unlock(ctx context.Context, key, lockValue string) error
}
