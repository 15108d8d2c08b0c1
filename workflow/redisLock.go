package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/sirupsen/logrus"
)

const (
	redisLockTTL     = 30 * time.Second
	redisLockRetries = 40
)

// obtainBestEffortLock returns nil if locker is nil or the lock cannot be obtained.
// Correctness comes from the database lock; this only keeps instances from
// piling onto MySQL.
func obtainBestEffortLock(ctx context.Context, logger *logrus.Logger, locker *redislock.Client, key string) *redislock.Lock {
	if locker == nil {
		return nil
	}
	lock, err := locker.Obtain(ctx, "lock:"+key, redisLockTTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(50*time.Millisecond), redisLockRetries),
	})
	if err != nil {
		msg := "error obtaining redis lock; proceeding without redis lock: " + err.Error()
		if errors.Is(err, redislock.ErrNotObtained) {
			msg = "could not obtain redis lock; proceeding without redis lock"
		}
		logger.WithFields(logrus.Fields{
			"field": "obtainBestEffortLock",
			"key":   key,
		}).Warn(msg)
		return nil
	}
	return lock
}

func releaseBestEffortLock(ctx context.Context, logger *logrus.Logger, lock *redislock.Lock) {
	if lock == nil {
		return
	}
	if err := lock.Release(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
		logger.WithFields(logrus.Fields{
			"field": "releaseBestEffortLock",
			"key":   lock.Key(),
		}).Warn("failed to release redis lock: " + err.Error())
	}
}
