package workflow

import (
	"fmt"

	"gorm.io/gorm"
)

// AcquireAdvisoryLock serializes writers across instances using MySQL advisory locks.
// NOTE: GET_LOCK is connection-scoped, so conn must be pinned to one connection
// (gorm.DB.Connection) and reused for the work done under the lock.
func AcquireAdvisoryLock(conn *gorm.DB, lockName string) error {
	var ok int
	if err := conn.Raw("SELECT GET_LOCK(?, 30)", lockName).Scan(&ok).Error; err != nil {
		return err
	}
	if ok != 1 {
		return fmt.Errorf("could not acquire lock %s", lockName)
	}
	return nil
}

func ReleaseAdvisoryLock(conn *gorm.DB, lockName string) {
	var _ok int
	_ = conn.Raw("SELECT RELEASE_LOCK(?)", lockName).Scan(&_ok).Error
}
