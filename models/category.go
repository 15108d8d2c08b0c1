package models

import (
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
)

type Category struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Title     string    `gorm:"type:varchar(100) COLLATE utf8mb4_bin;not null;uniqueIndex" json:"title"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

const mysqlErrDuplicateEntry = 1062

// IsDuplicateKey reports a MySQL unique constraint violation.
func IsDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry
}
