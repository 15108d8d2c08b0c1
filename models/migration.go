package models

import (
	"github.com/mmdatafocus/storefront_backend/config"
)

func MigrationTables() []interface{} {
	return []interface{}{
		&Customer{},
		&Product{},
		&Order{}, &OrderProduct{},
		&Category{}, &Transaction{},
	}
}

func MigrateTable() error {
	db := config.GetDB()

	return db.AutoMigrate(MigrationTables()...)
}
