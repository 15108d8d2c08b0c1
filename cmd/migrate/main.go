package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mmdatafocus/storefront_backend/config"
	"github.com/mmdatafocus/storefront_backend/models"
	"github.com/sirupsen/logrus"
)

// migrate runs AutoMigrate for every table. Use it as a release job when the
// API runs with SKIP_MIGRATIONS=true.
func main() {
	dryRun := flag.Bool("dry-run", false, "If true, only print the tables that would be migrated")
	flag.Parse()

	if *dryRun {
		for _, table := range models.MigrationTables() {
			fmt.Printf("[dry-run] %T\n", table)
		}
		return
	}

	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}
	logger := config.GetLogger()

	if err := models.MigrateTable(); err != nil {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Error(err.Error())
		os.Exit(1)
	}
	logger.WithFields(logrus.Fields{"field": "migrations"}).Info("migrations applied")
}
