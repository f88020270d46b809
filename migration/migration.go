// Package migration is a minimal ordered migration runner. Migrations
// register themselves by name from init(); Run applies the ones not yet
// recorded in schema_migrations, in name order.
package migration

import (
	"fmt"
	"log"
	"sort"
	"time"

	"gorm.io/gorm"
)

// Migration is one schema change.
type Migration func(db *gorm.DB) error

var registry = map[string]Migration{}

// appliedMigration records an applied migration
type appliedMigration struct {
	Name      string    `gorm:"primaryKey;size:100"`
	AppliedAt time.Time `gorm:"not null"`
}

func (appliedMigration) TableName() string { return "schema_migrations" }

// Register adds a migration under a unique name. Call from init().
func Register(name string, m Migration) error {
	if _, exists := registry[name]; exists {
		return fmt.Errorf("migration %q registered twice", name)
	}
	registry[name] = m
	return nil
}

// Run applies all pending migrations in name order.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&appliedMigration{}); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		var count int64
		if err := db.Model(&appliedMigration{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		log.Printf("applying migration %s", name)
		if err := db.Transaction(func(tx *gorm.DB) error {
			if err := registry[name](tx); err != nil {
				return err
			}
			return tx.Create(&appliedMigration{Name: name, AppliedAt: time.Now()}).Error
		}); err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
	}
	return nil
}
