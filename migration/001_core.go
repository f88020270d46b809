package migration

import (
	"log"

	"gorm.io/gorm"

	"campusverify/models"
)

func init() {
	if err := Register("001_core", migrate001Core); err != nil {
		log.Fatalf("Failed to register migration 001_core: %v", err)
	}
}

// migrate001Core creates the core schema: actors, claims, votes, evidence
// and the activity log.
func migrate001Core(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Actor{},
		&models.Claim{},
		&models.Vote{},
		&models.Evidence{},
		&models.ActivityEvent{},
	); err != nil {
		return err
	}

	// AutoMigrate covers the struct-tag indexes; these back the hot list
	// queries.
	db.Exec("CREATE INDEX IF NOT EXISTS idx_claims_open ON claims(resolved, submitted_at)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_votes_claim_cast ON votes(claim_id, cast_at)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_activity_actor_time ON activity_events(actor_id, occurred_at)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_actors_reputation ON actors(reputation)")

	return nil
}
