// Command seed fills a development database with plausible actors, rumors
// and verification votes. Everything goes through the engine so balances,
// scores and activity logs stay consistent.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"campusverify/engine"
	"campusverify/migration"
	"campusverify/models"
	"campusverify/notify"
	"campusverify/setup"
	"campusverify/store"
)

var categories = []models.Category{
	models.CategoryEvent, models.CategoryFood, models.CategorySocial,
	models.CategoryAcademic, models.CategoryPolicy, models.CategoryFacility,
	models.CategoryTech, models.CategoryGeneral,
}

var evidenceTypes = []models.EvidenceType{
	models.EvidenceDocumentary, models.EvidenceVideo, models.EvidencePhoto,
	models.EvidenceLink, models.EvidenceTestimony,
}

func main() {
	nActors := flag.Int("actors", 20, "number of actors to create")
	nClaims := flag.Int("rumors", 15, "number of rumors to submit")
	seed := flag.Int64("seed", 0, "random seed (0 means random)")
	flag.Parse()

	_ = godotenv.Load()
	if *seed != 0 {
		gofakeit.Seed(*seed)
		rand.Seed(*seed)
	}

	cfg, err := setup.Load("setup.yaml")
	if err != nil {
		log.Fatalf("load setup config: %v", err)
	}

	db, err := openDB()
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err := migration.Run(db); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	eng := engine.New(store.NewGorm(db), notify.Discard{}, cfg)

	actorIDs := make([]string, *nActors)
	for i := range actorIDs {
		actorIDs[i] = fmt.Sprintf("%s-%s", gofakeit.Username(), gofakeit.DigitN(4))
	}

	submitted := 0
	for i := 0; i < *nClaims; i++ {
		submitter := actorIDs[rand.Intn(len(actorIDs))]
		req := engine.SubmitRequest{
			ActorID:  submitter,
			Content:  gofakeit.Sentence(12 + rand.Intn(20)),
			Category: categories[rand.Intn(len(categories))],
			Stake:    cfg.MinClaimStake + rand.Int63n(cfg.MaxClaimStake-cfg.MinClaimStake+1),
		}
		if rand.Intn(2) == 0 {
			req.Evidence = &engine.EvidenceInput{
				Type:        evidenceTypes[rand.Intn(len(evidenceTypes))],
				Description: gofakeit.Sentence(8),
			}
		}

		claim, err := eng.SubmitClaim(req)
		if err != nil {
			log.Printf("skip rumor: %v", err)
			continue
		}
		submitted++

		for _, voter := range actorIDs {
			if voter == submitter || rand.Intn(3) != 0 {
				continue
			}
			direction := models.VoteSupport
			if rand.Intn(10) < 3 {
				direction = models.VoteDispute
			}
			_, err := eng.CastVote(engine.VoteRequest{
				ActorID:   voter,
				ClaimID:   claim.ClaimID,
				Direction: direction,
				Stake:     cfg.MinVoteStake + rand.Int63n(cfg.MaxVoteStake-cfg.MinVoteStake+1),
			})
			if err != nil {
				log.Printf("skip vote by %s: %v", voter, err)
			}
		}
	}

	log.Printf("seeded %d actors and %d rumors", len(actorIDs), submitted)
}

func openDB() (*gorm.DB, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		path = "campusverify.db"
	}
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}
