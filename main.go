package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"campusverify/engine"
	"campusverify/handlers/actors"
	adminhandlers "campusverify/handlers/admin"
	"campusverify/handlers/claims"
	"campusverify/handlers/votes"
	"campusverify/middleware"
	"campusverify/migration"
	"campusverify/notify"
	"campusverify/setup"
	"campusverify/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := setup.Load(envOr("SETUP_FILE", "setup.yaml"))
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

	st := store.NewGorm(db)
	eng := engine.New(st, notify.LogNotifier{}, cfg)

	// Background sweep so stale claims resolve even without traffic.
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if n, err := eng.Sweep(); err != nil {
				log.Printf("sweep failed: %v", err)
			} else if n > 0 {
				log.Printf("sweep resolved %d claims", n)
			}
		}
	}()

	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/rumors", claims.SubmitClaimHandler(eng)).Methods("POST")
	api.HandleFunc("/rumors", claims.ListClaimsHandler(st)).Methods("GET")
	api.HandleFunc("/rumors/{id}", claims.GetClaimHandler(st)).Methods("GET")
	api.HandleFunc("/rumors/{id}/anomaly", claims.ClaimAnomalyHandler(eng)).Methods("GET")

	api.HandleFunc("/verifications", votes.CastVoteHandler(eng)).Methods("POST")
	api.HandleFunc("/verifications/{rumorId}", votes.ListVotesHandler(st)).Methods("GET")

	api.HandleFunc("/actors/{id}", actors.GetActorHandler(st, eng)).Methods("GET")
	api.HandleFunc("/leaderboard", actors.LeaderboardHandler(st)).Methods("GET")

	api.HandleFunc("/admin/sweep", adminhandlers.SweepHandler(eng)).Methods("POST")
	api.HandleFunc("/admin/actors/{id}/suspend", adminhandlers.SuspendActorHandler(eng)).Methods("POST")
	api.HandleFunc("/admin/actors/{id}/reinstate", adminhandlers.ReinstateActorHandler(eng)).Methods("POST")

	limiter := middleware.NewRateLimiter(10, 30)
	c := cors.New(cors.Options{
		AllowedOrigins: []string{envOr("CORS_ORIGIN", "*")},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Actor-ID", "Authorization"},
	})

	handler := c.Handler(limiter.Middleware(router))
	addr := ":" + envOr("PORT", "8080")
	log.Printf("listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}

// openDB connects to PostgreSQL when DATABASE_URL is set, SQLite otherwise.
func openDB() (*gorm.DB, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(envOr("SQLITE_PATH", "campusverify.db")), &gorm.Config{})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
