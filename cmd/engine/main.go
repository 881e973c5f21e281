package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"

	"learning-progress-engine/internal/application/usecases"
	"learning-progress-engine/internal/domain/challenge"
	"learning-progress-engine/internal/domain/points"
	"learning-progress-engine/internal/domain/revision"
	"learning-progress-engine/internal/infrastructure/filesystem"
	"learning-progress-engine/internal/infrastructure/persistence"
)

func main() {
	// Load .env if present; real environment variables win
	_ = godotenv.Load()

	// Initialize database
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "learning_progress.db"
	}
	db, err := persistence.NewSQLiteDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Load product catalogs, falling back to built-ins
	var catalog *challenge.Catalog
	stages := points.BuiltinStages()
	planConfig := revision.DefaultPlanConfig()

	if catalogPath := os.Getenv("CATALOG_PATH"); catalogPath != "" {
		catalogLoader := filesystem.NewCatalogLoader()
		data, err := catalogLoader.LoadFromFile(catalogPath)
		if err != nil {
			log.Fatalf("Failed to load catalog: %v", err)
		}
		if data.Challenges != nil {
			catalog = data.Challenges
		}
		if data.Stages != nil {
			stages = data.Stages
		}
		if data.RevisionOffsetDays != nil {
			planConfig = &revision.PlanConfig{OffsetDays: data.RevisionOffsetDays}
		}
	}

	ladder, err := points.NewLadder(stages)
	if err != nil {
		log.Fatalf("Invalid stage catalog: %v", err)
	}

	// Initialize components
	repo := persistence.NewSnapshotRepository(db)
	generator := revision.NewGenerator(planConfig)
	rotation := challenge.NewEngine(catalog, rand.New(rand.NewSource(time.Now().UnixNano())))

	ctx := context.Background()
	engine, err := usecases.NewProgressUseCase(ctx, repo, generator, rotation, ladder)
	if err != nil {
		log.Fatalf("Failed to initialize progress engine: %v", err)
	}

	// Roll the challenge pools over to the current period
	now := time.Now()
	if err := engine.Rollover(ctx, now); err != nil {
		log.Fatalf("Failed to roll over challenge pools: %v", err)
	}

	// Print a status summary
	stats := engine.Stats()
	stage := engine.Stage()
	log.Printf("Streak: %d day(s) (longest %d)", stats.CurrentStreak, stats.LongestStreak)
	log.Printf("Points: %d (stage %s)", stats.TotalPoints, stage.Name)
	log.Printf("Flashcards due: %d", len(engine.DueFlashcards(now)))
	log.Printf("Revision reminders due: %d", len(engine.DueReminders(now)))
	for _, c := range engine.ActiveChallenges("") {
		status := "in progress"
		if c.IsCompleted() {
			status = "completed"
		}
		log.Printf("[%s] %s: %d/%d (%s)", c.Period, c.Description, c.Current, c.Target, status)
	}
}
