// Package main seeds the database with initial data for local development.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"todoroki/internal/core/apperror"
	"todoroki/internal/core/entity"
	"todoroki/internal/infrastructure/storage/postgres"
	"todoroki/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	tx := postgres.NewTxManager(pool)
	users := postgres.NewUserRepo(tx)
	labels := postgres.NewLabelRepo(tx)
	todos := postgres.NewTodoRepo(tx)
	doits := postgres.NewDoitRepo(tx)

	owner, err := seedOwner(ctx, log, users)
	if err != nil {
		log.Fatalw("failed to seed owner", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, log, labels, todos, doits, owner); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding complete")
}

// seedOwner registers the account named by DEFAULT_OWNER_EMAIL so the
// instance has an owner before the first sign-in.
func seedOwner(ctx context.Context, log *logger.Logger, users *postgres.UserRepo) (*entity.User, error) {
	email := os.Getenv("DEFAULT_OWNER_EMAIL")
	if email == "" {
		log.Fatal("DEFAULT_OWNER_EMAIL environment variable is required")
	}

	existing, err := users.GetByEmail(ctx, email)
	if err == nil {
		log.Infow("owner already exists, skipping", "email", email)
		return existing, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	owner := entity.NewUser("Owner", email, entity.RoleOwner)
	if err := users.Create(ctx, owner); err != nil {
		return nil, err
	}

	log.Infow("owner created", "email", email, "id", owner.ID)
	return &owner, nil
}

func seedDemoData(
	ctx context.Context,
	log *logger.Logger,
	labels *postgres.LabelRepo,
	todos *postgres.TodoRepo,
	doits *postgres.DoitRepo,
	owner *entity.User,
) error {
	chores := entity.NewLabel("chores", "Around the house", &entity.Color{Red: 0x4c, Green: 0xaf, Blue: 0x50})
	health := entity.NewLabel("health", "Body and mind", &entity.Color{Red: 0xe9, Green: 0x1e, Blue: 0x63})
	for _, l := range []entity.Label{chores, health} {
		if err := labels.Create(ctx, l); err != nil {
			return err
		}
	}
	log.Infow("labels created", "count", 2)

	weekday := time.Saturday
	cleaning := entity.NewTodo(
		"Clean the kitchen",
		"Counters, sink and floor",
		entity.PublicPublishment(),
		[]entity.Label{chores},
		[]entity.Schedule{{Kind: entity.ScheduleWeekly, Weekday: &weekday}},
		nil,
	)

	alt := "Morning routine"
	stretching := entity.NewTodo(
		"Stretch for ten minutes",
		"Before breakfast",
		entity.PrivatePublishment(&alt),
		[]entity.Label{health},
		[]entity.Schedule{{Kind: entity.ScheduleDaily}},
		nil,
	)
	for _, t := range []entity.Todo{cleaning, stretching} {
		if err := todos.Create(ctx, t); err != nil {
			return err
		}
	}
	log.Infow("todos created", "count", 2)

	deadline := time.Now().UTC().AddDate(0, 0, 14)
	errand := entity.NewDoit(
		"Renew passport",
		"Book an appointment at the office",
		entity.PublicPublishment(),
		nil,
		&deadline,
		owner.ID,
	)
	if err := doits.Create(ctx, errand); err != nil {
		return err
	}
	log.Infow("doits created", "count", 1)

	return nil
}
