package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type seedCourt struct {
	id, name, description string
}

var seedCourts = []seedCourt{
	{"court-1", "Football Court 1", "Professional football turf with artificial grass"},
	{"court-2", "Football Court 2", "Professional football turf with artificial grass"},
	{"court-3", "Cricket Ground", "Full-size cricket ground with proper pitch"},
}

// Hourly slots are offered in a morning and an evening block every day.
var seedBlocks = [][2]int{{6, 12}, {16, 22}}

// Seed inserts the demo courts and their weekly hourly slots. Existing rows
// are left untouched, so running it twice is harmless.
func Seed(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger) error {
	batch := &pgx.Batch{}

	for _, c := range seedCourts {
		batch.Queue(
			`INSERT INTO courts (id, name, description, is_active)
			 VALUES ($1, $2, $3, TRUE)
			 ON CONFLICT (id) DO NOTHING`,
			c.id, c.name, c.description,
		)
	}

	slots := 0
	for day := 0; day < 7; day++ {
		for _, block := range seedBlocks {
			for hour := block[0]; hour < block[1]; hour++ {
				start := fmt.Sprintf("%02d:00", hour)
				end := fmt.Sprintf("%02d:00", hour+1)
				for _, c := range seedCourts {
					batch.Queue(
						`INSERT INTO time_slots (id, court_id, start_time, end_time, day_of_week, is_active)
						 VALUES ($1, $2, $3, $4, $5, TRUE)
						 ON CONFLICT ON CONSTRAINT time_slots_court_window_key DO NOTHING`,
						uuid.New().String(), c.id, start, end, day,
					)
					slots++
				}
			}
		}
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("seed batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	log.Info("database seeded",
		zap.Int("courts", len(seedCourts)),
		zap.Int("time_slots", slots),
	)
	return nil
}
