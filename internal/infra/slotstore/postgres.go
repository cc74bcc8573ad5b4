package slotstore

import (
	"context"
	"errors"

	"cridaa-booking/internal/domain/slot"
	"cridaa-booking/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const slotColumns = `id, slot_date, slot_time, court, price, duration, status, owner_id, booked_at`

// PostgresStore persists slots in a slots table. Conditional transitions
// take a row lock, re-check the status under the lock and update in the
// same transaction, so two racing transitions on one slot see exactly one
// winner.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*slot.Slot, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+slotColumns+` FROM slots WHERE id = $1`, id)

	sl, err := scanSlot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "slot not found", nil)
	}
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to fetch slot", err)
	}
	return sl, nil
}

func (s *PostgresStore) ListAvailable(ctx context.Context) ([]slot.Slot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+slotColumns+` FROM slots WHERE status = $1 ORDER BY slot_date, slot_time`,
		slot.StatusAvailable)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list available slots", err)
	}
	return collectSlots(rows)
}

func (s *PostgresStore) ListOwnedBy(ctx context.Context, userID uuid.UUID) ([]slot.Slot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+slotColumns+` FROM slots WHERE status = $1 AND owner_id = $2 ORDER BY slot_date, slot_time`,
		slot.StatusBooked, userID)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list owned slots", err)
	}
	return collectSlots(rows)
}

func (s *PostgresStore) TryTransition(
	ctx context.Context,
	id uuid.UUID,
	expected slot.Status,
	mutate func(*slot.Slot) error,
) (*slot.Slot, error) {
	var updated *slot.Slot

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT `+slotColumns+` FROM slots WHERE id = $1 FOR UPDATE`, id)

		current, err := scanSlot(row)
		if errors.Is(err, pgx.ErrNoRows) {
			return infra.WrapRepoErr(infra.KindNotFound, "slot not found", nil)
		}
		if err != nil {
			return infra.WrapRepoErr(infra.KindDBFailure, "failed to lock slot", err)
		}

		if current.Status != expected {
			return infra.WrapRepoErr(infra.KindConflict, "slot status changed", nil)
		}

		if err := mutate(current); err != nil {
			return infra.WrapRepoErr(infra.KindConflict, "slot transition rejected", err)
		}
		if err := current.CheckConsistent(); err != nil {
			return infra.WrapRepoErr(infra.KindDBFailure, "mutation broke booking invariant", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE slots SET status = $1, owner_id = $2, booked_at = $3 WHERE id = $4`,
			current.Status, current.OwnerID, current.BookedAt, id)
		if err != nil {
			return infra.WrapRepoErr(infra.KindDBFailure, "failed to update slot", err)
		}

		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *PostgresStore) Seed(ctx context.Context, slots []slot.Slot) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var count int
		if err := tx.QueryRow(ctx, `SELECT count(*) FROM slots`).Scan(&count); err != nil {
			return infra.WrapRepoErr(infra.KindDBFailure, "failed to count slots", err)
		}
		if count > 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for _, sl := range slots {
			batch.Queue(
				`INSERT INTO slots (id, slot_date, slot_time, court, price, duration, status) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				sl.ID, sl.Date, sl.Time, sl.Court, sl.Price, sl.Duration, sl.Status,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return infra.WrapRepoErr(infra.KindDBFailure, "failed to seed slots", err)
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSlot(row rowScanner) (*slot.Slot, error) {
	var sl slot.Slot
	err := row.Scan(
		&sl.ID,
		&sl.Date,
		&sl.Time,
		&sl.Court,
		&sl.Price,
		&sl.Duration,
		&sl.Status,
		&sl.OwnerID,
		&sl.BookedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sl, nil
}

func collectSlots(rows pgx.Rows) ([]slot.Slot, error) {
	defer rows.Close()

	slots := []slot.Slot{}
	for rows.Next() {
		sl, err := scanSlot(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan slot row", err)
		}
		slots = append(slots, *sl)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to iterate slot rows", err)
	}
	return slots, nil
}
