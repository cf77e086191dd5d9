package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/flightdeals/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SnapshotRepository archives generated catalogs.
type SnapshotRepository interface {
	EnsureSchema(ctx context.Context) error
	Save(ctx context.Context, flights []domain.Flight) (string, error)
	Latest(ctx context.Context) ([]domain.Flight, error)
}

type PGSnapshotRepository struct {
	db *pgxpool.Pool
}

func NewSnapshotRepository(db *pgxpool.Pool) SnapshotRepository {
	return &PGSnapshotRepository{db: db}
}

const createSnapshotsTable = `CREATE TABLE IF NOT EXISTS deal_snapshots (
	snapshot_id    UUID        NOT NULL,
	position       INT         NOT NULL,
	flight_id      TEXT        NOT NULL,
	origin_code    TEXT        NOT NULL,
	dest_code      TEXT        NOT NULL,
	origin_city    TEXT        NOT NULL,
	dest_city      TEXT        NOT NULL,
	price          INT         NOT NULL,
	original_price INT         NOT NULL,
	airline        TEXT        NOT NULL,
	duration       TEXT        NOT NULL,
	stops          INT         NOT NULL,
	departure_time TEXT        NOT NULL,
	arrival_time   TEXT        NOT NULL,
	deal_quality   TEXT        NOT NULL,
	savings        INT         NOT NULL,
	price_history  JSONB       NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (snapshot_id, position)
)`

func (r *PGSnapshotRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createSnapshotsTable); err != nil {
		return fmt.Errorf("create deal_snapshots: %w", err)
	}
	return nil
}

// Save writes all flights under a new snapshot id in one transaction.
func (r *PGSnapshotRepository) Save(ctx context.Context, flights []domain.Flight) (string, error) {
	snapshotID := uuid.New()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for i, f := range flights {
		history, err := json.Marshal(f.PriceHistory)
		if err != nil {
			return "", fmt.Errorf("encode price history of %s: %w", f.ID, err)
		}
		batch.Queue(`INSERT INTO deal_snapshots (snapshot_id, position, flight_id, origin_code, dest_code, origin_city, dest_city,
			price, original_price, airline, duration, stops, departure_time, arrival_time, deal_quality, savings, price_history)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
			snapshotID, i, f.ID, f.OriginCode, f.DestCode, f.OriginCity, f.DestCity,
			f.Price, f.OriginalPrice, f.Airline, f.Duration, f.Stops, f.DepartureTime, f.ArrivalTime,
			string(f.DealQuality), f.Savings, history)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return "", fmt.Errorf("insert snapshot: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return snapshotID.String(), nil
}

// Latest returns the flights of the most recent snapshot in their original order.
func (r *PGSnapshotRepository) Latest(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT flight_id, origin_code, dest_code, origin_city, dest_city, price, original_price,
		airline, duration, stops, departure_time, arrival_time, deal_quality, savings, price_history
		FROM deal_snapshots
		WHERE snapshot_id = (SELECT snapshot_id FROM deal_snapshots ORDER BY created_at DESC LIMIT 1)
		ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var (
			f       domain.Flight
			quality string
			history []byte
		)
		if err := rows.Scan(&f.ID, &f.OriginCode, &f.DestCode, &f.OriginCity, &f.DestCity, &f.Price, &f.OriginalPrice,
			&f.Airline, &f.Duration, &f.Stops, &f.DepartureTime, &f.ArrivalTime, &quality, &f.Savings, &history); err != nil {
			return nil, err
		}
		f.DealQuality = domain.DealQuality(quality)
		if err := json.Unmarshal(history, &f.PriceHistory); err != nil {
			return nil, fmt.Errorf("decode price history of %s: %w", f.ID, err)
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

// snapshotTimeout bounds the startup archive write and restore.
const snapshotTimeout = 10 * time.Second

// ArchiveCatalog stores flights as a new snapshot, creating the table when needed.
func ArchiveCatalog(ctx context.Context, repo SnapshotRepository, flights []domain.Flight) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, snapshotTimeout)
	defer cancel()

	if err := repo.EnsureSchema(ctx); err != nil {
		return "", err
	}
	return repo.Save(ctx, flights)
}

// RestoreCatalog returns the flights of the most recent snapshot. It returns an empty
// slice when nothing has been archived yet.
func RestoreCatalog(ctx context.Context, repo SnapshotRepository) ([]domain.Flight, error) {
	ctx, cancel := context.WithTimeout(ctx, snapshotTimeout)
	defer cancel()

	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	flights, err := repo.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load latest snapshot: %w", err)
	}
	return flights, nil
}

var _ SnapshotRepository = (*PGSnapshotRepository)(nil)
