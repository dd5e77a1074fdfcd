package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"campusspot/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const roomColumns = `id, name, building, floor, capacity, amenities, schedule, image_url`

var connect = sqlx.Connect

// PostgresRepository reads the room catalog from PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return &PostgresRepository{db: db}, nil
}

// NewPostgresRepositoryFromDB wraps an existing connection
func NewPostgresRepositoryFromDB(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// DB returns the underlying connection
func (r *PostgresRepository) DB() *sqlx.DB {
	return r.db
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// ListRooms returns every room in catalog order
func (r *PostgresRepository) ListRooms(ctx context.Context) ([]model.Room, error) {
	query := fmt.Sprintf(`SELECT %s FROM rooms ORDER BY position, id`, roomColumns)

	var rooms []model.Room
	if err := r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}
	return rooms, nil
}

// GetRoom retrieves a single room by its ID
func (r *PostgresRepository) GetRoom(ctx context.Context, id string) (*model.Room, error) {
	query := fmt.Sprintf(`SELECT %s FROM rooms WHERE id = $1`, roomColumns)

	var room model.Room
	err := r.db.GetContext(ctx, &room, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return &room, nil
}

// LoadSnapshot reads the whole catalog once into an immutable MemoryRepository
func LoadSnapshot(ctx context.Context, src RoomRepository) (*MemoryRepository, error) {
	rooms, err := src.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, fmt.Errorf("room catalog is empty")
	}
	return NewMemoryRepository(rooms)
}

var _ RoomRepository = (*PostgresRepository)(nil)
