package knowledge

import (
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"

	_ "github.com/lib/pq"

	"agentboard/internal/types"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// PostgresStore is a PostgreSQL implementation of the knowledge Store.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens the knowledge database and applies migrations.
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &PostgresStore{db: db}

	if err := store.runMigrations(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// runMigrations applies the schema using goose.
func (s *PostgresStore) runMigrations() error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// AddMilestone inserts a milestone, assigning an id and timestamp when
// the caller left them empty.
func (s *PostgresStore) AddMilestone(m types.Milestone) (types.Milestone, error) {
	if m.ID == "" {
		m.ID = generateID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO milestones (id, title, description, category, task_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.Exec(query, m.ID, m.Title, nullString(m.Description), nullString(m.Category), nullString(m.TaskID), m.CreatedAt)
	if err != nil {
		return types.Milestone{}, fmt.Errorf("failed to insert milestone: %w", err)
	}

	return m, nil
}

// ListMilestones returns the newest milestones first, capped at limit.
func (s *PostgresStore) ListMilestones(limit int) ([]types.Milestone, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.Query(`
		SELECT id, title, COALESCE(description, ''), COALESCE(category, ''), COALESCE(task_id, ''), created_at
		FROM milestones
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query milestones: %w", err)
	}
	defer func() { _ = rows.Close() }()

	milestones := make([]types.Milestone, 0)
	for rows.Next() {
		var m types.Milestone
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Category, &m.TaskID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan milestone: %w", err)
		}
		milestones = append(milestones, m)
	}

	return milestones, rows.Err()
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
