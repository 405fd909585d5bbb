package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/janosik-bot/janosik/internal/log"
	"github.com/janosik-bot/janosik/internal/model"
	"github.com/janosik-bot/janosik/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.ProtipRepository.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository opens (or creates) the database and applies the migrations.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// AddProtip stores a new protip and returns it with its assigned ID.
func (r *Repository) AddProtip(ctx context.Context, task, content string) (*model.Protip, error) {
	if task == "" || content == "" {
		return nil, fmt.Errorf("task and content are required: %w", model.ErrNotValid)
	}

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO protips (task, content, created_at) VALUES (?, ?, ?)`,
		task, content, now.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("could not insert protip: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not get protip id: %w", err)
	}

	r.logger.Debugf("Added protip %d to task %s", id, task)
	return &model.Protip{
		ID:        id,
		Task:      task,
		Content:   content,
		CreatedAt: timeFromUnix(now.Unix()),
	}, nil
}

// RemoveProtip deletes a protip by ID.
func (r *Repository) RemoveProtip(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM protips WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("could not delete protip: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("protip %d: %w", id, model.ErrNotFound)
	}

	r.logger.Debugf("Removed protip %d", id)
	return nil
}

// ListProtips returns the protips of a task ordered by ID.
func (r *Repository) ListProtips(ctx context.Context, task string) ([]model.Protip, error) {
	query := `
		SELECT id, task, content, created_at
		FROM protips
		WHERE task = ?
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, task)
	if err != nil {
		return nil, fmt.Errorf("could not query protips: %w", err)
	}
	defer rows.Close()

	protips := []model.Protip{}
	for rows.Next() {
		p, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		protips = append(protips, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return protips, nil
}

// ListTasks returns the distinct tasks that have protips, sorted by name.
func (r *Repository) ListTasks(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT task FROM protips ORDER BY task ASC`)
	if err != nil {
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []string{}
	for rows.Next() {
		var task string
		if err := rows.Scan(&task); err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tasks, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRow(s scanner) (model.Protip, error) {
	var p model.Protip
	var createdAt int64
	if err := s.Scan(&p.ID, &p.Task, &p.Content, &createdAt); err != nil {
		return model.Protip{}, err
	}
	p.CreatedAt = timeFromUnix(createdAt)

	return p, nil
}

func timeFromUnix(unix int64) time.Time { return time.Unix(unix, 0).UTC() }
