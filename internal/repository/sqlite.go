package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/JonnyWalker81/wellness/backend/internal/models"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore is a local event store holding check-ins and phase tags.
// It backs the same repository interfaces as Supabase for offline use and
// for the report CLI.
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

// OpenSQLite creates a new SQLiteStore at dbPath, creating tables if they
// don't exist. ":memory:" opens a private in-memory database; two stores
// opened that way never see each other's rows.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// Named per store so the shared cache stays private to this handle
		connStr = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS feeling_checkins (
		id TEXT PRIMARY KEY,
		subject_id TEXT NOT NULL,
		category_id TEXT NOT NULL,
		label TEXT NOT NULL,
		occurred_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_checkins_subject_time ON feeling_checkins(subject_id, occurred_at);

	CREATE TABLE IF NOT EXISTS phase_tags (
		subject_id TEXT NOT NULL,
		date TEXT NOT NULL,
		phase TEXT NOT NULL,
		updated_at INTEGER NOT NULL,
		PRIMARY KEY (subject_id, date)
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
// Thread-safe: acquires write lock to prevent closing during in-flight operations.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// CheckIns returns a CheckInRepository view of the store
func (s *SQLiteStore) CheckIns() CheckInRepository {
	return &sqliteCheckInRepository{store: s}
}

// PhaseTags returns a PhaseTagRepository view of the store
func (s *SQLiteStore) PhaseTags() PhaseTagRepository {
	return &sqlitePhaseTagRepository{store: s}
}

type sqliteCheckInRepository struct {
	store *SQLiteStore
}

// Create inserts a check-in. Timestamps are stored as UTC Unix nanoseconds.
func (r *sqliteCheckInRepository) Create(ctx context.Context, checkIn *models.FeelingCheckIn) (*models.FeelingCheckIn, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	created := *checkIn
	if created.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate check-in id: %w", err)
		}
		created.ID = id.String()
	}
	created.OccurredAt = created.OccurredAt.UTC()

	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO feeling_checkins (id, subject_id, category_id, label, occurred_at)
		VALUES (?, ?, ?, ?, ?)
	`, created.ID, created.SubjectID, created.CategoryID, created.Label, created.OccurredAt.UnixNano())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, fmt.Errorf("check-in %s: %w", created.ID, ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create check-in: %w", err)
	}

	return &created, nil
}

func (r *sqliteCheckInRepository) ListByRange(ctx context.Context, subjectID string, start, end time.Time) ([]models.FeelingCheckIn, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows, err := r.store.db.QueryContext(ctx, `
		SELECT id, subject_id, category_id, label, occurred_at
		FROM feeling_checkins
		WHERE subject_id = ? AND occurred_at > ? AND occurred_at <= ?
		ORDER BY occurred_at ASC, id ASC
	`, subjectID, start.UnixNano(), end.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	defer rows.Close()

	checkIns := make([]models.FeelingCheckIn, 0)
	for rows.Next() {
		var c models.FeelingCheckIn
		var occurredAt int64
		if err := rows.Scan(&c.ID, &c.SubjectID, &c.CategoryID, &c.Label, &occurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan check-in: %w", err)
		}
		c.OccurredAt = time.Unix(0, occurredAt).UTC()
		checkIns = append(checkIns, c)
	}

	return checkIns, rows.Err()
}

type sqlitePhaseTagRepository struct {
	store *SQLiteStore
}

func (r *sqlitePhaseTagRepository) Upsert(ctx context.Context, tag *models.PhaseTag) (*models.PhaseTag, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	saved := *tag
	saved.UpdatedAt = r.store.now().UTC()

	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO phase_tags (subject_id, date, phase, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(subject_id, date) DO UPDATE SET
			phase = excluded.phase,
			updated_at = excluded.updated_at
	`, saved.SubjectID, saved.Date, saved.Phase, saved.UpdatedAt.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("failed to upsert phase tag: %w", err)
	}

	return &saved, nil
}

func (r *sqlitePhaseTagRepository) ListByRange(ctx context.Context, subjectID string, startDay, endDay models.Date) ([]models.PhaseTag, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows, err := r.store.db.QueryContext(ctx, `
		SELECT subject_id, date, phase, updated_at
		FROM phase_tags
		WHERE subject_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC
	`, subjectID, startDay, endDay)
	if err != nil {
		return nil, fmt.Errorf("failed to list phase tags: %w", err)
	}
	defer rows.Close()

	tags := make([]models.PhaseTag, 0)
	for rows.Next() {
		var tag models.PhaseTag
		var updatedAt int64
		if err := rows.Scan(&tag.SubjectID, &tag.Date, &tag.Phase, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan phase tag: %w", err)
		}
		tag.UpdatedAt = time.Unix(0, updatedAt).UTC()
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}
