package datastore

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"fwwatch/internal/common/errorwrapper"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// HistoryStore wraps the SQL database connection holding the ledger of
// detected transitions. It records what the watcher observed; watcher state
// is never restored from it, a restart re-establishes its baseline.
type HistoryStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// CheckHistoryEntry represents a record in the check_history table
type CheckHistoryEntry struct {
	ID           int64
	CheckedAt    time.Time
	Outcome      string
	Fingerprint  string
	ArtifactLink string
	Detail       string
}

// NewHistoryStore initializes a new store and ensures the schema is set up
func NewHistoryStore(dataSourceName string, logger zerolog.Logger) (*HistoryStore, error) {
	storeLogger := logger.With().Str("component", "HistoryStore").Logger()
	storeLogger.Info().Str("db_path", dataSourceName).Msg("Initializing history database connection")

	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to create history database directory "+dbDir)
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "sql.Open failed for "+dataSourceName)
	}

	store := &HistoryStore{
		db:     dbInstance,
		logger: storeLogger,
	}

	if err := store.initSchema(); err != nil {
		_ = store.Close()
		return nil, errorwrapper.WrapError(err, "failed to initialize schema")
	}
	return store, nil
}

// Close closes the database connection
func (s *HistoryStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *HistoryStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS check_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		checked_at DATETIME NOT NULL,
		outcome TEXT NOT NULL,
		fingerprint TEXT,
		artifact_link TEXT,
		detail TEXT
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		s.logger.Error().Err(err).Msg("Failed to initialize schema")
		return err
	}
	return nil
}

// RecordCheck inserts a ledger row for a non-unchanged check outcome
func (s *HistoryStore) RecordCheck(outcome, fingerprint, link, detail string, checkedAt time.Time) error {
	query := `INSERT INTO check_history (checked_at, outcome, fingerprint, artifact_link, detail) VALUES (?, ?, ?, ?, ?)`
	_, err := s.db.Exec(query, checkedAt, outcome, fingerprint, link,
		sql.NullString{String: detail, Valid: detail != ""})
	if err != nil {
		s.logger.Error().Err(err).Str("outcome", outcome).Msg("Failed to record check")
		return errorwrapper.WrapError(err, "failed to insert check record")
	}

	s.logger.Debug().Str("outcome", outcome).Str("link", link).Msg("Recorded check in history")
	return nil
}

// RecentChecks returns up to limit entries, newest first
func (s *HistoryStore) RecentChecks(limit int) ([]CheckHistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, checked_at, outcome, fingerprint, artifact_link, detail
	FROM check_history ORDER BY checked_at DESC, id DESC LIMIT ?`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to query check history")
	}
	defer rows.Close()

	var entries []CheckHistoryEntry
	for rows.Next() {
		var entry CheckHistoryEntry
		var fingerprint, link, detail sql.NullString
		if err := rows.Scan(&entry.ID, &entry.CheckedAt, &entry.Outcome, &fingerprint, &link, &detail); err != nil {
			return nil, errorwrapper.WrapError(err, "failed to scan check history row")
		}
		entry.Fingerprint = fingerprint.String
		entry.ArtifactLink = link.String
		entry.Detail = detail.String
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// LastKnownArtifactLink returns the most recently recorded artifact link, or
// empty if the ledger holds none.
func (s *HistoryStore) LastKnownArtifactLink() (string, error) {
	query := `SELECT artifact_link FROM check_history
	WHERE artifact_link IS NOT NULL AND artifact_link != ''
	ORDER BY checked_at DESC, id DESC LIMIT 1`

	var link string
	err := s.db.QueryRow(query).Scan(&link)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errorwrapper.WrapError(err, "failed to query last known artifact link")
	}
	return link, nil
}
