package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/elga-energy/axiom/internal/domain"
	"github.com/elga-energy/axiom/internal/shared"
	_ "modernc.org/sqlite"
)

const (
	maxWriteRetries = 3
	writeRetryDelay = 50 * time.Millisecond
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS candidate_sessions (
		session_id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		name TEXT,
		phase TEXT NOT NULL DEFAULT 'axiom',
		current_bloc INTEGER NOT NULL DEFAULT 1,
		axiom_synthesis TEXT,
		matching_result TEXT,
		progress_json TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		completed_at INTEGER
	);

	CREATE TABLE IF NOT EXISTS conversation_messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		bloc INTEGER NOT NULL DEFAULT 0,
		phase TEXT NOT NULL DEFAULT 'axiom',
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_messages_session ON conversation_messages(session_id, phase);

	CREATE TABLE IF NOT EXISTS behavior_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		event_data TEXT,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_events_session ON behavior_events(session_id);

	CREATE TABLE IF NOT EXISTS recruiter_notifications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		candidate_email TEXT NOT NULL,
		candidate_name TEXT,
		notification_type TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		error_message TEXT,
		created_at INTEGER NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// exec runs a write statement, retrying a few times on SQLite
// concurrency conflicts (SQLITE_BUSY / "database is locked").
func (s *SQLiteStore) exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	var result sql.Result
	var err error

	for attempt := 0; attempt < maxWriteRetries; attempt++ {
		result, err = s.db.ExecContext(ctx, query, args...)
		if err == nil || !shared.IsSQLiteConflictError(err) {
			return result, err
		}

		slog.Warn("SQLite write conflict, retrying", "attempt", attempt+1, "error", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(writeRetryDelay * time.Duration(attempt+1)):
		}
	}

	return result, err
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateSession persists a new candidate session.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *domain.Session) error {
	progressJSON, err := marshalProgress(session.Progress)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO candidate_sessions (
		session_id, email, name, phase, current_bloc,
		axiom_synthesis, matching_result, progress_json,
		created_at, updated_at, completed_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.exec(ctx, query,
		session.SessionID, session.Email, nullString(session.Name),
		string(session.Phase), session.CurrentBloc,
		nullString(session.AxiomSynthesis), nullString(session.MatchingResult),
		progressJSON,
		session.CreatedAt.Unix(), session.UpdatedAt.Unix(), nullTime(session.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by its token.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	query := `
		SELECT session_id, email, name, phase, current_bloc,
		       axiom_synthesis, matching_result, progress_json,
		       created_at, updated_at, completed_at
		FROM candidate_sessions WHERE session_id = ?`

	return scanSession(s.db.QueryRowContext(ctx, query, sessionID))
}

// UpdateSession applies a partial update and returns the updated row.
func (s *SQLiteStore) UpdateSession(ctx context.Context, sessionID string, update SessionUpdate) (*domain.Session, error) {
	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().Unix()}

	if update.Phase != nil {
		sets = append(sets, "phase = ?")
		args = append(args, string(*update.Phase))
	}
	if update.CurrentBloc != nil {
		sets = append(sets, "current_bloc = ?")
		args = append(args, *update.CurrentBloc)
	}
	if update.AxiomSynthesis != nil {
		sets = append(sets, "axiom_synthesis = ?")
		args = append(args, *update.AxiomSynthesis)
	}
	if update.MatchingResult != nil {
		sets = append(sets, "matching_result = ?")
		args = append(args, *update.MatchingResult)
	}
	if update.Progress != nil {
		progressJSON, err := marshalProgress(update.Progress)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "progress_json = ?")
		args = append(args, progressJSON)
	}
	if update.CompletedAt != nil {
		sets = append(sets, "completed_at = ?")
		args = append(args, update.CompletedAt.Unix())
	}

	query := "UPDATE candidate_sessions SET " + strings.Join(sets, ", ") + " WHERE session_id = ?"
	args = append(args, sessionID)

	result, err := s.exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, nil
	}

	return s.GetSession(ctx, sessionID)
}

// AppendMessage appends one conversation turn.
func (s *SQLiteStore) AppendMessage(ctx context.Context, msg *domain.Message) error {
	query := `
	INSERT INTO conversation_messages (session_id, role, content, bloc, phase, created_at)
	VALUES (?, ?, ?, ?, ?, ?)`

	_, err := s.exec(ctx, query,
		msg.SessionID, string(msg.Role), msg.Content,
		msg.Bloc, string(msg.Phase), msg.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// GetHistory returns a session's messages in creation order.
func (s *SQLiteStore) GetHistory(ctx context.Context, sessionID string, phase domain.Phase) ([]*domain.Message, error) {
	query := `
		SELECT session_id, role, content, bloc, phase, created_at
		FROM conversation_messages WHERE session_id = ?`
	args := []interface{}{sessionID}

	if phase != "" {
		query += ` AND phase = ?`
		args = append(args, string(phase))
	}
	query += ` ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close history rows", "error", closeErr)
		}
	}()

	var messages []*domain.Message
	for rows.Next() {
		var msg domain.Message
		var role, msgPhase string
		var createdAt int64

		if err := rows.Scan(&msg.SessionID, &role, &msg.Content, &msg.Bloc, &msgPhase, &createdAt); err != nil {
			return nil, fmt.Errorf("scan message row: %w", err)
		}

		msg.Role = domain.Role(role)
		msg.Phase = domain.Phase(msgPhase)
		msg.CreatedAt = time.Unix(createdAt, 0)
		messages = append(messages, &msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	return messages, nil
}

// TrackEvent records a behavior event.
func (s *SQLiteStore) TrackEvent(ctx context.Context, event *domain.BehaviorEvent) error {
	query := `
	INSERT INTO behavior_events (session_id, event_type, event_data, created_at)
	VALUES (?, ?, ?, ?)`

	_, err := s.exec(ctx, query,
		event.SessionID, string(event.EventType),
		nullString(event.EventData), event.Timestamp.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert behavior event: %w", err)
	}
	return nil
}

// CreateNotification records a recruiter notification.
func (s *SQLiteStore) CreateNotification(ctx context.Context, n *domain.RecruiterNotification) (int64, error) {
	query := `
	INSERT INTO recruiter_notifications (
		session_id, candidate_email, candidate_name, notification_type, status, error_message, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := s.exec(ctx, query,
		n.SessionID, n.CandidateEmail, nullString(n.CandidateName),
		string(n.Type), string(n.Status), nullString(n.ErrorMessage),
		n.CreatedAt.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert notification: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get notification id: %w", err)
	}
	return id, nil
}

// UpdateNotificationStatus advances a notification's delivery status.
func (s *SQLiteStore) UpdateNotificationStatus(ctx context.Context, id int64, status domain.NotificationStatus, errMsg string) error {
	query := `UPDATE recruiter_notifications SET status = ?, error_message = ? WHERE id = ?`
	result, err := s.exec(ctx, query, string(status), nullString(errMsg), id)
	if err != nil {
		return fmt.Errorf("update notification: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		slog.Warn("UpdateNotificationStatus affected 0 rows", "id", id)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

func scanSession(row *sql.Row) (*domain.Session, error) {
	var session domain.Session
	var name, synthesis, matching, progressJSON sql.NullString
	var phase string
	var createdAt, updatedAt int64
	var completedAt sql.NullInt64

	err := row.Scan(
		&session.SessionID, &session.Email, &name, &phase, &session.CurrentBloc,
		&synthesis, &matching, &progressJSON,
		&createdAt, &updatedAt, &completedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan session row: %w", err)
	}

	session.Name = name.String
	session.Phase = domain.Phase(phase)
	session.AxiomSynthesis = synthesis.String
	session.MatchingResult = matching.String
	session.CreatedAt = time.Unix(createdAt, 0)
	session.UpdatedAt = time.Unix(updatedAt, 0)

	if completedAt.Valid {
		ts := time.Unix(completedAt.Int64, 0)
		session.CompletedAt = &ts
	}
	if progressJSON.Valid && progressJSON.String != "" {
		var progress domain.ScriptProgress
		if err := json.Unmarshal([]byte(progressJSON.String), &progress); err != nil {
			return nil, fmt.Errorf("decode script progress: %w", err)
		}
		session.Progress = &progress
	}

	return &session, nil
}

func marshalProgress(p *domain.ScriptProgress) (interface{}, error) {
	if p == nil {
		return nil, nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode script progress: %w", err)
	}
	return string(data), nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Unix()
}
