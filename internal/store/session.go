package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/ayusman/poseplay/internal/game"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Session is a finished game stored in the database.
type Session struct {
	ID        string        `json:"id"`
	Score     int           `json:"score"`
	Jumps     int           `json:"jumps"`
	Duration  time.Duration `json:"duration"`
	StartedAt time.Time     `json:"started_at"`
	EndedAt   time.Time     `json:"ended_at"`
}

// FromResult converts a game result into a storable session.
func FromResult(r game.Result) *Session {
	return &Session{
		ID:        r.SessionID,
		Score:     r.Score,
		Jumps:     r.Jumps,
		Duration:  r.Duration,
		StartedAt: r.StartedAt,
		EndedAt:   r.EndedAt,
	}
}

// SessionRepository provides access to stored sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Create inserts a finished session.
func (r *SessionRepository) Create(sess *Session) error {
	_, err := r.db.Exec(
		`INSERT INTO sessions (id, score, jumps, duration_ms, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.Score, sess.Jumps, sess.Duration.Milliseconds(), sess.StartedAt.UTC(), sess.EndedAt.UTC(),
	)
	return err
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	row := r.db.QueryRow(
		`SELECT id, score, jumps, duration_ms, started_at, ended_at
		 FROM sessions WHERE id = ?`,
		id,
	)

	sess, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sess, nil
}

// Top returns the highest scoring sessions, best first. Ties go to the
// earlier session.
func (r *SessionRepository) Top(limit int) ([]*Session, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.Query(
		`SELECT id, score, jumps, duration_ms, started_at, ended_at
		 FROM sessions ORDER BY score DESC, ended_at ASC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// Best returns the highest score recorded, or 0 when there are no sessions.
func (r *SessionRepository) Best() (int, error) {
	var best sql.NullInt64
	if err := r.db.QueryRow(`SELECT MAX(score) FROM sessions`).Scan(&best); err != nil {
		return 0, err
	}
	return int(best.Int64), nil
}

// Count returns the number of stored sessions.
func (r *SessionRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(s scanner) (*Session, error) {
	sess := &Session{}
	var durationMS int64

	err := s.Scan(&sess.ID, &sess.Score, &sess.Jumps, &durationMS, &sess.StartedAt, &sess.EndedAt)
	if err != nil {
		return nil, err
	}

	sess.Duration = time.Duration(durationMS) * time.Millisecond
	return sess, nil
}
