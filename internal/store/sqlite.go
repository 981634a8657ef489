// Package store persists tasks, captures, and the generations log in
// sqlite. The generations table doubles as the ratings log the learning
// engine reads.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"quickcap/internal/domain"
)

//go:embed schema.sql
var schema string

// Store handles database operations
type Store struct {
	db *sql.DB
}

// New creates a new Store with the given database path
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// AddTask persists a parsed task and returns the stored record.
func (s *Store) AddTask(parsed domain.ParsedTask) (*domain.Task, error) {
	id := uuid.New().String()
	now := time.Now()

	tags, err := json.Marshal(parsed.Tags)
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT INTO tasks (id, text, date, time, duration, priority, tags, project_id, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		id, parsed.Text, parsed.Date, parsed.Time, parsed.Duration, string(parsed.Priority), string(tags), parsed.ProjectID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	return &domain.Task{
		ID:        id,
		Text:      parsed.Text,
		Date:      parsed.Date,
		Time:      parsed.Time,
		Duration:  parsed.Duration,
		Priority:  parsed.Priority,
		Tags:      parsed.Tags,
		ProjectID: parsed.ProjectID,
		CreatedAt: now,
	}, nil
}

// ListTasks returns recent tasks, newest first.
func (s *Store) ListTasks(limit, offset int) ([]domain.Task, error) {
	rows, err := s.db.Query(
		"SELECT id, text, date, time, duration, priority, tags, project_id, done, created_at FROM tasks ORDER BY created_at DESC LIMIT ? OFFSET ?",
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		var tags string
		if err := rows.Scan(&t.ID, &t.Text, &t.Date, &t.Time, &t.Duration, &t.Priority, &tags, &t.ProjectID, &t.Done, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
		tasks = append(tasks, t)
	}

	return tasks, nil
}

// AddCapture persists an idea, income, or expense capture.
func (s *Store) AddCapture(typ domain.CaptureType, content string, amountCents int64, sourceURL string) (*domain.Capture, error) {
	id := uuid.New().String()
	now := time.Now()

	_, err := s.db.Exec(
		"INSERT INTO captures (id, type, content, amount_cents, source_url, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		id, string(typ), content, amountCents, sourceURL, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert capture: %w", err)
	}

	return &domain.Capture{
		ID:          id,
		Type:        typ,
		Content:     content,
		AmountCents: amountCents,
		SourceURL:   sourceURL,
		CreatedAt:   now,
	}, nil
}

// ListCaptures returns recent captures, optionally filtered by type.
func (s *Store) ListCaptures(typ domain.CaptureType, limit int) ([]domain.Capture, error) {
	query := "SELECT id, type, content, amount_cents, source_url, created_at FROM captures"
	args := []interface{}{}
	if typ != "" {
		query += " WHERE type = ?"
		args = append(args, string(typ))
	}
	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list captures: %w", err)
	}
	defer rows.Close()

	var captures []domain.Capture
	for rows.Next() {
		var c domain.Capture
		if err := rows.Scan(&c.ID, &c.Type, &c.Content, &c.AmountCents, &c.SourceURL, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan capture: %w", err)
		}
		captures = append(captures, c)
	}

	return captures, nil
}

// AddGeneration appends a generation attempt to the log, unrated.
func (s *Store) AddGeneration(userID, contentType, topic, prompt, output string, score int) (*domain.Generation, error) {
	id := uuid.New().String()
	now := time.Now()

	_, err := s.db.Exec(
		"INSERT INTO generations (id, user_id, content_type, topic, prompt, output, score, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		id, userID, contentType, topic, prompt, output, score, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert generation: %w", err)
	}

	return &domain.Generation{
		RatedGeneration: domain.RatedGeneration{
			ID:          id,
			UserID:      userID,
			ContentType: contentType,
			CreatedAt:   now,
		},
		Topic:  topic,
		Output: output,
		Score:  score,
	}, nil
}

// RateGeneration records the user's rating and feedback tags for one
// generation. The only writer of rating data.
func (s *Store) RateGeneration(id string, rating float64, feedbackTags []string) error {
	tags, err := json.Marshal(feedbackTags)
	if err != nil {
		return fmt.Errorf("marshal feedback tags: %w", err)
	}

	res, err := s.db.Exec(
		"UPDATE generations SET rating = ?, feedback_tags = ? WHERE id = ?",
		rating, string(tags), id,
	)
	if err != nil {
		return fmt.Errorf("rate generation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("generation not found: %s", id)
	}
	return nil
}

// ListGenerations returns recent generation attempts, newest first.
func (s *Store) ListGenerations(userID string, limit int) ([]domain.Generation, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, content_type, topic, output, score, rating, feedback_tags, created_at FROM generations WHERE user_id = ? ORDER BY created_at DESC LIMIT ?",
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	defer rows.Close()

	var gens []domain.Generation
	for rows.Next() {
		var g domain.Generation
		var rating sql.NullFloat64
		var tags sql.NullString
		if err := rows.Scan(&g.ID, &g.UserID, &g.ContentType, &g.Topic, &g.Output, &g.Score, &rating, &tags, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan generation: %w", err)
		}
		if rating.Valid {
			g.Rating = &rating.Float64
		}
		if tags.Valid {
			if err := json.Unmarshal([]byte(tags.String), &g.FeedbackTags); err != nil {
				return nil, fmt.Errorf("unmarshal feedback tags: %w", err)
			}
		}
		gens = append(gens, g)
	}

	return gens, nil
}

// GetGeneration retrieves one generation by ID.
func (s *Store) GetGeneration(id string) (*domain.Generation, error) {
	var g domain.Generation
	var rating sql.NullFloat64
	var tags sql.NullString
	err := s.db.QueryRow(
		"SELECT id, user_id, content_type, topic, output, score, rating, feedback_tags, created_at FROM generations WHERE id = ?",
		id,
	).Scan(&g.ID, &g.UserID, &g.ContentType, &g.Topic, &g.Output, &g.Score, &rating, &tags, &g.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get generation: %w", err)
	}
	if rating.Valid {
		g.Rating = &rating.Float64
	}
	if tags.Valid {
		if err := json.Unmarshal([]byte(tags.String), &g.FeedbackTags); err != nil {
			return nil, fmt.Errorf("unmarshal feedback tags: %w", err)
		}
	}
	return &g, nil
}

// FetchRated implements learning.RatedLog: rated rows only, newest
// first, optionally restricted to a set of content types.
func (s *Store) FetchRated(ctx context.Context, userID string, contentTypes []string, limit int) ([]domain.RatedGeneration, error) {
	query := "SELECT id, user_id, content_type, rating, feedback_tags, created_at FROM generations WHERE user_id = ? AND rating IS NOT NULL"
	args := []interface{}{userID}
	if len(contentTypes) > 0 {
		query += " AND content_type IN (?" + strings.Repeat(", ?", len(contentTypes)-1) + ")"
		for _, t := range contentTypes {
			args = append(args, t)
		}
	}
	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch rated generations: %w", err)
	}
	defer rows.Close()

	var gens []domain.RatedGeneration
	for rows.Next() {
		var g domain.RatedGeneration
		var rating sql.NullFloat64
		var tags sql.NullString
		if err := rows.Scan(&g.ID, &g.UserID, &g.ContentType, &rating, &tags, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan rated generation: %w", err)
		}
		if rating.Valid {
			g.Rating = &rating.Float64
		}
		if tags.Valid {
			if err := json.Unmarshal([]byte(tags.String), &g.FeedbackTags); err != nil {
				return nil, fmt.Errorf("unmarshal feedback tags: %w", err)
			}
		}
		gens = append(gens, g)
	}

	return gens, nil
}
