// Package storage archives completed drafts in SQLite.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/malexanderboyd/pwr9-botdr4ft/internal/card"
)

var ErrDraftNotFound = errors.New("draft not found")

// Pick is one archived card transfer.
type Pick struct {
	Round  int       `json:"round"`
	Turn   int       `json:"turn"`
	SeatID int       `json:"seatId"`
	Card   card.Card `json:"card"`
}

// Draft is a completed draft with its full pick log.
type Draft struct {
	ID          string    `json:"id"`
	SetCode     string    `json:"setCode"`
	CompletedAt time.Time `json:"completedAt"`
	Picks       []Pick    `json:"picks,omitempty"`
}

type Summary struct {
	ID          string    `json:"id"`
	SetCode     string    `json:"setCode"`
	CompletedAt time.Time `json:"completedAt"`
	PickCount   int       `json:"pickCount"`
}

type Store struct {
	conn *sql.DB
}

// Open migrates and opens the archive at path, creating the file if needed.
func Open(path string) (*Store, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	if err := migrateUp(abs); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", abs+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// one writer at a time
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{conn: conn}, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

// SaveDraft writes the draft and its picks in one transaction.
func (s *Store) SaveDraft(ctx context.Context, d Draft) (err error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO drafts (id, set_code, completed_at) VALUES (?, ?, ?)`,
		d.ID, d.SetCode, d.CompletedAt.UTC(),
	); err != nil {
		return fmt.Errorf("insert draft: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO draft_picks
			(draft_id, seq, round, turn, seat_id, catalog_id, instance_id, card_name, rarity, foil, bonus, card_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare pick insert: %w", err)
	}
	defer stmt.Close()

	for seq, p := range d.Picks {
		cardJSON, err := json.Marshal(p.Card)
		if err != nil {
			return fmt.Errorf("encode card %s: %w", p.Card.InstanceID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			d.ID, seq, p.Round, p.Turn, p.SeatID,
			p.Card.CatalogID, p.Card.InstanceID, p.Card.Name, string(p.Card.Rarity),
			p.Card.Foil, p.Card.Bonus, string(cardJSON),
		); err != nil {
			return fmt.Errorf("insert pick %d: %w", seq, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit draft: %w", err)
	}
	return nil
}

// ListDrafts returns the most recently completed drafts first.
func (s *Store) ListDrafts(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.conn.QueryContext(ctx, `
		SELECT d.id, d.set_code, d.completed_at, COUNT(p.seq)
		FROM drafts d
		LEFT JOIN draft_picks p ON p.draft_id = d.id
		GROUP BY d.id
		ORDER BY d.completed_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query drafts: %w", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.SetCode, &sum.CompletedAt, &sum.PickCount); err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// GetPicks returns the picks of one seat in pick order, or of every seat when seatID is
// negative.
func (s *Store) GetPicks(ctx context.Context, draftID string, seatID int) ([]Pick, error) {
	var exists int
	err := s.conn.QueryRowContext(ctx, `SELECT 1 FROM drafts WHERE id = ?`, draftID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrDraftNotFound, draftID)
	}
	if err != nil {
		return nil, fmt.Errorf("query draft: %w", err)
	}

	rows, err := s.conn.QueryContext(ctx, `
		SELECT round, turn, seat_id, card_json
		FROM draft_picks
		WHERE draft_id = ? AND (? < 0 OR seat_id = ?)
		ORDER BY seq`, draftID, seatID, seatID)
	if err != nil {
		return nil, fmt.Errorf("query picks: %w", err)
	}
	defer rows.Close()

	picks := []Pick{}
	for rows.Next() {
		var p Pick
		var cardJSON string
		if err := rows.Scan(&p.Round, &p.Turn, &p.SeatID, &cardJSON); err != nil {
			return nil, fmt.Errorf("scan pick: %w", err)
		}
		if err := json.Unmarshal([]byte(cardJSON), &p.Card); err != nil {
			return nil, fmt.Errorf("decode card: %w", err)
		}
		picks = append(picks, p)
	}
	return picks, rows.Err()
}
