package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dylan/spotlight/tour"
)

// sqlStore is shared by the SQLite and Postgres backends. Queries are
// written with ? placeholders and rebound for the dialect.
type sqlStore struct {
	db       *sql.DB
	log      *zap.Logger
	numbered bool // $1-style placeholders
	now      func() time.Time
}

func (s *sqlStore) q(query string) string {
	if !s.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *sqlStore) read(ctx context.Context, f tour.Feature) (completed, reshow bool, err error) {
	row := s.db.QueryRowContext(ctx,
		s.q(`SELECT completed, force_reshow FROM tour_completions WHERE feature = ?`), string(f))
	err = row.Scan(&completed, &reshow)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("reading completion for %s: %w", f, err)
	}
	return completed, reshow, nil
}

func (s *sqlStore) HasCompleted(ctx context.Context, f tour.Feature) (bool, error) {
	done, _, err := s.read(ctx, f)
	return done, err
}

func (s *sqlStore) ShouldReshow(ctx context.Context, f tour.Feature) (bool, error) {
	_, reshow, err := s.read(ctx, f)
	return reshow, err
}

func (s *sqlStore) MarkCompleted(ctx context.Context, f tour.Feature) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO tour_completions (feature, completed, force_reshow, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (feature) DO UPDATE SET
			completed = excluded.completed,
			force_reshow = excluded.force_reshow,
			updated_at = excluded.updated_at`),
		string(f), true, false, s.now().UnixMilli())
	if err != nil {
		s.log.Error("MarkCompleted failed", zap.String("feature", string(f)), zap.Error(err))
		return fmt.Errorf("marking %s completed: %w", f, err)
	}
	s.log.Debug("MarkCompleted succeeded", zap.String("feature", string(f)))
	return nil
}

func (s *sqlStore) RequestReshow(ctx context.Context, f tour.Feature) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO tour_completions (feature, completed, force_reshow, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (feature) DO UPDATE SET
			force_reshow = excluded.force_reshow,
			updated_at = excluded.updated_at`),
		string(f), false, true, s.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("requesting reshow of %s: %w", f, err)
	}
	return nil
}

func (s *sqlStore) Reset(ctx context.Context, f tour.Feature) error {
	if _, err := s.db.ExecContext(ctx, s.q(`DELETE FROM tour_completions WHERE feature = ?`), string(f)); err != nil {
		return fmt.Errorf("resetting %s: %w", f, err)
	}
	return nil
}

func (s *sqlStore) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT feature, completed, force_reshow, updated_at FROM tour_completions ORDER BY feature`)
	if err != nil {
		return nil, fmt.Errorf("listing completions: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r       Record
			feature string
			updated int64
		)
		if err := rows.Scan(&feature, &r.Completed, &r.ForceReshow, &updated); err != nil {
			return nil, fmt.Errorf("scanning completion row: %w", err)
		}
		r.Feature = tour.Feature(feature)
		r.UpdatedAt = time.UnixMilli(updated).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}
