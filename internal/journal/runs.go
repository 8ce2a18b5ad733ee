package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kinds of recorded runs.
const (
	KindConcat   = "concat"
	KindSubtitle = "subtitle"
)

// Run is one recorded pipeline invocation.
type Run struct {
	ID         string
	Kind       string
	StartedAt  time.Time
	FinishedAt *time.Time
	Succeeded  int
	Failed     int
	Skipped    int
	Detail     string
}

// Summary carries the final counters written when a run finishes.
type Summary struct {
	Succeeded int
	Failed    int
	Skipped   int
	Detail    string
}

// VideoRecord is one per-video outcome within a run.
type VideoRecord struct {
	RunID        string
	Video        string
	Title        string
	Status       string
	Detail       string
	Cues         int
	SubtitlePath string
	OutputPath   string
	Elapsed      time.Duration
}

// StartRun inserts a new run row and returns it.
func (s *Store) StartRun(ctx context.Context, kind string) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		Kind:      kind,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, kind, started_at) VALUES (?, ?, ?)",
		run.ID, run.Kind, run.StartedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// FinishRun stamps the run finished and stores its counters.
func (s *Store) FinishRun(ctx context.Context, runID string, summary Summary) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE runs SET finished_at = ?, succeeded = ?, failed = ?, skipped = ?, detail = ? WHERE id = ?",
		time.Now().UTC().Format(time.RFC3339Nano),
		summary.Succeeded,
		summary.Failed,
		summary.Skipped,
		nullableString(summary.Detail),
		runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("finish run: unknown run %s", runID)
	}
	return nil
}

// RecordVideo appends one per-video outcome to its run.
func (s *Store) RecordVideo(ctx context.Context, rec VideoRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO run_videos (run_id, video, title, status, detail, cues, subtitle_path, output_path, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID,
		rec.Video,
		nullableString(rec.Title),
		rec.Status,
		nullableString(rec.Detail),
		rec.Cues,
		nullableString(rec.SubtitlePath),
		nullableString(rec.OutputPath),
		rec.Elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("record video: %w", err)
	}
	return nil
}

// GetRun returns a single run, or nil when the id is unknown.
func (s *Store) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, kind, started_at, finished_at, succeeded, failed, skipped, detail
		 FROM runs WHERE id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, started_at, finished_at, succeeded, failed, skipped, detail
		 FROM runs ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// RunVideos returns the per-video outcomes for a run in insertion order.
func (s *Store) RunVideos(ctx context.Context, runID string) ([]VideoRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, video, title, status, detail, cues, subtitle_path, output_path, elapsed_ms
		 FROM run_videos WHERE run_id = ? ORDER BY id ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("list run videos: %w", err)
	}
	defer rows.Close()

	var records []VideoRecord
	for rows.Next() {
		var (
			rec          VideoRecord
			title        sql.NullString
			detail       sql.NullString
			subtitlePath sql.NullString
			outputPath   sql.NullString
			elapsedMS    int64
		)
		if err := rows.Scan(&rec.RunID, &rec.Video, &title, &rec.Status, &detail, &rec.Cues, &subtitlePath, &outputPath, &elapsedMS); err != nil {
			return nil, fmt.Errorf("scan run video: %w", err)
		}
		rec.Title = title.String
		rec.Detail = detail.String
		rec.SubtitlePath = subtitlePath.String
		rec.OutputPath = outputPath.String
		rec.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		id          string
		kind        string
		startedRaw  string
		finishedRaw sql.NullString
		succeeded   int
		failed      int
		skipped     int
		detail      sql.NullString
	)
	if err := scanner.Scan(&id, &kind, &startedRaw, &finishedRaw, &succeeded, &failed, &skipped, &detail); err != nil {
		return nil, err
	}

	run := &Run{
		ID:        id,
		Kind:      kind,
		Succeeded: succeeded,
		Failed:    failed,
		Skipped:   skipped,
		Detail:    detail.String,
	}
	if started, err := parseTimeString(startedRaw); err == nil {
		run.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := parseTimeString(finishedRaw.String); err == nil {
			run.FinishedAt = &finished
		}
	}
	return run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
