package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	connectTimeout = 12 * time.Second
	queryTimeout   = 30 * time.Second
)

type AgentScoreRow struct {
	AgentName string
	Positive  int
	Negative  int
	Neutral   int
	Total     int
	// Score is nil when the database yields a null percentage
	// (zero-count denominator).
	Score *float64
}

type Report struct {
	Date time.Time
	Rows []AgentScoreRow
}

// Findings outside the three named buckets still count toward total_findings,
// so totals can exceed the bucket sum. Groups with no items are filtered out.
const agentStatsQuery = `
WITH latest_date AS (
	SELECT MAX(CAST(analysis_datetime AS DATE)) AS max_date
	FROM individual_call_analyses
)
SELECT
	a.agent_name,
	SUM(CASE WHEN iei.finding = 'Positive' THEN 1 ELSE 0 END) AS positive_findings,
	SUM(CASE WHEN iei.finding = 'Negative' THEN 1 ELSE 0 END) AS negative_findings,
	SUM(CASE WHEN iei.finding = 'Neutral' THEN 1 ELSE 0 END) AS neutral_findings,
	COUNT(iei.finding) AS total_findings,
	(
		(SUM(CASE WHEN iei.finding = 'Positive' THEN 1.0 ELSE 0 END)
			+ SUM(CASE WHEN iei.finding = 'Neutral' THEN 1.0 ELSE 0 END) / 2.0)
		/ NULLIF(COUNT(iei.finding), 0)
	) * 100 AS score_percentage,
	(SELECT max_date FROM latest_date) AS report_date
FROM individual_evaluation_items AS iei
JOIN individual_call_analyses AS ica ON iei.analysis_id = ica.analysis_id
JOIN agents AS a ON ica.agent_id = a.agent_id
WHERE CAST(ica.analysis_datetime AS DATE) = (SELECT max_date FROM latest_date)
GROUP BY a.agent_name
HAVING COUNT(iei.finding) > 0
ORDER BY a.agent_name`

// connString builds a postgres URL; url.UserPassword keeps credentials with
// spaces or punctuation intact.
func connString(cfg DatabaseConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   cfg.Server,
		Path:   "/" + cfg.Database,
	}
	return u.String()
}

func openDatabase(cfg DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", connString(cfg))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to %s on %s: %w", cfg.Database, cfg.Server, err)
	}
	return db, nil
}

// fetchAgentStats runs the aggregation for the most recent analysis date.
// A nil report with a nil error means no data exists for any date.
func fetchAgentStats(ctx context.Context, db *sql.DB) (*Report, error) {
	rows, err := db.QueryContext(ctx, agentStatsQuery)
	if err != nil {
		return nil, fmt.Errorf("query agent statistics: %w", err)
	}
	defer rows.Close()

	var report Report
	for rows.Next() {
		var (
			row        AgentScoreRow
			score      sql.NullFloat64
			reportDate sql.NullTime
		)
		if err := rows.Scan(
			&row.AgentName,
			&row.Positive,
			&row.Negative,
			&row.Neutral,
			&row.Total,
			&score,
			&reportDate,
		); err != nil {
			return nil, fmt.Errorf("scan agent statistics: %w", err)
		}
		if score.Valid {
			value := score.Float64
			row.Score = &value
		}
		if reportDate.Valid {
			report.Date = dateOnly(reportDate.Time)
		}
		report.Rows = append(report.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read agent statistics: %w", err)
	}

	if len(report.Rows) == 0 || report.Date.IsZero() {
		return nil, nil
	}
	return &report, nil
}

func dateOnly(value time.Time) time.Time {
	if value.IsZero() {
		return value
	}
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}
