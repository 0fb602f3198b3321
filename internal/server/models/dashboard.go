package models

import (
	"database/sql"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"
)

type DashboardStore struct {
	Db *sql.DB
}

// EventTrend returns one point per day over the trailing window, oldest
// first, with zero-count days filled in by the date spine
func (s DashboardStore) EventTrend(days int) ([]gateway.EventTrendPoint, error) {
	counts := map[string]int64{}
	err := executeMysqlSelects(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			SELECT DATE_FORMAT(timestamp, '%Y-%m-%d'), COUNT(*)
				FROM events
				WHERE timestamp >= DATE_SUB(CURDATE(), INTERVAL ? DAY)
				GROUP BY 1`,
		Args:     []any{days - 1},
		FnSource: "models.DashboardStore.EventTrend",
		ProcessRows: func(rows *sql.Rows) error {
			var date string
			var count int64
			if err := rows.Scan(&date, &count); err != nil {
				return err
			}
			counts[date] = count
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	trend := []gateway.EventTrendPoint{}
	err = executeMysqlSelects(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			WITH RECURSIVE spine (day) AS (
				SELECT DATE_SUB(CURDATE(), INTERVAL ? DAY)
				UNION ALL
				SELECT DATE_ADD(day, INTERVAL 1 DAY) FROM spine WHERE day < CURDATE()
			)
			SELECT DATE_FORMAT(day, '%Y-%m-%d') FROM spine ORDER BY day`,
		Args:     []any{days - 1},
		FnSource: "models.DashboardStore.EventTrend",
		ProcessRows: func(rows *sql.Rows) error {
			var date string
			if err := rows.Scan(&date); err != nil {
				return err
			}
			trend = append(trend, gateway.EventTrendPoint{Date: date, Count: counts[date]})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return trend, nil
}

// SeverityBreakdown returns alert counts per canonical severity, low to
// critical, including zero-count severities
func (s DashboardStore) SeverityBreakdown() ([]gateway.SeverityCount, error) {
	counts := map[gateway.Severity]int64{}
	err := executeMysqlSelects(mysqlQueryInput{
		Db:       s.Db,
		Stmt:     "SELECT severity, COUNT(*) FROM alerts GROUP BY severity",
		FnSource: "models.DashboardStore.SeverityBreakdown",
		ProcessRows: func(rows *sql.Rows) error {
			var severity string
			var count int64
			if err := rows.Scan(&severity, &count); err != nil {
				return err
			}
			parsed, err := gateway.ParseSeverity(severity)
			if err != nil {
				return err
			}
			counts[parsed] += count
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	breakdown := []gateway.SeverityCount{}
	for _, severity := range gateway.Severities {
		breakdown = append(breakdown, gateway.SeverityCount{Severity: severity, Count: counts[severity]})
	}
	return breakdown, nil
}

// TopSources returns the assets producing the most events, busiest
// first; events without an asset are grouped under an unnamed source
func (s DashboardStore) TopSources(limit int) ([]gateway.SourceCount, error) {
	sources := []gateway.SourceCount{}
	err := executeMysqlSelects(mysqlQueryInput{
		Db: s.Db,
		Stmt: `
			SELECT e.asset_id, COALESCE(a.name, '-'), COUNT(*) AS n
				FROM events e
				LEFT JOIN assets a ON a.id = e.asset_id
				GROUP BY e.asset_id, a.name
				ORDER BY n DESC
				LIMIT ?`,
		Args:     []any{limit},
		FnSource: "models.DashboardStore.TopSources",
		ProcessRows: func(rows *sql.Rows) error {
			var source gateway.SourceCount
			if err := rows.Scan(&source.AssetId, &source.AssetName, &source.Count); err != nil {
				return err
			}
			sources = append(sources, source)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return sources, nil
}
