package healthdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"whd.healthtrends.org/internal/trend"
)

// Counts is a summary of the catalog contents.
type Counts struct {
	Indicators   int `json:"indicators"`
	Countries    int `json:"countries"`
	Series       int `json:"series"`
	Observations int `json:"observations"`
}

// ListIndicators returns every indicator name, sorted and unique.
func (c *Client) ListIndicators(ctx context.Context) ([]string, error) {
	return c.queryNames(ctx, "SELECT name FROM indicators ORDER BY name")
}

// ListCountries returns the countries that have a row for indicator, sorted and unique.
func (c *Client) ListCountries(ctx context.Context, indicator string) ([]string, error) {
	return c.queryNames(ctx, `
		SELECT c.name
		FROM series s
		JOIN indicators i ON i.id = s.indicator_id
		JOIN countries c ON c.id = s.country_id
		WHERE i.name = ?
		ORDER BY c.name`, indicator)
}

func (c *Client) queryNames(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// GetObservations returns the stored values of one series ordered by year.
// The series is empty when the pair is unknown.
func (c *Client) GetObservations(ctx context.Context, indicator, country string) (trend.Series, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT o.year, o.value
		FROM observations o
		JOIN indicators i ON i.id = o.indicator_id
		JOIN countries c ON c.id = o.country_id
		WHERE i.name = ? AND c.name = ?
		ORDER BY o.year`, indicator, country)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	series := trend.Series{}
	for rows.Next() {
		var year int
		var value float64
		if err := rows.Scan(&year, &value); err != nil {
			return nil, err
		}
		series = append(series, trend.SeriesPoint{Year: strconv.Itoa(year), Value: value})
	}
	return series, rows.Err()
}

// Counts returns the number of rows in each catalog table.
func (c *Client) Counts(ctx context.Context) (Counts, error) {
	var counts Counts
	targets := []struct {
		table string
		dest  *int
	}{
		{"indicators", &counts.Indicators},
		{"countries", &counts.Countries},
		{"series", &counts.Series},
		{"observations", &counts.Observations},
	}
	for _, t := range targets {
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", t.table)
		if err := c.DB.QueryRowContext(ctx, query).Scan(t.dest); err != nil {
			return Counts{}, fmt.Errorf("count %s: %w", t.table, err)
		}
	}
	return counts, nil
}

// LastImport returns the source and time of the latest import. ok is false
// when nothing was imported yet.
func (c *Client) LastImport(ctx context.Context) (source string, at time.Time, ok bool, err error) {
	var unix int64
	err = c.DB.QueryRowContext(ctx, "SELECT source, imported_at FROM import_metadata WHERE id = 1").Scan(&source, &unix)
	if errors.Is(err, sql.ErrNoRows) {
		return "", time.Time{}, false, nil
	}
	if err != nil {
		return "", time.Time{}, false, err
	}
	return source, time.Unix(unix, 0), true, nil
}
