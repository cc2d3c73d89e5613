package healthdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"whd.healthtrends.org/internal/logging"
	"whd.healthtrends.org/internal/trend"
)

type seriesKey struct {
	indicator string
	country   string
}

// ImportTable replaces the catalog contents with table in one transaction.
// When the same indicator and country appear more than once only the first
// row is kept, matching trend.FindRow.
func (c *Client) ImportTable(ctx context.Context, source string, table trend.Table) (err error) {
	startTime := time.Now()
	defer func() {
		runtime := time.Since(startTime)
		c.importRuntime.Store(int64(runtime))
		if c.config.verbose {
			logging.LogOperation(c.logger, "catalog_import_completed",
				slog.String("source", source),
				slog.Int("rows", len(table)),
				slog.Duration("duration", runtime))
		}
	}()

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "catalog_import")

	for _, stmt := range []string{
		"DELETE FROM observations",
		"DELETE FROM series",
		"DELETE FROM countries",
		"DELETE FROM indicators",
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error clearing catalog: %w", err)
		}
	}

	ins, err := newInserter(ctx, tx)
	if err != nil {
		return err
	}
	defer ins.close()

	seen := make(map[seriesKey]bool)
	for i, row := range table {
		key := seriesKey{row.Indicator(), row.Country()}
		if key.indicator == "" || key.country == "" || seen[key] {
			continue
		}
		seen[key] = true

		if err := ins.series(ctx, i, row); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO import_metadata (id, source, imported_at) VALUES (1, ?, ?)",
		source, time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("error recording import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

// inserter holds the prepared statements of one import and caches name ids.
type inserter struct {
	indicator   *sql.Stmt
	country     *sql.Stmt
	seriesRow   *sql.Stmt
	observation *sql.Stmt

	indicatorIDs map[string]int64
	countryIDs   map[string]int64
}

func newInserter(ctx context.Context, tx *sql.Tx) (*inserter, error) {
	ins := &inserter{
		indicatorIDs: make(map[string]int64),
		countryIDs:   make(map[string]int64),
	}

	var err error
	prepare := func(query string) *sql.Stmt {
		if err != nil {
			return nil
		}
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx, query)
		return stmt
	}
	ins.indicator = prepare("INSERT INTO indicators (name) VALUES (?)")
	ins.country = prepare("INSERT INTO countries (name) VALUES (?)")
	ins.seriesRow = prepare("INSERT INTO series (indicator_id, country_id, source_row) VALUES (?, ?, ?)")
	ins.observation = prepare("INSERT INTO observations (indicator_id, country_id, year, value) VALUES (?, ?, ?, ?)")
	if err != nil {
		ins.close()
		return nil, fmt.Errorf("error preparing statement: %w", err)
	}
	return ins, nil
}

func (ins *inserter) close() {
	for _, stmt := range []*sql.Stmt{ins.indicator, ins.country, ins.seriesRow, ins.observation} {
		if stmt != nil {
			_ = stmt.Close()
		}
	}
}

func (ins *inserter) series(ctx context.Context, sourceRow int, row trend.Row) error {
	indicatorID, err := ins.nameID(ctx, ins.indicator, ins.indicatorIDs, row.Indicator())
	if err != nil {
		return fmt.Errorf("error inserting indicator: %w", err)
	}
	countryID, err := ins.nameID(ctx, ins.country, ins.countryIDs, row.Country())
	if err != nil {
		return fmt.Errorf("error inserting country: %w", err)
	}

	if _, err := ins.seriesRow.ExecContext(ctx, indicatorID, countryID, sourceRow); err != nil {
		return fmt.Errorf("error inserting series: %w", err)
	}

	for _, year := range trend.YearColumns {
		v, ok := trend.ParseCell(row[year])
		if !ok {
			continue
		}
		y, _ := strconv.Atoi(year)
		if _, err := ins.observation.ExecContext(ctx, indicatorID, countryID, y, v); err != nil {
			return fmt.Errorf("error inserting observation: %w", err)
		}
	}
	return nil
}

func (ins *inserter) nameID(ctx context.Context, stmt *sql.Stmt, cache map[string]int64, name string) (int64, error) {
	if id, ok := cache[name]; ok {
		return id, nil
	}
	res, err := stmt.ExecContext(ctx, name)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	cache[name] = id
	return id, nil
}
