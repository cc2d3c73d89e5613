// Package dataset loads the health dataset from a file or URL, keeps it in
// memory for series lookups and mirrors it into the SQLite catalog for the
// list queries. URL sources are reloaded periodically.
package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"whd.healthtrends.org/healthdb"
	"whd.healthtrends.org/internal/logging"
	"whd.healthtrends.org/internal/narrative"
	"whd.healthtrends.org/internal/trend"
)

// Manager owns the loaded dataset and its catalog.
type Manager struct {
	source      string
	isLocalFile bool
	config      Config
	logger      *slog.Logger
	httpClient  *http.Client

	mu          sync.RWMutex
	table       trend.Table
	lastUpdated time.Time

	DB *healthdb.Client

	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// Stats describes the loaded dataset.
type Stats struct {
	Source      string          `json:"source"`
	LocalFile   bool            `json:"localFile"`
	LastUpdated time.Time       `json:"lastUpdated"`
	Rows        int             `json:"rows"`
	Catalog     healthdb.Counts `json:"catalog"`
}

// InitManager loads config.Source, builds the catalog and, for URL sources,
// starts the periodic reload.
func InitManager(ctx context.Context, config Config, logger *slog.Logger) (*Manager, error) {
	isLocalFile := !strings.HasPrefix(config.Source, "http://") && !strings.HasPrefix(config.Source, "https://")

	manager := newManager(config, logger)
	manager.source = config.Source
	manager.isLocalFile = isLocalFile

	table, err := manager.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := manager.openDB(); err != nil {
		return nil, err
	}
	if err := manager.setTable(ctx, table); err != nil {
		manager.Shutdown()
		return nil, err
	}

	if !isLocalFile {
		manager.wg.Add(1)
		go manager.refreshPeriodically()
	}

	return manager, nil
}

// NewManagerFromTable builds a manager around an in-memory table. It never
// refreshes.
func NewManagerFromTable(ctx context.Context, table trend.Table, config Config, logger *slog.Logger) (*Manager, error) {
	manager := newManager(config, logger)
	manager.source = "memory"
	manager.isLocalFile = true

	if err := manager.openDB(); err != nil {
		return nil, err
	}
	if err := manager.setTable(ctx, table); err != nil {
		manager.Shutdown()
		return nil, err
	}
	return manager, nil
}

func newManager(config Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		config:       config,
		logger:       logger.With(slog.String("component", "dataset")),
		httpClient:   &http.Client{Timeout: 60 * time.Second},
		shutdownChan: make(chan struct{}),
	}
}

func (manager *Manager) openDB() error {
	dbConfig := healthdb.NewConfig(manager.config.dbPath(), manager.config.Env, manager.config.Verbose)
	client, err := healthdb.NewClient(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create catalog database: %w", err)
	}
	manager.DB = client.WithLogger(manager.logger)
	return nil
}

// Shutdown stops the reload goroutine and closes the catalog. It is safe to
// call more than once.
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		close(manager.shutdownChan)
		manager.wg.Wait()
		if manager.DB != nil {
			logging.SafeCloseWithLogging(manager.DB, manager.logger, "catalog_close")
		}
	})
}

func (manager *Manager) load(ctx context.Context) (trend.Table, error) {
	format, err := DetectFormat(manager.source)
	if err != nil {
		return nil, err
	}

	raw, err := manager.rawData(ctx)
	if err != nil {
		return nil, err
	}

	table, err := Parse(bytes.NewReader(raw), format)
	if err != nil {
		return nil, fmt.Errorf("error parsing dataset %s: %w", manager.source, err)
	}
	return table, nil
}

func (manager *Manager) rawData(ctx context.Context) (b []byte, err error) {
	if manager.isLocalFile {
		b, err = os.ReadFile(manager.source)
		if err != nil {
			return nil, fmt.Errorf("error reading local dataset: %w", err)
		}
		return b, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, manager.source, nil)
	if err != nil {
		return nil, fmt.Errorf("error building dataset request: %w", err)
	}
	resp, err := manager.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading dataset: %w", err)
	}
	defer logging.HandleDeferredError(&err, resp.Body.Close, manager.logger, "dataset_download")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("error downloading dataset: %s", resp.Status)
	}
	b, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}
	return b, nil
}

// setTable swaps in a new table and re-imports the catalog.
func (manager *Manager) setTable(ctx context.Context, table trend.Table) error {
	if err := manager.DB.ImportTable(ctx, manager.source, table); err != nil {
		return fmt.Errorf("error importing dataset into catalog: %w", err)
	}

	manager.mu.Lock()
	manager.table = table
	manager.lastUpdated = time.Now()
	manager.mu.Unlock()

	if manager.config.Verbose {
		logging.LogOperation(manager.logger, "dataset_updated",
			slog.String("source", manager.source),
			slog.Int("rows", len(table)))
	}
	return nil
}

// Reload fetches the source again and replaces the dataset. On failure the
// previous dataset stays in place.
func (manager *Manager) Reload(ctx context.Context) error {
	if manager.source == "memory" {
		return nil
	}
	table, err := manager.load(ctx)
	if err != nil {
		return err
	}
	return manager.setTable(ctx, table)
}

func (manager *Manager) refreshPeriodically() {
	defer manager.wg.Done()

	ticker := time.NewTicker(manager.config.refreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			err := manager.Reload(ctx)
			cancel()
			if err != nil {
				logging.LogError(manager.logger, "dataset_refresh_failed", err,
					slog.String("source", manager.source))
			}
		case <-manager.shutdownChan:
			logging.LogOperation(manager.logger, "dataset_refresh_stopped")
			return
		}
	}
}

// Table returns the current dataset. Callers must not modify it.
func (manager *Manager) Table() trend.Table {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.table
}

func (manager *Manager) LastUpdated() time.Time {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.lastUpdated
}

// Indicators lists the indicator names, sorted and unique.
func (manager *Manager) Indicators(ctx context.Context) ([]string, error) {
	return manager.DB.ListIndicators(ctx)
}

// Countries lists the countries that have a row for indicator.
func (manager *Manager) Countries(ctx context.Context, indicator string) ([]string, error) {
	return manager.DB.ListCountries(ctx, indicator)
}

// Series extracts one country's series from the in-memory table.
func (manager *Manager) Series(indicator, country string) trend.Series {
	return trend.Extract(manager.Table(), indicator, country)
}

// Rows aligns the selection year by year.
func (manager *Manager) Rows(sel narrative.Selection) []trend.AlignedRow {
	return trend.AlignSelection(manager.Table(), sel.Indicator, sel.CountryA, sel.CountryB)
}

// Context builds the narrative context for a selection.
func (manager *Manager) Context(sel narrative.Selection, generated bool) narrative.Context {
	return narrative.FromTable(sel, generated, manager.Table())
}

func (manager *Manager) Stats(ctx context.Context) (Stats, error) {
	counts, err := manager.DB.Counts(ctx)
	if err != nil {
		return Stats{}, err
	}

	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return Stats{
		Source:      manager.source,
		LocalFile:   manager.isLocalFile,
		LastUpdated: manager.lastUpdated,
		Rows:        len(manager.table),
		Catalog:     counts,
	}, nil
}
