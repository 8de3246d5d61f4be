// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists candidate sites and their raw attributes in a
// local SQLite database. The catalog is input data: scored results are
// never written back. See docs/ARCHITECTURE § Catalog.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/meshintel/carbonsite/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "carbonsite.db"
)

// Store manages the candidate site SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the catalog database at
// dataDir/index/carbonsite.db and creates the schema if missing.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sites (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			country TEXT,
			region TEXT,
			latitude REAL,
			longitude REAL,
			facility_type TEXT,
			description TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS attributes (
			site_id TEXT NOT NULL REFERENCES sites(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			value REAL NOT NULL,
			source TEXT,
			fetched_at TEXT,
			PRIMARY KEY (site_id, name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attributes_site ON attributes(site_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table over the searchable site columns, with triggers
	// keeping it in sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='sites_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE sites_fts USING fts5(name, region, description, content=sites, content_rowid=rowid)`,
			`CREATE TRIGGER sites_ai AFTER INSERT ON sites BEGIN
				INSERT INTO sites_fts(rowid, name, region, description) VALUES (new.rowid, new.name, new.region, new.description);
			END`,
			`CREATE TRIGGER sites_ad AFTER DELETE ON sites BEGIN
				INSERT INTO sites_fts(sites_fts, rowid, name, region, description) VALUES('delete', old.rowid, old.name, old.region, old.description);
			END`,
			`CREATE TRIGGER sites_au AFTER UPDATE ON sites BEGIN
				INSERT INTO sites_fts(sites_fts, rowid, name, region, description) VALUES('delete', old.rowid, old.name, old.region, old.description);
				INSERT INTO sites_fts(rowid, name, region, description) VALUES (new.rowid, new.name, new.region, new.description);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// ImportSummary holds counts from a catalog import run.
type ImportSummary struct {
	Imported int
	Updated  int
	Failed   int
}

// Total returns the number of sites processed.
func (s ImportSummary) Total() int {
	return s.Imported + s.Updated + s.Failed
}

// HasFailures reports whether any sites failed to import.
func (s ImportSummary) HasFailures() bool {
	return s.Failed > 0
}

// Import upserts sites and their attributes into the catalog. Existing
// sites are updated in place; their previously enriched attributes are
// kept unless the incoming site carries a value for the same key.
func (s *Store) Import(ctx context.Context, sites []types.Site, source string) (ImportSummary, error) {
	var summary ImportSummary

	for _, site := range sites {
		if site.ID == "" || site.Name == "" {
			summary.Failed++
			continue
		}

		var exists int
		if err := s.db.QueryRowContext(ctx,
			`SELECT count(*) FROM sites WHERE id = ?`, site.ID,
		).Scan(&exists); err != nil {
			return summary, fmt.Errorf("checking site %s: %w", site.ID, err)
		}

		if err := s.upsertSite(ctx, site, source); err != nil {
			summary.Failed++
			continue
		}
		if exists > 0 {
			summary.Updated++
		} else {
			summary.Imported++
		}
	}

	return summary, nil
}

func (s *Store) upsertSite(ctx context.Context, site types.Site, source string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sites (id, name, country, region, latitude, longitude, facility_type, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, country=excluded.country, region=excluded.region,
			latitude=excluded.latitude, longitude=excluded.longitude,
			facility_type=excluded.facility_type, description=excluded.description`,
		site.ID, site.Name, site.Country, site.Region,
		site.Latitude, site.Longitude, site.FacilityType, site.Description,
	)
	if err != nil {
		return fmt.Errorf("upserting site %s: %w", site.ID, err)
	}

	if len(site.Attributes) > 0 {
		if err := upsertAttributesTx(ctx, tx, site.ID, site.Attributes, source); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SetAttributes records enriched attribute values for a site, tagged with
// the producing backend and fetch time.
func (s *Store) SetAttributes(ctx context.Context, siteID string, attrs map[string]float64, source string) error {
	if len(attrs) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := upsertAttributesTx(ctx, tx, siteID, attrs, source); err != nil {
		return err
	}
	return tx.Commit()
}

func upsertAttributesTx(ctx context.Context, tx *sql.Tx, siteID string, attrs map[string]float64, source string) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO attributes (site_id, name, value, source, fetched_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(site_id, name) DO UPDATE SET
			value=excluded.value, source=excluded.source, fetched_at=excluded.fetched_at`)
	if err != nil {
		return fmt.Errorf("preparing attribute insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for name, value := range attrs {
		if _, err := stmt.ExecContext(ctx, siteID, name, value, source, now); err != nil {
			return fmt.Errorf("inserting attribute %s for %s: %w", name, siteID, err)
		}
	}
	return nil
}

// Filter narrows List and Get results.
type Filter struct {
	// Countries keeps only sites in the given country codes.
	Countries []string

	// FacilityType keeps only sites with a matching host facility type.
	FacilityType string
}

// List returns all catalog sites with their attributes, ordered by ID.
// The returned sites are independent copies.
func (s *Store) List(ctx context.Context, f Filter) ([]types.Site, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT id, name, country, region, latitude, longitude, facility_type, description FROM sites WHERE 1=1`)

	if len(f.Countries) > 0 {
		qb.WriteString(` AND country IN (?` + strings.Repeat(",?", len(f.Countries)-1) + `)`)
		for _, c := range f.Countries {
			args = append(args, c)
		}
	}
	if f.FacilityType != "" {
		qb.WriteString(` AND facility_type = ?`)
		args = append(args, f.FacilityType)
	}
	qb.WriteString(` ORDER BY id`)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying sites: %w", err)
	}
	defer rows.Close()

	var sites []types.Site
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sites: %w", err)
	}

	for i := range sites {
		attrs, err := s.siteAttributes(ctx, sites[i].ID)
		if err != nil {
			return nil, err
		}
		sites[i].Attributes = attrs
	}
	return sites, nil
}

// Get returns the sites with the given IDs. Unknown IDs produce an error
// naming the first missing site.
func (s *Store) Get(ctx context.Context, ids []string) ([]types.Site, error) {
	all, err := s.List(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	byID := make(map[string]types.Site, len(all))
	for _, site := range all {
		byID[site.ID] = site
	}

	sites := make([]types.Site, 0, len(ids))
	for _, id := range ids {
		site, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("site %q not in catalog", id)
		}
		sites = append(sites, site)
	}
	return sites, nil
}

// Find runs an FTS5 full-text query over site name, region, and
// description, returning matches in relevance order.
func (s *Store) Find(ctx context.Context, query string, maxResults int) ([]types.Site, error) {
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT st.id, st.name, st.country, st.region, st.latitude, st.longitude, st.facility_type, st.description
		 FROM sites_fts
		 JOIN sites st ON st.rowid = sites_fts.rowid
		 WHERE sites_fts MATCH ?
		 ORDER BY sites_fts.rank
		 LIMIT ?`, query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("searching catalog: %w", err)
	}
	defer rows.Close()

	var sites []types.Site
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating matches: %w", err)
	}

	for i := range sites {
		attrs, err := s.siteAttributes(ctx, sites[i].ID)
		if err != nil {
			return nil, err
		}
		sites[i].Attributes = attrs
	}
	return sites, nil
}

func (s *Store) siteAttributes(ctx context.Context, siteID string) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, value FROM attributes WHERE site_id = ?`, siteID)
	if err != nil {
		return nil, fmt.Errorf("querying attributes for %s: %w", siteID, err)
	}
	defer rows.Close()

	attrs := make(map[string]float64)
	for rows.Next() {
		var name string
		var value float64
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scanning attribute: %w", err)
		}
		attrs[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating attributes: %w", err)
	}
	if len(attrs) == 0 {
		return nil, nil
	}
	return attrs, nil
}

func scanSite(rows *sql.Rows) (types.Site, error) {
	var (
		site                             types.Site
		country, region, facility, descr sql.NullString
	)
	if err := rows.Scan(&site.ID, &site.Name, &country, &region,
		&site.Latitude, &site.Longitude, &facility, &descr); err != nil {
		return types.Site{}, fmt.Errorf("scanning site: %w", err)
	}
	site.Country = country.String
	site.Region = region.String
	site.FacilityType = facility.String
	site.Description = descr.String
	return site, nil
}
