package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"transit-route-service/internal/domain"
	"transit-route-service/internal/platform/obs"
)

// PGDirectoryCache persists the downloaded city directory in Postgres so a
// restart does not repeat the full settlement download.
type PGDirectoryCache struct {
	DB *sql.DB
}

func NewPGDirectoryCache(db *sql.DB) *PGDirectoryCache {
	return &PGDirectoryCache{DB: db}
}

// InitSchema creates the cache table when it does not exist yet.
func (c *PGDirectoryCache) InitSchema(ctx context.Context) error {
	if c.DB == nil {
		return errors.New("directory cache: db is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS city_directory (
		id   TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		lat  DOUBLE PRECISION,
		lon  DOUBLE PRECISION
	);
	`

	if _, err := c.DB.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("init directory cache schema: %w", err)
	}

	return nil
}

// Get returns every cached city; an empty table is a cache miss.
func (c *PGDirectoryCache) Get(ctx context.Context) (_ []domain.City, err error) {
	defer obs.Time("directory.cache.Get")(&err)

	if c.DB == nil {
		return nil, errors.New("directory cache: db is nil")
	}

	q := `
	SELECT id, name, lat, lon
	FROM city_directory;
	`

	rows, err := c.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("get directory cache: query city_directory table: %w", err)
	}
	defer rows.Close()

	var out []domain.City
	for rows.Next() {
		var id, name string
		var lat, lon sql.NullFloat64
		if err := rows.Scan(&id, &name, &lat, &lon); err != nil {
			return nil, fmt.Errorf("get directory cache: scan rows: %w", err)
		}

		city := domain.City{Name: name, ID: id}
		if lat.Valid && lon.Valid {
			city.Coords = &domain.Coordinates{Lat: lat.Float64, Lon: lon.Float64}
		}
		out = append(out, city)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get directory cache: row iteration: %w", err)
	}

	return out, nil
}

// Put replaces the cached directory with the given city list.
func (c *PGDirectoryCache) Put(ctx context.Context, cities []domain.City) error {
	if c.DB == nil {
		return errors.New("directory cache: db is nil")
	}

	if len(cities) == 0 {
		return nil
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("put directory cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM city_directory;`); err != nil {
		return fmt.Errorf("put directory cache: clear table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO city_directory (id, name, lat, lon)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		lat  = EXCLUDED.lat,
		lon  = EXCLUDED.lon;
	`)
	if err != nil {
		return fmt.Errorf("put directory cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, city := range cities {
		if city.ID == "" || city.Name == "" {
			continue
		}

		var lat, lon sql.NullFloat64
		if city.Coords != nil {
			lat = sql.NullFloat64{Float64: city.Coords.Lat, Valid: true}
			lon = sql.NullFloat64{Float64: city.Coords.Lon, Valid: true}
		}

		if _, err := stmt.ExecContext(ctx, city.ID, city.Name, lat, lon); err != nil {
			return fmt.Errorf("put directory cache city=%q: %w", city.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("put directory cache commit: %w", err)
	}

	return nil
}
