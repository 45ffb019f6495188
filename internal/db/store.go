package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/atharv3903/ambroute/internal/graph"
	"github.com/atharv3903/ambroute/internal/scenario"
)

var ErrRoadNotFound = errors.New("db: road not found")

// Open parses a MySQL DSN and returns a pooled handle.
func Open(dsn string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("db: parse dsn: %w", err)
	}
	cfg.ParseTime = true

	conn, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, err
	}
	conn.SetConnMaxLifetime(3 * time.Minute)
	conn.SetMaxOpenConns(20)
	conn.SetMaxIdleConns(20)
	return conn, nil
}

// Store reads and writes scenarios in MySQL. See schema.sql.
type Store struct {
	DB *sql.DB
}

func (s Store) ListScenarios(ctx context.Context) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT DISTINCT scenario FROM places ORDER BY scenario`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// LoadScenario reads every place and every open road of a scenario.
func (s Store) LoadScenario(ctx context.Context, name string) (scenario.Scenario, error) {
	sc := scenario.Scenario{Name: name}

	rows, err := s.DB.QueryContext(ctx, `
        SELECT place_id, kind
        FROM places
        WHERE scenario=?
        ORDER BY seq
    `, name)
	if err != nil {
		return sc, err
	}
	defer rows.Close()

	for rows.Next() {
		var p scenario.Place
		if err := rows.Scan(&p.ID, &p.Kind); err != nil {
			return sc, err
		}
		sc.Places = append(sc.Places, p)
	}
	if err := rows.Err(); err != nil {
		return sc, err
	}
	if len(sc.Places) == 0 {
		return sc, fmt.Errorf("%w: %q", scenario.ErrNotFound, name)
	}

	roads, err := s.DB.QueryContext(ctx, `
        SELECT road_id, src_place, dst_place, minutes, closed
        FROM roads
        WHERE scenario=?
        ORDER BY road_id
    `, name)
	if err != nil {
		return sc, err
	}
	defer roads.Close()

	for roads.Next() {
		var r scenario.Road
		var closed bool
		if err := roads.Scan(&r.ID, &r.From, &r.To, &r.Minutes, &closed); err != nil {
			return sc, err
		}
		if closed {
			continue
		}
		sc.Roads = append(sc.Roads, r)
	}
	return sc, roads.Err()
}

// PlaceIDs returns the place ids of a scenario, in declaration order.
func (s Store) PlaceIDs(ctx context.Context, name string) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT place_id FROM places WHERE scenario=? ORDER BY seq`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SaveScenario replaces everything stored under sc.Name. Road ids are
// assigned by the database.
func (s Store) SaveScenario(ctx context.Context, sc scenario.Scenario) (err error) {
	if err := sc.Validate(); err != nil {
		return err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM roads WHERE scenario=?`, sc.Name); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM places WHERE scenario=?`, sc.Name); err != nil {
		return err
	}
	for i, p := range sc.Places {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO places (scenario, place_id, kind, seq) VALUES (?, ?, ?, ?)`,
			sc.Name, p.ID, string(p.Kind), i); err != nil {
			return err
		}
	}
	for _, r := range sc.Roads {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO roads (scenario, src_place, dst_place, minutes) VALUES (?, ?, ?, ?)`,
			sc.Name, r.From, r.To, r.Minutes); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// RoadUpdate changes the travel time of a road, opens or closes it, or both.
type RoadUpdate struct {
	RoadID  int64
	Minutes *int64
	Closed  *bool
}

// UpdateRoad applies u and returns the name of the scenario the road
// belongs to.
func (s Store) UpdateRoad(ctx context.Context, u RoadUpdate) (name string, err error) {
	if u.Minutes != nil && *u.Minutes < 0 {
		return "", fmt.Errorf("%w: road %d: negative minutes %d", graph.ErrInvalidWeight, u.RoadID, *u.Minutes)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx, `SELECT scenario FROM roads WHERE road_id=?`, u.RoadID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %d", ErrRoadNotFound, u.RoadID)
	}
	if err != nil {
		return "", err
	}

	if u.Minutes != nil {
		if _, err = tx.ExecContext(ctx, `UPDATE roads SET minutes=? WHERE road_id=?`, *u.Minutes, u.RoadID); err != nil {
			return "", err
		}
	}
	if u.Closed != nil {
		if _, err = tx.ExecContext(ctx, `UPDATE roads SET closed=? WHERE road_id=?`, *u.Closed, u.RoadID); err != nil {
			return "", err
		}
	}
	return name, tx.Commit()
}

// RoadIDs returns every road id of a scenario, closed roads included.
func (s Store) RoadIDs(ctx context.Context, name string) ([]int64, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT road_id FROM roads WHERE scenario=? ORDER BY road_id`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
