package database

import (
	"fmt"
	"time"

	"github.com/Strowy/ProceduralGame/internal/geom"
	"github.com/Strowy/ProceduralGame/internal/logger"
)

// ClearedEntrance is one recorded dungeon clear.
type ClearedEntrance struct {
	Entrance  geom.Point
	ClearedAt time.Time
}

// MarkCleared records entrance as cleared. It reports whether this call was
// the first clear; repeated clears keep the original timestamp.
func (d *Database) MarkCleared(entrance geom.Point) (bool, error) {
	res, err := d.db.Exec(d.qb.Build(`
		INSERT INTO cleared_dungeons (x, y, cleared_at)
		VALUES (?, ?, ?)
		ON CONFLICT (x, y) DO NOTHING
	`), entrance.X, entrance.Y, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("mark cleared %v: %w", entrance, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// IsCleared reports whether entrance has been cleared.
func (d *Database) IsCleared(entrance geom.Point) (bool, error) {
	var count int
	err := d.db.QueryRow(d.qb.Build(`SELECT COUNT(*) FROM cleared_dungeons WHERE x = ? AND y = ?`),
		entrance.X, entrance.Y).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check cleared %v: %w", entrance, err)
	}
	return count > 0, nil
}

// Score returns the number of cleared entrances.
func (d *Database) Score() (int, error) {
	var count int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM cleared_dungeons`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Cleared returns every recorded clear, oldest first.
func (d *Database) Cleared() ([]ClearedEntrance, error) {
	rows, err := d.db.Query(`
		SELECT x, y, cleared_at
		FROM cleared_dungeons
		ORDER BY cleared_at ASC, x ASC, y ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cleared []ClearedEntrance
	for rows.Next() {
		var c ClearedEntrance
		if err := rows.Scan(&c.Entrance.X, &c.Entrance.Y, &c.ClearedAt); err != nil {
			return nil, err
		}
		cleared = append(cleared, c)
	}
	return cleared, rows.Err()
}

// ClearedFunc adapts IsCleared to the terrain field's predicate. Lookup
// failures are logged and read as not cleared.
func (d *Database) ClearedFunc() func(geom.Point) bool {
	return func(entrance geom.Point) bool {
		cleared, err := d.IsCleared(entrance)
		if err != nil {
			logger.Warning("Cleared lookup failed", "entrance", entrance, "error", err)
			return false
		}
		return cleared
	}
}
