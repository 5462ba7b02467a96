// File: replay/archive.go
package replay

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lguibr/striker/game"
	"github.com/lguibr/striker/utils"
)

// Archive is a long-term sqlite store of match results. Replays carry the
// full tick history; the archive keeps only the outcome rows, which is what
// leaderboards and regressions query.
type Archive struct {
	db *sql.DB
}

// ArchivedMatch is one stored result.
type ArchivedMatch struct {
	ID       int64
	PlayedAt time.Time
	Seed     int64
	ScoreA   int
	ScoreB   int
	Winner   int
	Ticks    int
}

const archiveSchema = `
CREATE TABLE IF NOT EXISTS matches (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	played_at TIMESTAMP NOT NULL,
	seed      INTEGER NOT NULL,
	score_a   INTEGER NOT NULL,
	score_b   INTEGER NOT NULL,
	winner    INTEGER NOT NULL,
	ticks     INTEGER NOT NULL
);`

// OpenArchive opens (creating if needed) the archive at path.
func OpenArchive(path string) (*Archive, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("replay: open archive: %w", err)
	}
	if _, err := db.Exec(archiveSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("replay: init archive: %w", err)
	}
	return &Archive{db: db}, nil
}

// SaveResult appends one finished match.
func (a *Archive) SaveResult(cfg utils.Config, result game.Result) error {
	_, err := a.db.Exec(
		`INSERT INTO matches (played_at, seed, score_a, score_b, winner, ticks)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), cfg.Seed, result.Score[0], result.Score[1], result.Winner, result.Ticks,
	)
	if err != nil {
		return fmt.Errorf("replay: save result: %w", err)
	}
	return nil
}

// Recent returns up to n results, newest first.
func (a *Archive) Recent(n int) ([]ArchivedMatch, error) {
	rows, err := a.db.Query(
		`SELECT id, played_at, seed, score_a, score_b, winner, ticks
		 FROM matches ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("replay: query archive: %w", err)
	}
	defer rows.Close()

	var out []ArchivedMatch
	for rows.Next() {
		var m ArchivedMatch
		if err := rows.Scan(&m.ID, &m.PlayedAt, &m.Seed, &m.ScoreA, &m.ScoreB, &m.Winner, &m.Ticks); err != nil {
			return nil, fmt.Errorf("replay: scan archive row: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("replay: query archive: %w", err)
	}
	return out, nil
}

// Close releases the database handle.
func (a *Archive) Close() error { return a.db.Close() }
