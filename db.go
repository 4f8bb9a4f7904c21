package bitreel

import (
	"crypto/sha1"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bitreel/bitreel/clip"
	"github.com/bitreel/bitreel/frame"
)

// ClipDB is a library of encoded clips stored in a single SQLite file.
type ClipDB struct {
	db *sql.DB
}

// NewClipDB opens the database at file, creating it and its schema if
// necessary.
func NewClipDB(file string) (*ClipDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS clip (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, sha1 TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, fps INTEGER NOT NULL, data BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	return &ClipDB{
		db: db,
	}, nil
}

func (db *ClipDB) Close() error {
	return db.db.Close()
}

// Add stores c under name, replacing any existing clip of that name. Storing
// an identical clip again is a no-op.
func (db *ClipDB) Add(name string, c *clip.Clip) error {
	sha := fmt.Sprintf("%X", sha1.Sum(c.Data))

	var id int64
	var stored string
	switch err := db.db.QueryRow("SELECT id, sha1 FROM clip WHERE name = ?", name).Scan(&id, &stored); err {
	case sql.ErrNoRows:
		_, err := db.db.Exec("INSERT INTO clip (name, sha1, width, height, fps, data) VALUES (?, ?, ?, ?, ?, ?)",
			name, sha, c.Geometry.Width, c.Geometry.Height, c.FPS, c.Data)
		return err
	case nil:
		if stored == sha {
			return nil
		}
		_, err := db.db.Exec("UPDATE clip SET sha1 = ?, width = ?, height = ?, fps = ?, data = ? WHERE id = ?",
			sha, c.Geometry.Width, c.Geometry.Height, c.FPS, c.Data, id)
		return err
	default:
		return err
	}
}

// Find returns the clip stored under name, or nil if there isn't one.
func (db *ClipDB) Find(name string) (*clip.Clip, error) {
	c := &clip.Clip{}
	switch err := db.db.QueryRow("SELECT width, height, fps, data FROM clip WHERE name = ?", name).Scan(&c.Geometry.Width, &c.Geometry.Height, &c.FPS, &c.Data); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return c, nil
	default:
		return nil, err
	}
}

// ClipInfo describes a stored clip without its stream data.
type ClipInfo struct {
	Name     string
	Geometry frame.Geometry
	FPS      int
	Bytes    int
}

// List returns every stored clip in name order.
func (db *ClipDB) List() ([]ClipInfo, error) {
	rows, err := db.db.Query("SELECT name, width, height, fps, length(data) FROM clip ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clips []ClipInfo
	for rows.Next() {
		var i ClipInfo
		if err := rows.Scan(&i.Name, &i.Geometry.Width, &i.Geometry.Height, &i.FPS, &i.Bytes); err != nil {
			return nil, err
		}
		clips = append(clips, i)
	}

	return clips, rows.Err()
}
