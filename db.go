package teletext

import (
	"bytes"
	"database/sql"
	"fmt"
	"time"

	"github.com/bodgit/teletext/grid"
	_ "github.com/mattn/go-sqlite3" // register driver
)

// Record is an archived page.
type Record struct {
	ID      string
	Title   string
	Source  string
	Date    string
	Size    int
	SHA1    string
	Created time.Time

	// Frame and Image are only populated by Find
	Frame *grid.Frame
	Image []byte
}

// PageDB archives rendered pages in a SQLite database.
type PageDB struct {
	db *sql.DB
}

// NewPageDB opens, creating if necessary, the archive in file.
func NewPageDB(file string) (*PageDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS source (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, size INTEGER NOT NULL, UNIQUE (sha1, size))"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS page (id TEXT PRIMARY KEY NOT NULL, source_id INTEGER NOT NULL UNIQUE, title TEXT NOT NULL, publisher TEXT NOT NULL, published TEXT NOT NULL, frame BLOB NOT NULL, image BLOB NOT NULL, created INTEGER NOT NULL, FOREIGN KEY(source_id) REFERENCES source(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &PageDB{
		db: db,
	}, nil
}

// Close closes the archive.
func (db *PageDB) Close() error {
	return db.db.Close()
}

// Seen reports whether a page has already been archived for the photo with
// the given digest at the given size.
func (db *PageDB) Seen(sha1 string, size int) (bool, error) {
	var id int64
	switch err := db.db.QueryRow("SELECT s.id FROM source AS s JOIN page AS p ON p.source_id = s.id WHERE s.sha1 = ? AND s.size = ?", sha1, size).Scan(&id); err {
	case sql.ErrNoRows:
		return false, nil
	case nil:
		return true, nil
	default:
		return false, err
	}
}

func (db *PageDB) addSource(tx *sql.Tx, sha1 string, size int) (int64, bool, error) {
	var id int64
	switch err := tx.QueryRow("SELECT id FROM source WHERE sha1 = ? AND size = ?", sha1, size).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := tx.Exec("INSERT INTO source (sha1, size) VALUES (?, ?)", sha1, size)
		if err != nil {
			return 0, false, err
		}
		id, err := result.LastInsertId()
		return id, true, err
	case nil:
		return id, false, nil
	default:
		return 0, false, err
	}
}

// Add archives page p along with its encoded image. It returns false
// without storing anything if a page for the same photo and size is already
// archived.
func (db *PageDB) Add(p *Page, image []byte) (bool, error) {
	frame := new(bytes.Buffer)
	if err := grid.Encode(frame, p.Frame()); err != nil {
		return false, err
	}

	tx, err := db.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	source, ok, err := db.addSource(tx, p.SourceSHA1(), p.Size())
	if err != nil || !ok {
		return false, err
	}

	a := p.Article()
	if _, err := tx.Exec("INSERT INTO page (id, source_id, title, publisher, published, frame, image, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?)", p.ID().String(), source, a.Title, a.Source.Name, a.Date, frame.Bytes(), image, time.Now().Unix()); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	return true, nil
}

// Find returns the archived page with the given identifier, or nil if there
// is no such page.
func (db *PageDB) Find(id string) (*Record, error) {
	var r Record
	var frame []byte
	var created int64
	switch err := db.db.QueryRow("SELECT p.id, p.title, p.publisher, p.published, s.size, s.sha1, p.created, p.frame, p.image FROM page AS p JOIN source AS s ON p.source_id = s.id WHERE p.id = ?", id).Scan(&r.ID, &r.Title, &r.Source, &r.Date, &r.Size, &r.SHA1, &created, &frame, &r.Image); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		f, err := grid.Decode(bytes.NewReader(frame))
		if err != nil {
			return nil, err
		}
		r.Frame = f
		r.Created = time.Unix(created, 0)
		return &r, nil
	default:
		return nil, err
	}
}

// List returns every archived page, newest first, without frames or images.
func (db *PageDB) List() ([]Record, error) {
	rows, err := db.db.Query("SELECT p.id, p.title, p.publisher, p.published, s.size, s.sha1, p.created FROM page AS p JOIN source AS s ON p.source_id = s.id ORDER BY p.created DESC, p.rowid DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var created int64
		if err := rows.Scan(&r.ID, &r.Title, &r.Source, &r.Date, &r.Size, &r.SHA1, &created); err != nil {
			return nil, err
		}
		r.Created = time.Unix(created, 0)
		records = append(records, r)
	}

	return records, rows.Err()
}
