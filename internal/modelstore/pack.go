package modelstore

import (
	"bytes"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/cliniclab/medscreen/internal/classifier"
)

// PackExt is the filename suffix for model pack bundles
const PackExt = ".pack"

// PackFormat identifies the bundle layout in the metadata table
const PackFormat = "medscreen-modelpack"

// PackEntry is one artifact stored in a pack
type PackEntry struct {
	Artifact *classifier.Artifact
	Size     int64
}

// Pack is a decoded model pack bundle
type Pack struct {
	Path    string
	Meta    map[string]string
	Entries []PackEntry
}

// ReadPack opens a pack file read-only and decodes every artifact it holds.
// Rows that fail to decode are skipped with a warning through the returned
// entries being absent rather than failing the whole pack.
func ReadPack(path string) (*Pack, error) {
	db, err := sql.Open("sqlite3", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open pack: %w", err)
	}
	defer db.Close()

	// Verify this is actually a model pack before reading rows
	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='models'").Scan(&count)
	if err != nil || count == 0 {
		return nil, fmt.Errorf("not a valid model pack: %s", path)
	}

	pack := &Pack{Path: path, Meta: make(map[string]string)}

	metaRows, err := db.Query("SELECT name, value FROM metadata")
	if err == nil {
		defer metaRows.Close()
		for metaRows.Next() {
			var name, value string
			if err := metaRows.Scan(&name, &value); err == nil {
				pack.Meta[name] = value
			}
		}
	}
	if format, ok := pack.Meta["format"]; ok && format != PackFormat {
		return nil, fmt.Errorf("unsupported pack format %q in %s", format, path)
	}

	rows, err := db.Query("SELECT data FROM models ORDER BY disease")
	if err != nil {
		return nil, fmt.Errorf("failed to read pack models: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan pack row: %w", err)
		}
		artifact, err := classifier.Decode(bytes.NewReader(data))
		if err != nil {
			continue
		}
		pack.Entries = append(pack.Entries, PackEntry{Artifact: artifact, Size: int64(len(data))})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pack models: %w", err)
	}

	return pack, nil
}

// WritePack bundles artifacts into a new sqlite pack file at path. The file
// must not already exist.
func WritePack(path string, artifacts []*classifier.Artifact) error {
	if len(artifacts) == 0 {
		return fmt.Errorf("no artifacts to pack")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to create pack: %w", err)
	}
	defer db.Close()

	schema := `
	CREATE TABLE metadata (name TEXT NOT NULL, value TEXT NOT NULL);
	CREATE TABLE models (
		disease  TEXT NOT NULL PRIMARY KEY,
		kind     TEXT NOT NULL,
		features INTEGER NOT NULL,
		created  TEXT NOT NULL,
		data     BLOB NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create pack schema: %w", err)
	}

	meta := map[string]string{
		"format":  PackFormat,
		"version": fmt.Sprintf("%d", classifier.FormatVersion),
		"id":      uuid.New().String(),
		"created": time.Now().UTC().Format(time.RFC3339),
	}
	for name, value := range meta {
		if _, err := db.Exec("INSERT INTO metadata (name, value) VALUES (?, ?)", name, value); err != nil {
			return fmt.Errorf("failed to write pack metadata: %w", err)
		}
	}

	for _, artifact := range artifacts {
		var buf bytes.Buffer
		if err := classifier.Encode(&buf, artifact); err != nil {
			return fmt.Errorf("failed to encode %s artifact: %w", artifact.Name, err)
		}
		_, err := db.Exec(
			"INSERT INTO models (disease, kind, features, created, data) VALUES (?, ?, ?, ?, ?)",
			artifact.Name, string(artifact.Kind), len(artifact.Weights),
			artifact.Created.UTC().Format(time.RFC3339), buf.Bytes(),
		)
		if err != nil {
			return fmt.Errorf("failed to write %s artifact: %w", artifact.Name, err)
		}
	}

	return nil
}
