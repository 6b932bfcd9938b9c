// Package storage saves extracted corpora to SQLite so a scan can be searched later.
//
// A snapshot is the ordered list of documents produced by one directory scan
// plus a little scan metadata. The term-weighting index is never stored: a
// loaded corpus is indexed again, which keeps snapshots valid across changes to
// tokenization or weighting.
//
// # Database Schema
//
// Tables:
//   - schema_version: applied migrations, compared with semver
//   - snapshots: root path, document count, scan statistics, creation time
//   - documents: one row per function, keyed by (snapshot_id, position)
//
// The position column is the document's index within the corpus, so
// LoadCorpus returns documents in exactly the order they were saved.
//
// # Basic Usage
//
//	db, err := storage.NewSQLiteStorage("funcsearch.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	id, err := db.SaveCorpus(ctx, root, corpus, storage.ScanStats{FilesScanned: n})
//
//	// Later, possibly in another process
//	snap, err := db.LatestSnapshot(ctx, root)
//	corpus, err := db.LoadCorpus(ctx, snap.ID)
//
// # Drivers
//
// The default build uses modernc.org/sqlite, a pure Go driver. Building with
// the sqlite_cgo tag switches to github.com/mattn/go-sqlite3:
//
//	CGO_ENABLED=1 go build -tags sqlite_cgo ./...
package storage
