package storage

import (
	"context"
	"time"

	"github.com/dshills/funcsearch/pkg/types"
)

// Storage persists extracted corpora as snapshots.
// Only documents are stored; an index is always rebuilt from a loaded corpus.
type Storage interface {
	// SaveCorpus stores corpus as a new snapshot of root and returns its ID
	SaveCorpus(ctx context.Context, root string, corpus *types.Corpus, stats ScanStats) (int64, error)
	// LoadCorpus returns the documents of a snapshot in their original order
	LoadCorpus(ctx context.Context, snapshotID int64) (*types.Corpus, error)

	GetSnapshot(ctx context.Context, snapshotID int64) (*Snapshot, error)
	// LatestSnapshot returns the newest snapshot, of root if root is not empty
	LatestSnapshot(ctx context.Context, root string) (*Snapshot, error)
	ListSnapshots(ctx context.Context) ([]*Snapshot, error)
	DeleteSnapshot(ctx context.Context, snapshotID int64) error

	Close() error
}

// ScanStats describes the scan a snapshot came from
type ScanStats struct {
	FilesScanned int
	FilesFailed  int
	Duration     time.Duration
}

// Snapshot is the metadata of one saved corpus
type Snapshot struct {
	ID           int64
	RootPath     string
	Documents    int
	FilesScanned int
	FilesFailed  int
	ScanDuration time.Duration
	CreatedAt    time.Time
}
