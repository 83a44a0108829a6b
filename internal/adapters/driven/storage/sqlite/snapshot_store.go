package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/core/ports/driven"
)

// snapshotStore implements driven.CorpusSnapshotStore.
type snapshotStore struct {
	store *Store
}

var _ driven.CorpusSnapshotStore = (*snapshotStore)(nil)

const snapshotColumns = `kind, source, hash, rows, skipped, duplicates, vocabulary, loaded_at`

// Save replaces the snapshot for snap.Kind.
func (s *snapshotStore) Save(ctx context.Context, snap domain.CorpusSnapshot) error {
	if !snap.Kind.IsValid() {
		return fmt.Errorf("%w: corpus kind %q", domain.ErrInvalidInput, snap.Kind)
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO corpus_snapshots (`+snapshotColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(kind) DO UPDATE SET
			source = excluded.source,
			hash = excluded.hash,
			rows = excluded.rows,
			skipped = excluded.skipped,
			duplicates = excluded.duplicates,
			vocabulary = excluded.vocabulary,
			loaded_at = excluded.loaded_at
	`, string(snap.Kind), snap.Source, snap.Hash, snap.Rows, snap.Skipped,
		snap.Duplicates, snap.Vocabulary, snap.LoadedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// Get returns the snapshot for kind.
func (s *snapshotStore) Get(ctx context.Context, kind domain.CorpusKind) (*domain.CorpusSnapshot, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+snapshotColumns+` FROM corpus_snapshots WHERE kind = ?`, string(kind))

	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// List returns every stored snapshot ordered by kind.
func (s *snapshotStore) List(ctx context.Context) ([]domain.CorpusSnapshot, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+snapshotColumns+` FROM corpus_snapshots ORDER BY kind`)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []domain.CorpusSnapshot //nolint:prealloc // size unknown from query
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	return snaps, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*domain.CorpusSnapshot, error) {
	var snap domain.CorpusSnapshot
	var kind string
	if err := row.Scan(&kind, &snap.Source, &snap.Hash, &snap.Rows, &snap.Skipped,
		&snap.Duplicates, &snap.Vocabulary, &snap.LoadedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}
	snap.Kind = domain.CorpusKind(kind)
	return &snap, nil
}
