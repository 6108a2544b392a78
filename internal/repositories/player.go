package repositories

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/bclaudel/paname/internal/errors"
	"github.com/bclaudel/paname/internal/sqlite"
)

// PlayerRepository persists per-player progress: the ordered found set and
// the corpus version it was earned against. Rows are ordered by position,
// position 0 being the most recently found entity.
type PlayerRepository struct {
	readWrite *sqlx.DB
	readOnly  *sqlx.DB
	logger    *slog.Logger
}

func NewPlayerRepository(dbs *sqlite.Database, logger *slog.Logger) *PlayerRepository {
	return &PlayerRepository{
		readWrite: sqlx.NewDb(dbs.ReadWrite, "sqlite3"),
		readOnly:  sqlx.NewDb(dbs.ReadOnly, "sqlite3"),
		logger:    logger.With("source", "PlayerRepository"),
	}
}

// Ensure creates the player row if it does not exist yet.
func (r *PlayerRepository) Ensure(ctx context.Context, playerID string) error {
	stmt := `INSERT INTO players (id) VALUES (?) ON CONFLICT (id) DO NOTHING`
	if _, err := r.readWrite.ExecContext(ctx, stmt, playerID); err != nil {
		return errors.Wrap(err, "insert player", slog.String("player_id", playerID))
	}
	return nil
}

// FoundIDs returns the player's found entity ids, most recent first. An
// unknown player simply has nothing found yet.
func (r *PlayerRepository) FoundIDs(ctx context.Context, playerID string) ([]int64, error) {
	var ids []int64
	stmt := `SELECT entity_id FROM found_entities WHERE player_id = ? ORDER BY position`
	if err := r.readOnly.SelectContext(ctx, &ids, stmt, playerID); err != nil {
		return nil, errors.Wrap(err, "select found entities")
	}
	return ids, nil
}

// Append prepends newly found ids, first id becoming the most recent one.
// Ids already present are left at their old position.
func (r *PlayerRepository) Append(ctx context.Context, playerID string, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := r.readWrite.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer r.rollback(tx)

	// Make room at the front. Positions need not stay contiguous, only
	// ordered.
	stmt := `UPDATE found_entities SET position = position + ? WHERE player_id = ?`
	if _, err = tx.ExecContext(ctx, stmt, len(ids), playerID); err != nil {
		return errors.Wrap(err, "shift positions")
	}

	stmt = `INSERT INTO found_entities (player_id, entity_id, position) VALUES (?, ?, ?)
		ON CONFLICT (player_id, entity_id) DO NOTHING`
	for position, id := range ids {
		if _, err = tx.ExecContext(ctx, stmt, playerID, id, position); err != nil {
			return errors.Wrap(err, "insert found entity", slog.Int64("entity_id", id))
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	return nil
}

// Replace overwrites the player's whole found set with ids, most recent
// first. Used by progress import and corpus migration.
func (r *PlayerRepository) Replace(ctx context.Context, playerID string, ids []int64) error {
	tx, err := r.readWrite.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer r.rollback(tx)

	if _, err = tx.ExecContext(ctx, `DELETE FROM found_entities WHERE player_id = ?`, playerID); err != nil {
		return errors.Wrap(err, "delete found entities")
	}

	stmt := `INSERT INTO found_entities (player_id, entity_id, position) VALUES (?, ?, ?)
		ON CONFLICT (player_id, entity_id) DO NOTHING`
	for position, id := range ids {
		if _, err = tx.ExecContext(ctx, stmt, playerID, id, position); err != nil {
			return errors.Wrap(err, "insert found entity", slog.Int64("entity_id", id))
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	return nil
}

// Reset deletes the player's found set.
func (r *PlayerRepository) Reset(ctx context.Context, playerID string) error {
	if _, err := r.readWrite.ExecContext(ctx,
		`DELETE FROM found_entities WHERE player_id = ?`, playerID); err != nil {
		return errors.Wrap(err, "delete found entities")
	}
	return nil
}

// CorpusVersion returns the corpus version the player's progress was stored
// against. Empty for players who have not played since version tracking.
func (r *PlayerRepository) CorpusVersion(ctx context.Context, playerID string) (string, error) {
	var version string
	stmt := `SELECT corpus_version FROM players WHERE id = ?`
	if err := r.readOnly.GetContext(ctx, &version, stmt, playerID); err != nil {
		return "", errors.Wrap(err, "select corpus version")
	}
	return version, nil
}

// SetCorpusVersion records which corpus version the player's progress
// belongs to.
func (r *PlayerRepository) SetCorpusVersion(ctx context.Context, playerID string, version string) error {
	stmt := `UPDATE players SET corpus_version = ? WHERE id = ?`
	if _, err := r.readWrite.ExecContext(ctx, stmt, version, playerID); err != nil {
		return errors.Wrap(err, "update corpus version")
	}
	return nil
}

func (r *PlayerRepository) rollback(tx *sqlx.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		r.logger.Error("could not rollback transaction", errors.SlogError(err))
	}
}
