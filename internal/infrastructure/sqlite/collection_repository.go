package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/zjrosen/switchboard/internal/collection"
)

// collectionRepository implements collection.Repository using SQLite.
type collectionRepository struct {
	db *sql.DB
}

// NewCollectionRepository returns a repository over an already migrated
// connection pool.
func NewCollectionRepository(db *sql.DB) collection.Repository {
	return newCollectionRepository(db)
}

func newCollectionRepository(db *sql.DB) *collectionRepository {
	return &collectionRepository{db: db}
}

var _ collection.Repository = (*collectionRepository)(nil)

// Save replaces the stored collection in one transaction.
func (r *collectionRepository) Save(ctx context.Context, c collection.Collection) (err error) {
	m := toCollectionModel(c)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// scene_items cascades from both scenes and inputs.
	for _, table := range []string{"scenes", "inputs", "collection_meta"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, in := range m.Inputs {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO inputs (name, input_type, hidden) VALUES (?, ?, ?)`,
			in.Name, in.InputType, in.Hidden,
		); err != nil {
			return fmt.Errorf("failed to insert input %q: %w", in.Name, err)
		}
	}

	for _, sc := range m.Scenes {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO scenes (name, position) VALUES (?, ?)`,
			sc.Name, sc.Position,
		); err != nil {
			return fmt.Errorf("failed to insert scene %q: %w", sc.Name, err)
		}
	}

	for _, it := range m.Items {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO scene_items (scene_name, item_id, input_name, visible, position) VALUES (?, ?, ?, ?, ?)`,
			it.SceneName, it.ItemID, it.InputName, it.Visible, it.Position,
		); err != nil {
			return fmt.Errorf("failed to insert item %q of scene %q: %w", it.ItemID, it.SceneName, err)
		}
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO collection_meta (id, current_scene, saved_at) VALUES (1, ?, ?)`,
		m.Meta.CurrentScene, m.Meta.SavedAt,
	); err != nil {
		return fmt.Errorf("failed to write collection meta: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit collection: %w", err)
	}
	return nil
}

// Load reads the stored collection. It returns collection.ErrNotFound when
// Save has never run. All tables are read in one read transaction, so a Save
// from another process is seen entirely or not at all.
func (r *collectionRepository) Load(ctx context.Context) (collection.Collection, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return collection.Collection{}, fmt.Errorf("failed to begin read transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var m collectionModel
	err = tx.QueryRowContext(ctx,
		`SELECT current_scene, saved_at FROM collection_meta WHERE id = 1`,
	).Scan(&m.Meta.CurrentScene, &m.Meta.SavedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return collection.Collection{}, collection.ErrNotFound
	}
	if err != nil {
		return collection.Collection{}, fmt.Errorf("failed to read collection meta: %w", err)
	}

	if m.Inputs, err = queryRows(ctx, tx,
		`SELECT name, input_type, hidden FROM inputs ORDER BY name`,
		func(s scanner) (InputModel, error) {
			var in InputModel
			err := s.Scan(&in.Name, &in.InputType, &in.Hidden)
			return in, err
		},
	); err != nil {
		return collection.Collection{}, fmt.Errorf("failed to read inputs: %w", err)
	}

	if m.Scenes, err = queryRows(ctx, tx,
		`SELECT name, position FROM scenes ORDER BY position, name`,
		func(s scanner) (SceneModel, error) {
			var sc SceneModel
			err := s.Scan(&sc.Name, &sc.Position)
			return sc, err
		},
	); err != nil {
		return collection.Collection{}, fmt.Errorf("failed to read scenes: %w", err)
	}

	if m.Items, err = queryRows(ctx, tx,
		`SELECT scene_name, item_id, input_name, visible, position FROM scene_items ORDER BY scene_name, position`,
		func(s scanner) (SceneItemModel, error) {
			var it SceneItemModel
			err := s.Scan(&it.SceneName, &it.ItemID, &it.InputName, &it.Visible, &it.Position)
			return it, err
		},
	); err != nil {
		return collection.Collection{}, fmt.Errorf("failed to read scene items: %w", err)
	}

	return m.toDomain(), nil
}

type scanner interface{ Scan(...any) error }

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// queryRows runs query and scans every row with scan.
func queryRows[T any](ctx context.Context, q querier, query string, scan func(scanner) (T, error)) ([]T, error) {
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
