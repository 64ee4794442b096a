// Package memory implementa core.RowStore en memoria.
// Útil para desarrollo y testing; replica a propósito la semántica
// naive del backend real (sin transacciones ni unicidad).
package memory

import (
	"context"
	"sync"

	"github.com/dropDatabas3/unosign/internal/store/core"
)

type Store struct {
	mu     sync.RWMutex
	tables map[string][]core.Row
}

// New crea un row store vacío con las tablas del contrato.
func New() *Store {
	t := make(map[string][]core.Row, len(core.Columns))
	for name := range core.Columns {
		t[name] = nil
	}
	return &Store{tables: t}
}

func (s *Store) rows(table string) ([]core.Row, error) {
	rows, ok := s.tables[table]
	if !ok {
		return nil, core.ErrUnknownTable
	}
	return rows, nil
}

// normalize completa columnas faltantes con "" y descarta las desconocidas.
func normalize(table string, row core.Row) core.Row {
	out := make(core.Row, len(core.Columns[table]))
	for _, col := range core.Columns[table] {
		out[col] = row[col]
	}
	return out
}

func (s *Store) Append(ctx context.Context, table string, row core.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !core.KnownTable(table) {
		return core.ErrUnknownTable
	}
	s.tables[table] = append(s.tables[table], normalize(table, row))
	return nil
}

func (s *Store) GetAll(ctx context.Context, table string) ([]core.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.rows(table)
	if err != nil {
		return nil, err
	}
	out := make([]core.Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out, nil
}

func (s *Store) FindByColumn(ctx context.Context, table, col, value string) (core.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.rows(table)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		if r[col] == value {
			return r.Clone(), nil
		}
	}
	return nil, core.ErrNotFound
}

func (s *Store) FindAllByColumn(ctx context.Context, table, col, value string) ([]core.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.rows(table)
	if err != nil {
		return nil, err
	}
	var out []core.Row
	for _, r := range rows {
		if r[col] == value {
			out = append(out, r.Clone())
		}
	}
	return out, nil
}

func (s *Store) IndexOfByColumn(ctx context.Context, table, col, value string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.rows(table)
	if err != nil {
		return -1, err
	}
	for i, r := range rows {
		if r[col] == value {
			return i, nil
		}
	}
	return -1, nil
}

func (s *Store) UpdateByIndex(ctx context.Context, table string, index int, row core.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.rows(table)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(rows) {
		return core.ErrNotFound
	}
	rows[index] = normalize(table, row)
	return nil
}

func (s *Store) DeleteByIndex(ctx context.Context, table string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.rows(table)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(rows) {
		return core.ErrNotFound
	}
	s.tables[table] = append(rows[:index], rows[index+1:]...)
	return nil
}
