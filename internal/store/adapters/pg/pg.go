// Package pg implementa core.RowStore sobre PostgreSQL con pgx.
//
// Cada tabla lógica se materializa como una tabla SQL de columnas text más
// un ordinal serial (rn) que preserva el orden de inserción. El adapter
// implementa deliberadamente la misma superficie naive del contrato (sin
// constraints de unicidad ni upserts): las invariantes siguen viviendo en
// los protocolos delete-before-insert de la capa superior. El upgrade a
// constraints + upsert atómico queda documentado en DESIGN.md.
package pg

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/unosign/internal/store/core"
)

type Store struct {
	pool *pgxpool.Pool
}

// New abre el pool y crea las tablas que falten.
func New(ctx context.Context, dsn string, maxConns int) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg: parse dsn: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = int32(maxConns)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pg: connect: %w", err)
	}
	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close cierra el pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Ping verifica la conexión.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// sqlName mapea el nombre lógico ("AuthCodes") al nombre SQL ("auth_codes").
// Solo acepta tablas del contrato; todo lo que se interpola en SQL sale de
// core.Columns, nunca de input del caller.
func sqlName(table string) (string, error) {
	if !core.KnownTable(table) {
		return "", core.ErrUnknownTable
	}
	var b strings.Builder
	for i, r := range table {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return "sso_" + b.String(), nil
}

func validColumn(table, col string) bool {
	for _, c := range core.Columns[table] {
		if c == col {
			return true
		}
	}
	return false
}

func (s *Store) migrate(ctx context.Context) error {
	for table, cols := range core.Columns {
		name, err := sqlName(table)
		if err != nil {
			return err
		}
		defs := make([]string, 0, len(cols)+1)
		defs = append(defs, "rn bigserial primary key")
		for _, c := range cols {
			defs = append(defs, c+" text not null default ''")
		}
		ddl := fmt.Sprintf("create table if not exists %s (%s)", name, strings.Join(defs, ", "))
		if _, err := s.pool.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("pg: migrate %s: %w", table, err)
		}
	}
	return nil
}

func (s *Store) Append(ctx context.Context, table string, row core.Row) error {
	name, err := sqlName(table)
	if err != nil {
		return err
	}
	cols := core.Columns[table]
	ph := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		ph[i] = fmt.Sprintf("$%d", i+1)
		args[i] = row[c]
	}
	q := fmt.Sprintf("insert into %s (%s) values (%s)", name, strings.Join(cols, ", "), strings.Join(ph, ", "))
	_, err = s.pool.Exec(ctx, q, args...)
	return err
}

func (s *Store) selectAll(ctx context.Context, table string) ([]core.Row, []int64, error) {
	name, err := sqlName(table)
	if err != nil {
		return nil, nil, err
	}
	cols := core.Columns[table]
	q := fmt.Sprintf("select rn, %s from %s order by rn", strings.Join(cols, ", "), name)
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var out []core.Row
	var rns []int64
	for rows.Next() {
		vals := make([]string, len(cols))
		dest := make([]any, 0, len(cols)+1)
		var rn int64
		dest = append(dest, &rn)
		for i := range vals {
			dest = append(dest, &vals[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, err
		}
		r := make(core.Row, len(cols))
		for i, c := range cols {
			r[c] = vals[i]
		}
		out = append(out, r)
		rns = append(rns, rn)
	}
	return out, rns, rows.Err()
}

func (s *Store) GetAll(ctx context.Context, table string) ([]core.Row, error) {
	out, _, err := s.selectAll(ctx, table)
	return out, err
}

func (s *Store) FindByColumn(ctx context.Context, table, col, value string) (core.Row, error) {
	name, err := sqlName(table)
	if err != nil {
		return nil, err
	}
	if !validColumn(table, col) {
		return nil, core.ErrInvalid
	}
	cols := core.Columns[table]
	q := fmt.Sprintf("select %s from %s where %s = $1 order by rn limit 1", strings.Join(cols, ", "), name, col)

	vals := make([]string, len(cols))
	dest := make([]any, len(cols))
	for i := range vals {
		dest[i] = &vals[i]
	}
	if err := s.pool.QueryRow(ctx, q, value).Scan(dest...); err != nil {
		if err == pgx.ErrNoRows {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	r := make(core.Row, len(cols))
	for i, c := range cols {
		r[c] = vals[i]
	}
	return r, nil
}

func (s *Store) FindAllByColumn(ctx context.Context, table, col, value string) ([]core.Row, error) {
	if !validColumn(table, col) {
		return nil, core.ErrInvalid
	}
	all, _, err := s.selectAll(ctx, table)
	if err != nil {
		return nil, err
	}
	var out []core.Row
	for _, r := range all {
		if r[col] == value {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) IndexOfByColumn(ctx context.Context, table, col, value string) (int, error) {
	if !validColumn(table, col) {
		return -1, core.ErrInvalid
	}
	all, _, err := s.selectAll(ctx, table)
	if err != nil {
		return -1, err
	}
	for i, r := range all {
		if r[col] == value {
			return i, nil
		}
	}
	return -1, nil
}

// rnAt resuelve el ordinal SQL de la fila en la posición index.
func (s *Store) rnAt(ctx context.Context, table string, index int) (int64, error) {
	if index < 0 {
		return 0, core.ErrNotFound
	}
	_, rns, err := s.selectAll(ctx, table)
	if err != nil {
		return 0, err
	}
	if index >= len(rns) {
		return 0, core.ErrNotFound
	}
	return rns[index], nil
}

func (s *Store) UpdateByIndex(ctx context.Context, table string, index int, row core.Row) error {
	name, err := sqlName(table)
	if err != nil {
		return err
	}
	rn, err := s.rnAt(ctx, table, index)
	if err != nil {
		return err
	}
	cols := core.Columns[table]
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+1)
		args = append(args, row[c])
	}
	args = append(args, rn)
	q := fmt.Sprintf("update %s set %s where rn = $%d", name, strings.Join(sets, ", "), len(cols)+1)
	tag, err := s.pool.Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteByIndex(ctx context.Context, table string, index int) error {
	name, err := sqlName(table)
	if err != nil {
		return err
	}
	rn, err := s.rnAt(ctx, table, index)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, fmt.Sprintf("delete from %s where rn = $1", name), rn)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}
