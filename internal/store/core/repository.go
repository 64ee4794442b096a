// Package core define el contrato del row store: almacenamiento tabular
// genérico sin transacciones, sin CAS y sin constraints de unicidad.
//
// Toda invariante de la capa superior ("una sesión viva por usuario",
// "un OTP vivo por email") se sostiene con protocolos read-then-write:
// delete-before-insert y delete-de-ausente-es-éxito. Ver DESIGN.md.
package core

import "context"

// Row es una fila materializada: columna -> valor.
// Los adapters garantizan que toda fila devuelta tiene exactamente las
// columnas declaradas en Columns[tabla] (faltantes quedan "").
type Row map[string]string

// Clone devuelve una copia independiente de la fila.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// RowStore es la superficie mínima que el core necesita del backend tabular.
//
// Semántica de índices: los índices son posiciones dentro del orden de
// inserción vigente (0-based). Un delete corre los índices posteriores;
// por eso los consumidores siempre re-resuelven el índice antes de
// escribir (IndexOfByColumn + UpdateByIndex/DeleteByIndex).
type RowStore interface {
	// Append agrega una fila al final de la tabla.
	Append(ctx context.Context, table string, row Row) error

	// GetAll devuelve todas las filas de la tabla en orden de inserción.
	GetAll(ctx context.Context, table string) ([]Row, error)

	// FindByColumn devuelve la primera fila cuyo col == value.
	// Retorna ErrNotFound si no hay match.
	FindByColumn(ctx context.Context, table, col, value string) (Row, error)

	// FindAllByColumn devuelve todas las filas cuyo col == value.
	FindAllByColumn(ctx context.Context, table, col, value string) ([]Row, error)

	// IndexOfByColumn devuelve el índice de la primera fila cuyo col == value,
	// o -1 si no existe.
	IndexOfByColumn(ctx context.Context, table, col, value string) (int, error)

	// UpdateByIndex reemplaza la fila en el índice dado.
	UpdateByIndex(ctx context.Context, table string, index int, row Row) error

	// DeleteByIndex elimina la fila en el índice dado.
	// Borrar un índice fuera de rango es un error (la fila se movió:
	// el consumidor debe re-resolver).
	DeleteByIndex(ctx context.Context, table string, index int) error
}

// DeleteAllByColumn borra todas las filas con col == value. Helper común a
// los protocolos delete-before-insert; borra de atrás hacia adelante para
// no invalidar los índices pendientes. Ausencia de filas no es error.
func DeleteAllByColumn(ctx context.Context, s RowStore, table, col, value string) error {
	rows, err := s.GetAll(ctx, table)
	if err != nil {
		return err
	}
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i][col] == value {
			if err := s.DeleteByIndex(ctx, table, i); err != nil {
				return err
			}
		}
	}
	return nil
}
