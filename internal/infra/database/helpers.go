package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Layout fixo com nanossegundos: a ordenação por texto bate com a cronológica.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp inválido %q: %w", s, err)
	}
	return t, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// isForeignKeyViolation reconhece a violação de FK nos dois drivers.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		// o código pode vir estendido ou só SQLITE_CONSTRAINT, conforme a versão
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY ||
			strings.Contains(liteErr.Error(), "FOREIGN KEY constraint failed")
	}
	return false
}

// deleteWhere apaga por igualdade numa coluna. Tabela e coluna são
// constantes do pacote, mas vão citadas mesmo assim.
func deleteWhere(ctx context.Context, db *sql.DB, d Dialect, table, column, value string) (int64, error) {
	query := d.Rebind(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", pq.QuoteIdentifier(table), pq.QuoteIdentifier(column)))
	res, err := db.ExecContext(ctx, query, value)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}
