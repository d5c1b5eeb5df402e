package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // Driver do Postgres
	_ "modernc.org/sqlite"             // SQLite embarcado (modo local e testes)
)

// NewDBConnection abre a conexão, configura o pool e testa o Ping.
func NewDBConnection(dialect Dialect, connString string) (*sql.DB, error) {
	if err := dialect.Validate(); err != nil {
		return nil, err
	}

	if dialect == SQLite {
		connString = sqliteDSN(connString)
	}

	db, err := sql.Open(dialect.DriverName(), connString)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir banco: %w", err)
	}

	if dialect == SQLite {
		// uma conexão só: ":memory:" vive enquanto ela existir e não há
		// disputa de lock de escrita
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("erro ao conectar no banco: %w", err)
	}

	return db, nil
}

// sqliteDSN liga as foreign keys pelo DSN, assim toda conexão nova do pool
// já nasce com elas ativas.
func sqliteDSN(connString string) string {
	if strings.Contains(connString, "foreign_keys") {
		return connString
	}
	sep := "?"
	if strings.Contains(connString, "?") {
		sep = "&"
	}
	return connString + sep + "_pragma=foreign_keys(1)"
}
