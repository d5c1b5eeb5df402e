package database

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect escolhe o driver e o formato dos placeholders.
type Dialect string

const (
	Postgres Dialect = "pgx"
	SQLite   Dialect = "sqlite"
)

func (d Dialect) Validate() error {
	switch d {
	case Postgres, SQLite:
		return nil
	}
	return fmt.Errorf("driver de banco desconhecido: %q", string(d))
}

func (d Dialect) DriverName() string {
	return string(d)
}

// Rebind troca os "?" da query por $1, $2... no Postgres. As queries do
// pacote não usam "?" dentro de literais.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
