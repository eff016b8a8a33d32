package postgres

import (
	"database/sql"

	"github.com/jackc/pgx/v5/pgtype"
)

// pgTypes decodes Postgres arrays that arrive through database/sql as text.
var pgTypes = pgtype.NewMap()

// textArray returns a scanner that decodes a text[] column into dst.
func textArray(dst *[]string) sql.Scanner {
	return pgTypes.SQLScanner(dst)
}

// orEmpty presents a NULL array as an empty list.
func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
