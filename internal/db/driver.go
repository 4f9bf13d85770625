package db

import (
	"database/sql"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/text/cases"
)

// DriverName is the database/sql driver registered by this package. It is
// go-sqlite3 with a casefold(text) SQL function used for case-insensitive search.
const DriverName = "sqlite3_todo"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("casefold", Fold, true)
		},
	})
}

// Fold returns the Unicode case-folded form of s.
func Fold(s string) string {
	// A Caser carries state and must not be shared across goroutines.
	return cases.Fold().String(s)
}
