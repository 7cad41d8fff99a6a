package store

import (
	"database/sql"
	"encoding/json"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// marshalModifiers converts []string to JSON text for storage.
func marshalModifiers(mods []string) string {
	if len(mods) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(mods)
	return string(b)
}

// unmarshalModifiers converts JSON text back to []string. The result is
// never nil so it serializes as an array.
func unmarshalModifiers(s string) []string {
	mods := []string{}
	if s == "" || s == "null" {
		return mods
	}
	_ = json.Unmarshal([]byte(s), &mods)
	return mods
}

func insertID(res sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
