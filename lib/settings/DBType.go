package settings

import (
	"fmt"
	"strings"
)

type IDBType string

const (
	SQLITE   IDBType = "sqlite"
	MEMORY   IDBType = "memory"
	POSTGRES IDBType = "postgres"
)

// SupportedDBTypes lists the stores GetDB can open.
var SupportedDBTypes = []IDBType{MEMORY, SQLITE, POSTGRES}

// ParseDBType accepts the store names case-insensitively. Anything else,
// including dialects squirrel could speak but no store is written for
// (mysql, mssql), is rejected with the list of supported names.
func ParseDBType(s string) (IDBType, error) {
	name := IDBType(strings.ToLower(strings.TrimSpace(s)))
	for _, supported := range SupportedDBTypes {
		if name == supported {
			return supported, nil
		}
	}
	names := make([]string, len(SupportedDBTypes))
	for i, supported := range SupportedDBTypes {
		names[i] = supported.String()
	}
	return "", fmt.Errorf("unsupported dbType %q: use one of %s", s, strings.Join(names, ", "))
}

func (dbType IDBType) String() string {
	return string(dbType)
}
