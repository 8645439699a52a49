package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo matches the output of SHOW COLUMNS.
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string // Pointer because NULL default is possible
	Extra   string
}

// GetTableColumns retrieves the column definitions for a given table.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo
	err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
		columns[i].Field = strings.ToLower(columns[i].Field)
	}
	return columns, nil
}

// VerifyTables fails fast when an expected table is missing, so a
// misconfigured instance does not come up half-working and start
// diverging from the rest of the fleet.
func VerifyTables(db *gorm.DB, tables ...string) error {
	for _, table := range tables {
		cols, err := GetTableColumns(db, table)
		if err != nil {
			return err
		}
		if len(cols) == 0 {
			return fmt.Errorf("table %s exists but has no columns", table)
		}
	}
	return nil
}
