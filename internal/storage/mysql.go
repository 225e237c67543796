package storage

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/go-sql-driver/mysql"
)

const mysqlSchema = `CREATE TABLE IF NOT EXISTS docspot_slots (
	slot_key   VARCHAR(255) NOT NULL PRIMARY KEY,
	value      LONGTEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`

type MySQL struct {
	db *sql.DB
}

// NewMySQL opens a MySQL/MariaDB backed store. The DSN uses the driver's format,
// e.g. user:pass@tcp(host:3306)/docspot?parseTime=true.
func NewMySQL(ctx context.Context, dsn string) (*MySQL, error) {
	if dsn == "" {
		return nil, errors.New("MYSQL_DSN is empty")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, mysqlSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &MySQL{db: db}, nil
}

func (m *MySQL) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var v string
	err := m.db.QueryRowContext(ctx, `SELECT value FROM docspot_slots WHERE slot_key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(v), true, nil
}

func (m *MySQL) Set(ctx context.Context, key string, value []byte) error {
	_, err := m.db.ExecContext(ctx,
		`INSERT INTO docspot_slots (slot_key, value) VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE value = VALUES(value)`, key, string(value))
	return err
}

func (m *MySQL) Remove(ctx context.Context, key string) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM docspot_slots WHERE slot_key = ?`, key)
	return err
}

func (m *MySQL) Close() error {
	return m.db.Close()
}
