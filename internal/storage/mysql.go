package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

// SQLAdapter stores documents in MySQL through database/sql.
type SQLAdapter struct {
	db *sql.DB
}

// OpenMySQL connects to MySQL and creates the records table if needed.
func OpenMySQL(ctx context.Context, dsn string) (*SQLAdapter, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	cfg.ParseTime = true
	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	_, err = db.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS storage_records ("+
		"record_key VARCHAR(100) PRIMARY KEY, "+
		"`value` LONGTEXT NOT NULL, "+
		"updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP)")
	if err != nil {
		db.Close()
		return nil, err
	}
	return &SQLAdapter{db: db}, nil
}

func (s *SQLAdapter) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT `value` FROM storage_records WHERE record_key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (s *SQLAdapter) Save(ctx context.Context, key string, data []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO storage_records (record_key, `value`) VALUES (?, ?) "+
			"ON DUPLICATE KEY UPDATE `value` = VALUES(`value`)",
		key, string(data))
	return err
}

func (s *SQLAdapter) Close() error {
	return s.db.Close()
}
