package store

import (
	"database/sql"
	"embed"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rotisserie/eris"
)

//go:embed schema.sql
var schemaFS embed.FS

// Store SQLite 运行记录存储
type Store struct {
	db *sql.DB
}

// New 打开（或创建）数据库并初始化表结构
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, eris.Wrap(err, "store: create data directory")
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, eris.Wrap(err, "store: open database")
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "store: ping database")
	}

	// SQLite 单连接
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return eris.Wrap(err, "store: read schema.sql")
	}
	if _, err := s.db.Exec(string(schemaSQL)); err != nil {
		return eris.Wrap(err, "store: execute schema")
	}
	return nil
}

// Close 关闭数据库连接
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
