package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/nutriassist/backend/internal/infrastructure/config"
)

// OpenDB 打开数据库连接
func OpenDB(cfg *config.Config) (*sql.DB, error) {
	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, fmt.Errorf("failed to get database path: %w", err)
	}

	// 确保目录存在
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// 测试连接
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// initSchema 初始化表结构
func initSchema(db *sql.DB) error {
	createPatientsSQL := `
	CREATE TABLE IF NOT EXISTS patients (
		mrn TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		age INTEGER NOT NULL,
		gender TEXT NOT NULL,
		details TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);`

	if _, err := db.Exec(createPatientsSQL); err != nil {
		return fmt.Errorf("failed to create patients table: %w", err)
	}

	createArtifactsSQL := `
	CREATE TABLE IF NOT EXISTS export_artifacts (
		id TEXT PRIMARY KEY,
		filename TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);`

	if _, err := db.Exec(createArtifactsSQL); err != nil {
		return fmt.Errorf("failed to create export_artifacts table: %w", err)
	}

	createArtifactIndexSQL := `
	CREATE INDEX IF NOT EXISTS idx_export_artifacts_created_at ON export_artifacts(created_at);`

	if _, err := db.Exec(createArtifactIndexSQL); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	return nil
}
