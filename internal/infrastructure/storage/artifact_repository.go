package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrArtifactNotFound 指定的导出产物不存在
var ErrArtifactNotFound = errors.New("export artifact not found")

// ExportArtifact 导出产物登记信息
type ExportArtifact struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	CreatedAt int64  `json:"created_at"`
}

// ArtifactRepository 导出产物仓库接口
type ArtifactRepository interface {
	// Save 登记一份导出产物
	Save(artifact *ExportArtifact) error

	// GetByID 按 ID 查询，不存在时返回 ErrArtifactNotFound
	GetByID(id string) (*ExportArtifact, error)
}

// 确保 ArtifactRepositoryImpl 实现了 ArtifactRepository 接口
var _ ArtifactRepository = (*ArtifactRepositoryImpl)(nil)

// ArtifactRepositoryImpl 导出产物仓库实现
type ArtifactRepositoryImpl struct {
	db *sql.DB
}

// NewArtifactRepository 创建导出产物仓库实例
func NewArtifactRepository(db *sql.DB) ArtifactRepository {
	return &ArtifactRepositoryImpl{db: db}
}

// Save 登记一份导出产物
func (r *ArtifactRepositoryImpl) Save(artifact *ExportArtifact) error {
	if artifact.CreatedAt == 0 {
		artifact.CreatedAt = time.Now().Unix()
	}

	query := `INSERT INTO export_artifacts (id, filename, created_at) VALUES (?, ?, ?)`
	_, err := r.db.Exec(query, artifact.ID, artifact.Filename, artifact.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save export artifact: %w", err)
	}
	return nil
}

// GetByID 按 ID 查询导出产物
func (r *ArtifactRepositoryImpl) GetByID(id string) (*ExportArtifact, error) {
	query := `SELECT id, filename, created_at FROM export_artifacts WHERE id = ?`

	var artifact ExportArtifact
	err := r.db.QueryRow(query, id).Scan(&artifact.ID, &artifact.Filename, &artifact.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrArtifactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query export artifact: %w", err)
	}
	return &artifact, nil
}
