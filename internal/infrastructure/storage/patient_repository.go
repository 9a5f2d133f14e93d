package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nutriassist/backend/internal/domain/patient"
)

// 确保 PatientRepositoryImpl 实现了 patient.Repository 接口
var _ patient.Repository = (*PatientRepositoryImpl)(nil)

// PatientRepositoryImpl 患者档案仓库实现
type PatientRepositoryImpl struct {
	db *sql.DB
}

// NewPatientRepository 创建患者档案仓库实例
func NewPatientRepository(db *sql.DB) patient.Repository {
	return &PatientRepositoryImpl{db: db}
}

// GetByMRN 按 MRN 查询档案
func (r *PatientRepositoryImpl) GetByMRN(mrn string) (*patient.Record, error) {
	query := `
		SELECT mrn, name, age, gender, details, created_at, updated_at
		FROM patients WHERE mrn = ?`

	row := r.db.QueryRow(query, mrn)

	record, err := scanPatient(row)
	if err == sql.ErrNoRows {
		return nil, patient.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query patient: %w", err)
	}
	return record, nil
}

// Save 保存档案（存在则覆盖）
func (r *PatientRepositoryImpl) Save(record *patient.Record) error {
	detailsJSON, err := json.Marshal(record.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal patient details: %w", err)
	}

	now := time.Now().Unix()
	if record.CreatedAt == 0 {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	query := `
		INSERT INTO patients (mrn, name, age, gender, details, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(mrn) DO UPDATE SET
			name = excluded.name,
			age = excluded.age,
			gender = excluded.gender,
			details = excluded.details,
			updated_at = excluded.updated_at`

	_, err = r.db.Exec(query,
		record.MRN,
		record.Name,
		record.Age,
		record.Gender,
		string(detailsJSON),
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save patient: %w", err)
	}
	return nil
}

// List 返回全部档案，按 MRN 排序
func (r *PatientRepositoryImpl) List() ([]*patient.Record, error) {
	query := `
		SELECT mrn, name, age, gender, details, created_at, updated_at
		FROM patients ORDER BY mrn`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	defer rows.Close()

	var records []*patient.Record
	for rows.Next() {
		record, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// scanner 兼容 sql.Row 和 sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

// scanPatient 扫描一行患者记录
func scanPatient(s scanner) (*patient.Record, error) {
	var record patient.Record
	var detailsJSON string

	err := s.Scan(
		&record.MRN,
		&record.Name,
		&record.Age,
		&record.Gender,
		&detailsJSON,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if detailsJSON != "" {
		if err := json.Unmarshal([]byte(detailsJSON), &record.Details); err != nil {
			return nil, fmt.Errorf("failed to unmarshal patient details: %w", err)
		}
	}
	return &record, nil
}
