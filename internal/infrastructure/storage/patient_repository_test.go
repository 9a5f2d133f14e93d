package storage

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/nutriassist/backend/internal/domain/patient"
	"github.com/nutriassist/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	t.Setenv(config.EnvDatabasePath, filepath.Join(t.TempDir(), "test.db"))
	db, err := OpenDB(config.NewConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestPatientRepository_SaveAndGet(t *testing.T) {
	repo := NewPatientRepository(newTestDB(t))

	record := &patient.Record{
		MRN:    "MRN-001",
		Name:   "Alex Doe",
		Age:    42,
		Gender: "female",
		Details: map[string]string{
			"allergies": "peanuts",
			"condition": "type 2 diabetes",
		},
	}
	require.NoError(t, repo.Save(record))
	assert.NotZero(t, record.CreatedAt, "保存时应写入时间戳")

	got, err := repo.GetByMRN("MRN-001")
	require.NoError(t, err)
	assert.Equal(t, "Alex Doe", got.Name)
	assert.Equal(t, 42, got.Age)
	assert.Equal(t, "peanuts", got.Details["allergies"])
}

func TestPatientRepository_NotFound(t *testing.T) {
	repo := NewPatientRepository(newTestDB(t))

	_, err := repo.GetByMRN("MRN-NOPE")
	assert.ErrorIs(t, err, patient.ErrNotFound)
}

func TestPatientRepository_Upsert(t *testing.T) {
	repo := NewPatientRepository(newTestDB(t))

	record := &patient.Record{MRN: "MRN-002", Name: "Sam Lee", Age: 30, Gender: "male"}
	require.NoError(t, repo.Save(record))

	record.Age = 31
	record.Details = map[string]string{"note": "updated"}
	require.NoError(t, repo.Save(record))

	got, err := repo.GetByMRN("MRN-002")
	require.NoError(t, err)
	assert.Equal(t, 31, got.Age, "同 MRN 再次保存应更新档案")
	assert.Equal(t, "updated", got.Details["note"])

	records, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, records, 1, "更新不应产生新行")
}

func TestPatientRepository_List(t *testing.T) {
	repo := NewPatientRepository(newTestDB(t))

	require.NoError(t, repo.Save(&patient.Record{MRN: "MRN-B", Name: "B", Age: 1, Gender: "x"}))
	require.NoError(t, repo.Save(&patient.Record{MRN: "MRN-A", Name: "A", Age: 2, Gender: "y"}))

	records, err := repo.List()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "MRN-A", records[0].MRN, "列表按 MRN 排序")
	assert.Equal(t, "MRN-B", records[1].MRN)
}
