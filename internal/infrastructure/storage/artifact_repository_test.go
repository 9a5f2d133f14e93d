package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactRepository_SaveAndGet(t *testing.T) {
	repo := NewArtifactRepository(newTestDB(t))

	artifact := &ExportArtifact{ID: "abc-123", Filename: "chat-summary-abc-123.pdf"}
	require.NoError(t, repo.Save(artifact))
	assert.NotZero(t, artifact.CreatedAt, "保存时应补写创建时间")

	got, err := repo.GetByID("abc-123")
	require.NoError(t, err)
	assert.Equal(t, "chat-summary-abc-123.pdf", got.Filename)
}

func TestArtifactRepository_NotFound(t *testing.T) {
	repo := NewArtifactRepository(newTestDB(t))

	_, err := repo.GetByID("missing")
	assert.ErrorIs(t, err, ErrArtifactNotFound)
}
