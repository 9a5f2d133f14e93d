package pdf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Write(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir)

	filename, err := writer.Write("summary.pdf", "Chat History Summary", "Line one.\n\nLine two with more detail.")
	require.NoError(t, err)
	assert.Equal(t, "summary.pdf", filename)

	data, err := os.ReadFile(filepath.Join(dir, "summary.pdf"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"), "产物应为合法 PDF 文件")
	assert.Greater(t, len(data), 500)
}

func TestWriter_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	writer := NewWriter(dir)

	_, err := writer.Write("out.pdf", "Title", "body")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "out.pdf"))
	assert.NoError(t, err)
}

func TestWriter_LongTextPaginates(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir)

	// 足够长的正文应跨页而不报错
	long := strings.Repeat("This sentence pads out the summary body to force pagination. ", 400)
	_, err := writer.Write("long.pdf", "Title", long)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "long.pdf"))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(2000))
}

func TestWriter_Path(t *testing.T) {
	writer := NewWriter("/tmp/exports")
	assert.Equal(t, filepath.Join("/tmp/exports", "a.pdf"), writer.Path("a.pdf"))
}
