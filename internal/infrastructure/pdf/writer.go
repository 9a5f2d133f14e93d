package pdf

import (
	"fmt"
	"os"
	"path/filepath"

	"log/slog"

	"github.com/jung-kurt/gofpdf"
	applog "github.com/nutriassist/backend/internal/infrastructure/log"
)

// 页面布局常量（A4，单位 mm）
const (
	leftMargin  = 20.0
	topMargin   = 25.0
	rightMargin = 25.0
	lineHeight  = 6.0
	fontSize    = 12.0
)

// Writer 将对话摘要渲染为 PDF 文件
type Writer struct {
	outputDir string
	logger    *slog.Logger
}

// NewWriter 创建 PDF 渲染器
func NewWriter(outputDir string) *Writer {
	return &Writer{
		outputDir: outputDir,
		logger:    applog.NewModuleLogger("pdf", "writer"),
	}
}

// Write 渲染文本为 PDF，返回产物文件名
// 文本按段落换行、自动折行、自动分页
func (w *Writer) Write(filename, title, text string) (string, error) {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(leftMargin, topMargin, rightMargin)
	doc.SetAutoPageBreak(true, topMargin)
	doc.AddPage()

	// 标题
	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	doc.Ln(4)

	// 正文：MultiCell 负责折行与分页
	doc.SetFont("Helvetica", "", fontSize)
	pageWidth, _ := doc.GetPageSize()
	textWidth := pageWidth - leftMargin - rightMargin
	// gofpdf 的核心字体只支持 latin-1
	translate := doc.UnicodeTranslatorFromDescriptor("")
	doc.MultiCell(textWidth, lineHeight, translate(text), "", "L", false)

	outPath := filepath.Join(w.outputDir, filename)
	if err := doc.OutputFileAndClose(outPath); err != nil {
		return "", fmt.Errorf("failed to write PDF: %w", err)
	}

	w.logger.Info("PDF written", "path", outPath)
	return filename, nil
}

// Path 返回产物的完整路径
func (w *Writer) Path(filename string) string {
	return filepath.Join(w.outputDir, filename)
}
