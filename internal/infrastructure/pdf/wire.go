package pdf

import (
	"github.com/google/wire"
	"github.com/nutriassist/backend/internal/infrastructure/config"
)

// ProvideWriter 从配置构建 PDF 渲染器
func ProvideWriter(cfg *config.Config) (*Writer, error) {
	outputDir, err := cfg.ExportDir()
	if err != nil {
		return nil, err
	}
	return NewWriter(outputDir), nil
}

// ProviderSet PDF ProviderSet
var ProviderSet = wire.NewSet(ProvideWriter)
