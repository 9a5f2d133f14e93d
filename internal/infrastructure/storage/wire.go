package storage

import "github.com/google/wire"

// ProviderSet Storage 基础设施层 ProviderSet
var ProviderSet = wire.NewSet(
	OpenDB,                // 提供数据库连接
	NewPatientRepository,  // 患者档案仓储
	NewArtifactRepository, // 导出产物仓储
)
