package application

import (
	"github.com/google/wire"
	"github.com/nutriassist/backend/internal/application/assistant"
	"github.com/nutriassist/backend/internal/application/export"
)

// ProviderSet Application 层总 ProviderSet
var ProviderSet = wire.NewSet(
	assistant.ProviderSet,
	export.ProviderSet,
)
