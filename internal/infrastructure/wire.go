package infrastructure

import (
	"github.com/google/wire"
	"github.com/nutriassist/backend/internal/infrastructure/config"
	"github.com/nutriassist/backend/internal/infrastructure/embedding"
	"github.com/nutriassist/backend/internal/infrastructure/llm"
	"github.com/nutriassist/backend/internal/infrastructure/pdf"
	"github.com/nutriassist/backend/internal/infrastructure/storage"
	"github.com/nutriassist/backend/internal/infrastructure/vector"
	"github.com/nutriassist/backend/internal/infrastructure/webcrawl"
	"github.com/nutriassist/backend/internal/infrastructure/websearch"
	"github.com/nutriassist/backend/internal/infrastructure/websocket"
)

// ProviderSet Infrastructure 层总 ProviderSet
var ProviderSet = wire.NewSet(
	config.ProviderSet,
	websocket.ProviderSet,
	storage.ProviderSet,
	pdf.ProviderSet,
	llm.NewClient,
	embedding.NewClient,
	vector.NewSearcher,
	websearch.NewClient,
	webcrawl.NewCrawler,
)
