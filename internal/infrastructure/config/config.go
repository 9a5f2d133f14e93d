package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// 环境变量名定义
const (
	EnvHTTPPort     = "NUTRIASSIST_HTTP_PORT"
	EnvMCPPort      = "NUTRIASSIST_MCP_PORT"
	EnvConfigFile   = "NUTRIASSIST_CONFIG"
	EnvDatabasePath = "NUTRIASSIST_DB_PATH"
	EnvLLMAPIKey    = "NUTRIASSIST_LLM_API_KEY"
	EnvSearchAPIKey = "NUTRIASSIST_SEARCH_API_KEY"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	LLM       LLMConfig       `yaml:"llm"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Qdrant    QdrantConfig    `yaml:"qdrant"`
	WebSearch WebSearchConfig `yaml:"web_search"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Export    ExportConfig    `yaml:"export"`

	// 配置文件路径，空表示纯默认值 + 环境变量
	path string
}

// ServerConfig 服务器配置
type ServerConfig struct {
	HTTPPort string `yaml:"http_port"`
	MCPPort  string `yaml:"mcp_port"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Path SQLite 数据库路径，空表示使用 ~/.nutriassist/nutriassist.db
	Path string `yaml:"path"`
}

// LLMConfig Chat Completion API 配置
type LLMConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxRetries     int    `yaml:"max_retries"`
}

// Timeout 返回请求超时时间
func (c *LLMConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// EmbeddingConfig Embedding API 配置
type EmbeddingConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// QdrantConfig 向量库配置
type QdrantConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Collection string `yaml:"collection"`
}

// WebSearchConfig 联网搜索配置
type WebSearchConfig struct {
	Endpoint            string `yaml:"endpoint"`
	APIKey              string `yaml:"api_key"`
	ProbeTimeoutSeconds int    `yaml:"probe_timeout_seconds"`
	FetchTimeoutSeconds int    `yaml:"fetch_timeout_seconds"`
}

// ProbeTimeout 返回存活探测超时时间
func (c *WebSearchConfig) ProbeTimeout() time.Duration {
	if c.ProbeTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.ProbeTimeoutSeconds) * time.Second
}

// FetchTimeout 返回单个页面抓取超时时间
func (c *WebSearchConfig) FetchTimeout() time.Duration {
	if c.FetchTimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// PipelineConfig 问答流水线配置
// 这部分支持运行期热更新（见 Watcher）
type PipelineConfig struct {
	// ChunkSize 分块最大字符数
	ChunkSize int `yaml:"chunk_size"`
	// TopK 向量检索返回条数
	TopK int `yaml:"top_k"`
	// MaxFetchURLs 联网抓取的最大 URL 数
	MaxFetchURLs int `yaml:"max_fetch_urls"`
	// ActiveMRN 当前就诊患者的 MRN，注入到合成 Prompt
	ActiveMRN string `yaml:"active_mrn"`
}

// ExportConfig 导出配置
type ExportConfig struct {
	// OutputDir PDF 产物目录，空表示使用 ~/.nutriassist/exports
	OutputDir string `yaml:"output_dir"`
}

// NewConfig 创建配置（默认值 + 配置文件 + 环境变量覆盖）
func NewConfig() *Config {
	cfg := defaultConfig()

	path := os.Getenv(EnvConfigFile)
	if path == "" {
		path = "config.yaml"
	}
	if _, err := os.Stat(path); err == nil {
		// 配置文件损坏时保留默认值，由调用方记录日志
		_ = cfg.loadFile(path)
		cfg.path = path
	}

	cfg.applyEnv()
	return cfg
}

// defaultConfig 返回全部默认值
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort: ":8000",
			MCPPort:  ":8001",
		},
		LLM: LLMConfig{
			BaseURL:        "https://api.groq.com/openai/v1",
			Model:          "llama3-8b-8192",
			TimeoutSeconds: 60,
			MaxRetries:     3,
		},
		Embedding: EmbeddingConfig{
			BaseURL: "https://api.openai.com/v1",
			Model:   "text-embedding-3-small",
		},
		Qdrant: QdrantConfig{
			Host:       "localhost",
			Port:       6334,
			Collection: "nutrition_knowledge",
		},
		WebSearch: WebSearchConfig{
			Endpoint:            "https://api.tavily.com/search",
			ProbeTimeoutSeconds: 5,
			FetchTimeoutSeconds: 15,
		},
		Pipeline: PipelineConfig{
			ChunkSize:    2000,
			TopK:         10,
			MaxFetchURLs: 3,
		},
	}
}

// loadFile 从 YAML 文件加载配置
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// applyEnv 应用环境变量覆盖
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvHTTPPort); v != "" {
		c.Server.HTTPPort = v
	}
	if v := os.Getenv(EnvMCPPort); v != "" {
		c.Server.MCPPort = v
	}
	if v := os.Getenv(EnvDatabasePath); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvLLMAPIKey); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv(EnvSearchAPIKey); v != "" {
		c.WebSearch.APIKey = v
	}
}

// Path 返回加载的配置文件路径，未加载文件时为空
func (c *Config) Path() string {
	return c.path
}

// DatabasePath 解析数据库文件路径
func (c *Config) DatabasePath() (string, error) {
	if c.Database.Path != "" {
		return c.Database.Path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".nutriassist", "nutriassist.db"), nil
}

// ExportDir 解析 PDF 产物目录
func (c *Config) ExportDir() (string, error) {
	if c.Export.OutputDir != "" {
		return c.Export.OutputDir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".nutriassist", "exports"), nil
}

// NewLLMConfig 提取 LLM 配置
func NewLLMConfig(cfg *Config) *LLMConfig {
	return &cfg.LLM
}

// NewEmbeddingConfig 提取 Embedding 配置
func NewEmbeddingConfig(cfg *Config) *EmbeddingConfig {
	return &cfg.Embedding
}

// NewQdrantConfig 提取向量库配置
func NewQdrantConfig(cfg *Config) *QdrantConfig {
	return &cfg.Qdrant
}

// NewWebSearchConfig 提取联网搜索配置
func NewWebSearchConfig(cfg *Config) *WebSearchConfig {
	return &cfg.WebSearch
}
