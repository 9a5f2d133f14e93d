package config

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	applog "github.com/nutriassist/backend/internal/infrastructure/log"
)

// 防抖延迟：编辑器保存通常触发多个连续事件
const reloadDebounce = 500 * time.Millisecond

// Runtime 运行期可热更新的流水线配置
// 通过原子指针交换实现无锁读取，请求处理中读到的是一个一致的快照。
type Runtime struct {
	current atomic.Pointer[PipelineConfig]
}

// NewRuntime 从初始配置创建运行期配置
func NewRuntime(cfg *Config) *Runtime {
	r := &Runtime{}
	pipeline := cfg.Pipeline
	r.current.Store(&pipeline)
	return r
}

// Pipeline 返回当前流水线配置快照
func (r *Runtime) Pipeline() PipelineConfig {
	return *r.current.Load()
}

// update 交换流水线配置
func (r *Runtime) update(pipeline PipelineConfig) {
	r.current.Store(&pipeline)
}

// Watcher 配置文件监听器
// 监听配置文件变更并热更新 Pipeline 段（分块大小、TopK、当前患者 MRN 等），
// 其余段（端口、密钥）仍需重启生效。
type Watcher struct {
	path    string
	runtime *Runtime
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	debounceTimer *time.Timer
	debounceMu    sync.Mutex

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewWatcher 创建配置文件监听器
// 未加载配置文件时返回 nil，调用方跳过启动
func NewWatcher(cfg *Config, runtime *Runtime) (*Watcher, error) {
	if cfg.Path() == "" {
		return nil, nil
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		path:    cfg.Path(),
		runtime: runtime,
		watcher: fsWatcher,
		logger:  applog.NewModuleLogger("config", "watcher"),
		stopCh:  make(chan struct{}),
	}, nil
}

// Start 启动监听
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.path); err != nil {
		return err
	}

	w.logger.Info("Watching config file for pipeline changes", "path", w.path)

	w.wg.Add(1)
	go w.watchLoop()

	return nil
}

// Stop 停止监听
func (w *Watcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
	w.wg.Wait()

	w.debounceMu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceMu.Unlock()
}

// watchLoop 事件处理循环
func (w *Watcher) watchLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.scheduleReload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Config watcher error", "error", err)
		}
	}
}

// scheduleReload 防抖后触发重载
func (w *Watcher) scheduleReload() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(reloadDebounce, w.reload)
}

// reload 重新读取配置文件并交换 Pipeline 段
func (w *Watcher) reload() {
	cfg := defaultConfig()
	if err := cfg.loadFile(w.path); err != nil {
		w.logger.Warn("Failed to reload config file, keeping current settings",
			"path", w.path,
			"error", err,
		)
		return
	}

	w.runtime.update(cfg.Pipeline)

	w.logger.Info("Pipeline config reloaded",
		"chunk_size", cfg.Pipeline.ChunkSize,
		"top_k", cfg.Pipeline.TopK,
		"max_fetch_urls", cfg.Pipeline.MaxFetchURLs,
		"active_mrn", cfg.Pipeline.ActiveMRN,
	)
}
