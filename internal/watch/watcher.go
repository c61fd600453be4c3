// Package watch 监听文案文件，变化后重新加载
//
// 监听的是文件所在目录而不是文件本身：编辑器保存时常常先写临时文件再改名，
// 直接监听文件会在第一次保存后失效。
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/decker502/valentine/pkg/config"
	"github.com/decker502/valentine/pkg/logging"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const (
	defaultDebounce = 200 * time.Millisecond
	tickInterval    = 50 * time.Millisecond
)

// ContentWatcher 监听文案文件并把通过验证的新文案发送到 Updates()
type ContentWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	logger   *zap.Logger

	updates chan *config.Content
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool

	pending time.Time // 最近一次未处理事件的时间，零值表示没有
}

// New 创建文案监听器
func New(path string, logger *zap.Logger) (*ContentWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve content path %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &ContentWatcher{
		watcher:  w,
		path:     abs,
		debounce: defaultDebounce,
		logger:   logging.OrNop(logger).Named("ContentWatcher"),
		updates:  make(chan *config.Content, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Updates 返回新文案的通道
// 只保留最新的一份，游戏循环每帧非阻塞地读取
func (cw *ContentWatcher) Updates() <-chan *config.Content {
	return cw.updates
}

// Start 开始监听（非阻塞）
func (cw *ContentWatcher) Start(ctx context.Context) error {
	cw.mu.Lock()
	if cw.running {
		cw.mu.Unlock()
		return nil
	}
	cw.running = true
	cw.mu.Unlock()

	dir := filepath.Dir(cw.path)
	if err := cw.watcher.Add(dir); err != nil {
		cw.mu.Lock()
		cw.running = false
		cw.mu.Unlock()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	cw.logger.Info("开始监听文案", zap.String("path", cw.path))

	go cw.run(ctx)
	return nil
}

// Stop 停止监听并等待 goroutine 退出
func (cw *ContentWatcher) Stop() {
	cw.mu.Lock()
	wasRunning := cw.running
	cw.running = false
	cw.mu.Unlock()

	if wasRunning {
		close(cw.stopCh)
		<-cw.doneCh
	}
	if err := cw.watcher.Close(); err != nil {
		cw.logger.Warn("关闭监听器失败", zap.Error(err))
	}
	cw.logger.Debug("已停止")
}

func (cw *ContentWatcher) run(ctx context.Context) {
	defer close(cw.doneCh)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stopCh:
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			cw.handleEvent(event)

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Warn("监听错误", zap.Error(err))

		case now := <-ticker.C:
			if !cw.pending.IsZero() && now.Sub(cw.pending) >= cw.debounce {
				cw.pending = time.Time{}
				cw.reload()
			}
		}
	}
}

// handleEvent 只关心目标文件的写入、创建和改名
func (cw *ContentWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != cw.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	cw.logger.Debug("文件事件", zap.Stringer("op", event.Op))
	cw.pending = time.Now()
}

// reload 重新加载文案，验证失败时保留旧文案
func (cw *ContentWatcher) reload() {
	content, err := config.LoadContent(cw.path)
	if err != nil {
		cw.logger.Warn("新文案无效，已忽略", zap.Error(err))
		return
	}

	// 丢弃还没被取走的旧版本
	select {
	case <-cw.updates:
	default:
	}
	cw.updates <- content
	cw.logger.Info("文案已重新加载", zap.Int("reasons", content.ReasonCount()))
}
