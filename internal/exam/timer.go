package exam

import (
	"fmt"
	"sync"
	"time"
)

// Timer 考试倒计时。以1秒为粒度递减，归零时触发一次 onExpire 后自行停止。
// Tick 是推进一秒的最小单元，Run 用墙钟驱动它。
type Timer struct {
	mu        sync.Mutex
	remaining int
	running   bool
	onExpire  func()
	stop      chan struct{}
}

func NewTimer() *Timer {
	return &Timer{}
}

// Start 设置倒计时状态，不会自行启动墙钟，由调用方决定是否调用 Run。
// 定时器已在运行时返回 ErrTimerRunning，调用方必须先 Stop。
func (t *Timer) Start(durationSeconds int, onExpire func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return ErrTimerRunning
	}

	t.remaining = durationSeconds
	t.running = true
	t.onExpire = onExpire
	t.stop = make(chan struct{})
	return nil
}

// Run 每秒调用一次 Tick，直到 Stop 或到期。应在独立 goroutine 中运行。
func (t *Timer) Run() {
	t.mu.Lock()
	stop := t.stop
	t.mu.Unlock()
	if stop == nil {
		return
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.Tick()
		}
	}
}

// Tick 推进一秒。定时器未运行时为空操作，因此 Stop 或到期之后的
// tick 都是惰性的，onExpire 至多触发一次。
func (t *Timer) Tick() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}

	t.remaining--
	if t.remaining > 0 {
		t.mu.Unlock()
		return
	}

	t.remaining = 0
	t.running = false
	fire := t.onExpire
	close(t.stop)
	t.mu.Unlock()

	if fire != nil {
		fire()
	}
}

// Stop 取消后续的 tick。幂等，手动交卷时调用以避免与到期自动交卷竞争。
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return
	}
	t.running = false
	close(t.stop)
}

func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// FormatSeconds 把剩余秒数格式化为 MM:SS。展示层只依赖这里的数值状态，
// 不做反向解析。
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
