// Package schedule 提供由游戏循环驱动的定时任务
//
// 与 SunSpawnSystem 的 spawnTimer 一样，任务不使用 goroutine 或 time.Timer，
// 而是在每帧 Advance(deltaTime) 时累加计时器，到点后在调用方的 goroutine 中执行回调。
// 因此回调可以直接修改游戏状态，无需加锁。
//
// 任务可以挂在 Scope 上：Scope.Close() 会一次性取消其下所有任务，
// 用于把生成/衰减/延迟切换绑定到某个阶段的生命周期。
package schedule

import "time"

// Task 一个周期或一次性任务
type Task struct {
	name      string
	interval  time.Duration // 周期或延迟
	elapsed   time.Duration // 当前已累计时间
	repeat    bool          // true 为周期任务
	fn        func()
	cancelled bool
	done      bool // 一次性任务已执行
	fired     int  // 已执行次数
}

// Name 返回任务名称
func (t *Task) Name() string {
	return t.name
}

// Cancel 取消任务，之后不会再执行（可重复调用）
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.cancelled = true
}

// Active 任务是否仍会执行
func (t *Task) Active() bool {
	return t != nil && !t.cancelled && !t.done
}

// Fired 返回已执行次数
func (t *Task) Fired() int {
	return t.fired
}

// Scheduler 帧驱动的任务调度器
type Scheduler struct {
	tasks   []*Task
	scratch []*Task
	now     time.Duration
}

// New 创建调度器
func New() *Scheduler {
	return &Scheduler{
		tasks: make([]*Task, 0, 4),
	}
}

// Now 返回调度器累计运行时间
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Every 注册周期任务，首次执行在 interval 之后
// interval 必须大于 0
func (s *Scheduler) Every(name string, interval time.Duration, fn func()) *Task {
	return s.add(name, interval, true, fn)
}

// After 注册一次性任务，在 delay 之后执行
func (s *Scheduler) After(name string, delay time.Duration, fn func()) *Task {
	return s.add(name, delay, false, fn)
}

func (s *Scheduler) add(name string, interval time.Duration, repeat bool, fn func()) *Task {
	if interval <= 0 {
		panic("schedule: interval must be positive")
	}
	t := &Task{
		name:     name,
		interval: interval,
		repeat:   repeat,
		fn:       fn,
	}
	s.tasks = append(s.tasks, t)
	return t
}

// Pending 返回仍然有效的任务数
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if t.Active() {
			n++
		}
	}
	return n
}

// Advance 推进 deltaTime，执行所有到期任务
//
// 一帧内周期任务可能连续执行多次（deltaTime 大于周期时）。
// 回调中取消的任务立即生效；回调中新注册的任务从下一次 Advance 开始计时。
// 同一帧内不同任务的先后顺序不作保证。
func (s *Scheduler) Advance(deltaTime time.Duration) {
	if deltaTime < 0 {
		return
	}
	s.now += deltaTime

	// 只处理本帧开始前已存在的任务（回调中 CancelAll 会整理 s.tasks，这里用副本遍历）
	s.scratch = append(s.scratch[:0], s.tasks...)
	for _, t := range s.scratch {
		if !t.Active() {
			continue
		}
		t.elapsed += deltaTime
		for t.Active() && t.elapsed >= t.interval {
			t.elapsed -= t.interval
			if !t.repeat {
				t.done = true
			}
			t.fired++
			t.fn()
		}
	}

	clear(s.scratch)
	s.compact()
}

// CancelAll 取消所有任务
func (s *Scheduler) CancelAll() {
	for _, t := range s.tasks {
		t.Cancel()
	}
	s.compact()
}

// compact 移除已取消或已完成的任务
func (s *Scheduler) compact() {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.Active() {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = kept
}

// Scope 一组同生共死的任务
type Scope struct {
	name   string
	sched  *Scheduler
	tasks  []*Task
	closed bool
}

// NewScope 创建作用域
func (s *Scheduler) NewScope(name string) *Scope {
	return &Scope{name: name, sched: s}
}

// Name 返回作用域名称
func (sc *Scope) Name() string {
	return sc.name
}

// Every 在作用域内注册周期任务
// 作用域已关闭时返回一个已取消的任务
func (sc *Scope) Every(name string, interval time.Duration, fn func()) *Task {
	if sc.closed {
		return &Task{name: name, cancelled: true}
	}
	t := sc.sched.Every(name, interval, fn)
	sc.tasks = append(sc.tasks, t)
	return t
}

// After 在作用域内注册一次性任务
// 作用域已关闭时返回一个已取消的任务
func (sc *Scope) After(name string, delay time.Duration, fn func()) *Task {
	if sc.closed {
		return &Task{name: name, cancelled: true}
	}
	t := sc.sched.After(name, delay, fn)
	sc.tasks = append(sc.tasks, t)
	return t
}

// Close 取消作用域内所有任务（可重复调用）
func (sc *Scope) Close() {
	if sc == nil || sc.closed {
		return
	}
	sc.closed = true
	for _, t := range sc.tasks {
		t.Cancel()
	}
	sc.tasks = nil
}

// Closed 作用域是否已关闭
func (sc *Scope) Closed() bool {
	return sc == nil || sc.closed
}
