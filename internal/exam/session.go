package exam

import (
	"sync"
	"time"
)

// Question 模拟测试题目。加载后不可变，Answer 是 Options 中正确项的下标。
type Question struct {
	Text        string   `json:"text"`
	Options     []string `json:"options"`
	Answer      int      `json:"answer"`
	Section     string   `json:"section"`
	Explanation string   `json:"explanation,omitempty"`
}

// Config 一次测试的配置，会话创建时注入，核心逻辑不写死常量
type Config struct {
	DurationSeconds  int     // 默认考试时长（秒）
	NegativeMarking  float64 // 答错扣分系数
	LowTimeThreshold int     // 剩余时间低于该值（秒）时前端显示告警色
}

// Session 一次进行中（或刚结束）的测试。Answers 是稀疏映射，
// 没有条目表示未作答。提交（手动或到期强制）后进入终态，不可恢复。
type Session struct {
	CourseID  string
	Questions []Question
	StartedAt time.Time

	cfg   Config
	timer *Timer

	mu        sync.Mutex
	answers   map[int]int
	current   int
	submitted bool
	result    *Result
}

func newSession(courseID string, questions []Question, cfg Config) *Session {
	return &Session{
		CourseID:  courseID,
		Questions: questions,
		StartedAt: time.Now(),
		cfg:       cfg,
		timer:     NewTimer(),
		answers:   make(map[int]int),
	}
}

// SelectOption 记录第 questionIndex 题选择了 optionIndex。
// 重复选择同一题会覆盖之前的选项，不保留历史。
func (s *Session) SelectOption(questionIndex, optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitted {
		return nil
	}
	if questionIndex < 0 || questionIndex >= len(s.Questions) {
		return ErrOutOfRange
	}
	if optionIndex < 0 || optionIndex >= len(s.Questions[questionIndex].Options) {
		return ErrOutOfRange
	}

	s.answers[questionIndex] = optionIndex
	return nil
}

// GoTo 跳转到指定题目，不影响已保存的答案
func (s *Session) GoTo(questionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if questionIndex < 0 || questionIndex >= len(s.Questions) {
		return ErrOutOfRange
	}
	s.current = questionIndex
	return nil
}

// Next 到最后一题时为空操作
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current < len(s.Questions)-1 {
		s.current++
	}
}

// Previous 在第一题时为空操作
func (s *Session) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current > 0 {
		s.current--
	}
}

func (s *Session) Current() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Session) CurrentQuestion() Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Questions[s.current]
}

// IsAnswered 驱动题号导航格的"已作答"状态
func (s *Session) IsAnswered(questionIndex int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.answers[questionIndex]
	return ok
}

// AnsweredFlags 按题目顺序返回作答标记
func (s *Session) AnsweredFlags() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	flags := make([]bool, len(s.Questions))
	for i := range flags {
		_, flags[i] = s.answers[i]
	}
	return flags
}

// SelectedOption 返回某题已选项的下标，未作答时第二个返回值为 false
func (s *Session) SelectedOption(questionIndex int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	opt, ok := s.answers[questionIndex]
	return opt, ok
}

// RunTimer 用墙钟驱动倒计时，应在独立 goroutine 中调用
func (s *Session) RunTimer() {
	s.timer.Run()
}

// Tick 把倒计时推进一秒
func (s *Session) Tick() {
	s.timer.Tick()
}

func (s *Session) Remaining() int {
	return s.timer.Remaining()
}

// RemainingDisplay 返回 MM:SS 格式的剩余时间
func (s *Session) RemainingDisplay() string {
	return FormatSeconds(s.timer.Remaining())
}

// LowTime 剩余时间是否已低于告警阈值（默认300秒）
func (s *Session) LowTime() bool {
	return s.timer.Remaining() <= s.cfg.LowTimeThreshold
}

func (s *Session) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

// Submit 结算本次测试。每个会话只会结算一次：手动交卷与定时器到期
// 谁先到谁生效，后到的一方拿到已有结果且 finalized 为 false。
func (s *Session) Submit() (*Result, bool) {
	s.mu.Lock()
	if s.submitted {
		r := s.result
		s.mu.Unlock()
		return r, false
	}
	s.submitted = true
	s.mu.Unlock()

	// 先停表再结算，保证之后模拟的 tick 不会再触发到期提交
	s.timer.Stop()

	s.mu.Lock()
	timeSpent := s.cfg.DurationSeconds - s.timer.Remaining()
	r := Score(s.Questions, s.answers, s.cfg.NegativeMarking, timeSpent)
	s.result = &r
	s.mu.Unlock()

	return &r, true
}

// Result 返回已结算的成绩，未提交时为 nil
func (s *Session) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}
