package exam

import "sync"

// Manager 管理单个考生的测试会话生命周期。同一时间最多一个活动会话，
// Start 会整体替换旧会话，不存在会话叠加。
type Manager struct {
	cfg Config

	mu      sync.Mutex
	session *Session

	// onForced 定时器到期强制交卷后回调，用于结果落库等副作用。
	// 手动交卷不经过这里，由调用方拿返回值自行处理。
	onForced func(*Session, *Result)
}

func NewManager(cfg Config, onForced func(*Session, *Result)) *Manager {
	return &Manager{cfg: cfg, onForced: onForced}
}

// Start 用外部提供的题目创建新会话并启动倒计时状态。
// 题目为空时返回 ErrEmptyQuestionSet，不创建会话。
func (m *Manager) Start(courseID string, questions []Question) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyQuestionSet
	}

	s := newSession(courseID, questions, m.cfg)
	if err := s.timer.Start(m.cfg.DurationSeconds, func() { m.forceSubmit(s) }); err != nil {
		return nil, err
	}

	m.mu.Lock()
	prev := m.session
	m.session = s
	m.mu.Unlock()

	if prev != nil {
		prev.timer.Stop()
	}
	return s, nil
}

// forceSubmit 到期自动交卷，考生无法阻止或推迟
func (m *Manager) forceSubmit(s *Session) {
	result, finalized := s.Submit()
	if !finalized {
		return
	}

	m.mu.Lock()
	if m.session == s {
		m.session = nil
	}
	m.mu.Unlock()

	if m.onForced != nil {
		m.onForced(s, result)
	}
}

// Submit 手动交卷。没有活动会话或会话已结算时 finalized 为 false。
func (m *Manager) Submit() (*Session, *Result, bool) {
	m.mu.Lock()
	s := m.session
	m.mu.Unlock()

	if s == nil {
		return nil, nil, false
	}

	result, finalized := s.Submit()
	if finalized {
		m.mu.Lock()
		if m.session == s {
			m.session = nil
		}
		m.mu.Unlock()
	}
	return s, result, finalized
}

// Active 当前活动会话，没有则为 nil
func (m *Manager) Active() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// SelectOption 没有活动会话时静默忽略
func (m *Manager) SelectOption(questionIndex, optionIndex int) error {
	s := m.Active()
	if s == nil {
		return nil
	}
	return s.SelectOption(questionIndex, optionIndex)
}

func (m *Manager) GoTo(questionIndex int) error {
	s := m.Active()
	if s == nil {
		return ErrOutOfRange
	}
	return s.GoTo(questionIndex)
}

func (m *Manager) Next() {
	if s := m.Active(); s != nil {
		s.Next()
	}
}

func (m *Manager) Previous() {
	if s := m.Active(); s != nil {
		s.Previous()
	}
}

func (m *Manager) IsAnswered(questionIndex int) bool {
	s := m.Active()
	if s == nil {
		return false
	}
	return s.IsAnswered(questionIndex)
}
