package service

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"odigyan_backend/internal/config"
	"odigyan_backend/internal/exam"
	"odigyan_backend/internal/model"
	"odigyan_backend/internal/util"
	"odigyan_backend/pkg/logger"
	"odigyan_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuestionStore 题库访问，*repository.QuestionRepository 实现
type QuestionStore interface {
	Create(q *model.MockQuestion) error
	FindByID(id string) (*model.MockQuestion, error)
	ListByCourse(courseID string, limit int) ([]model.MockQuestion, error)
	Update(q *model.MockQuestion) error
	Delete(id string) error
}

// ResultStore 成绩历史访问，*repository.TestResultRepository 实现
type ResultStore interface {
	Create(result *model.TestResult) error
	ListByUser(userID uint) ([]model.TestResult, error)
	BestScore(userID uint, courseID string) (int, error)
}

// CourseFinder 课程存在性校验，*repository.CourseRepository 实现
type CourseFinder interface {
	FindByID(id string) (*model.Course, error)
}

// MockTestService 把 exam 核心接到题库、结果表和指标上。
// 每个考生一个 exam.Manager，互不干扰。
type MockTestService struct {
	QuestionRepo QuestionStore
	ResultRepo   ResultStore
	CourseRepo   CourseFinder
	Cfg          *config.Config

	mu       sync.Mutex
	managers map[uint]*exam.Manager
}

func NewMockTestService(questionRepo QuestionStore, resultRepo ResultStore, courseRepo CourseFinder, cfg *config.Config) *MockTestService {
	return &MockTestService{
		QuestionRepo: questionRepo,
		ResultRepo:   resultRepo,
		CourseRepo:   courseRepo,
		Cfg:          cfg,
		managers:     make(map[uint]*exam.Manager),
	}
}

func (s *MockTestService) examConfig() exam.Config {
	return exam.Config{
		DurationSeconds:  s.Cfg.Test.DefaultTimeSeconds,
		NegativeMarking:  s.Cfg.Test.NegativeMarking,
		LowTimeThreshold: s.Cfg.Test.LowTimeThreshold,
	}
}

func (s *MockTestService) managerFor(userID uint) *exam.Manager {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.managers[userID]; ok {
		return m
	}
	m := exam.NewManager(s.examConfig(), func(session *exam.Session, result *exam.Result) {
		monitoring.ActiveTestSessions.Dec()
		monitoring.TestSubmissions.WithLabelValues("expired").Inc()
		s.persistResult(userID, session, result)
	})
	s.managers[userID] = m
	return m
}

// loadQuestions 取课程题库并截取到单场题量上限
func (s *MockTestService) loadQuestions(courseID string) ([]exam.Question, error) {
	rows, err := s.QuestionRepo.ListByCourse(courseID, s.Cfg.Test.QuestionsPerTest)
	if err != nil {
		return nil, err
	}

	questions := make([]exam.Question, 0, len(rows))
	for _, row := range rows {
		var options []string
		if err := json.Unmarshal(row.Options, &options); err != nil {
			logger.Log.Warn("skip question with malformed options",
				zap.String("question_id", row.ID),
				zap.Error(err))
			continue
		}
		questions = append(questions, exam.Question{
			Text:        row.Text,
			Options:     options,
			Answer:      row.Answer,
			Section:     row.Section,
			Explanation: row.Explanation,
		})
	}
	return questions, nil
}

// Start 为考生开启一场新测试。已有会话会被整体替换。
func (s *MockTestService) Start(userID uint, courseID string) (*exam.Session, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	questions, err := s.loadQuestions(courseID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrQuestionBankEmpty
	}

	manager := s.managerFor(userID)
	hadActive := manager.Active() != nil

	session, err := manager.Start(courseID, questions)
	if err != nil {
		return nil, err
	}
	if !hadActive {
		monitoring.ActiveTestSessions.Inc()
	}

	go session.RunTimer()
	return session, nil
}

func (s *MockTestService) Active(userID uint) *exam.Session {
	return s.managerFor(userID).Active()
}

func (s *MockTestService) SelectOption(userID uint, questionIndex, optionIndex int) error {
	return s.managerFor(userID).SelectOption(questionIndex, optionIndex)
}

func (s *MockTestService) GoTo(userID uint, questionIndex int) error {
	return s.managerFor(userID).GoTo(questionIndex)
}

func (s *MockTestService) Next(userID uint) {
	s.managerFor(userID).Next()
}

func (s *MockTestService) Previous(userID uint) {
	s.managerFor(userID).Previous()
}

// SubmitOutcome 手动交卷的结果。Saved 表示成绩是否已落库，
// 落库失败不拦截交卷，考生仍能立即看到分数。
type SubmitOutcome struct {
	Session *exam.Session
	Result  *exam.Result
	Saved   bool
}

func (s *MockTestService) Submit(userID uint) (*SubmitOutcome, error) {
	session, result, finalized := s.managerFor(userID).Submit()
	if !finalized {
		return nil, util.ErrNoActiveTest
	}

	monitoring.ActiveTestSessions.Dec()
	monitoring.TestSubmissions.WithLabelValues("manual").Inc()

	saved := s.persistResult(userID, session, result)
	return &SubmitOutcome{Session: session, Result: result, Saved: saved}, nil
}

// persistResult 成绩落库。失败只记日志，结果本身已在内存中结算完毕。
func (s *MockTestService) persistResult(userID uint, session *exam.Session, result *exam.Result) bool {
	answers, err := json.Marshal(result.Answers)
	if err != nil {
		logger.Log.Error("marshal answer details failed", zap.Error(err))
		return false
	}

	record := &model.TestResult{
		UserID:      userID,
		CourseID:    session.CourseID,
		Score:       result.Score,
		Correct:     result.Correct,
		Wrong:       result.Wrong,
		Total:       result.Total,
		TimeSpent:   result.TimeSpent,
		Answers:     answers,
		CompletedAt: time.Now(),
	}
	if err := s.ResultRepo.Create(record); err != nil {
		logger.Log.Error("save test result failed",
			zap.Uint("user_id", userID),
			zap.String("course_id", session.CourseID),
			zap.Error(err))
		return false
	}
	return true
}

// QuestionRequest 题库录入请求，Answer 必须是 Options 的合法下标
type QuestionRequest struct {
	Text        string   `json:"text" binding:"required"`
	Options     []string `json:"options" binding:"required,min=2"`
	Answer      int      `json:"answer"`
	Section     string   `json:"section"`
	Explanation string   `json:"explanation"`
	Order       int      `json:"order"`
}

func (req *QuestionRequest) validate() error {
	if req.Answer < 0 || req.Answer >= len(req.Options) {
		return exam.ErrOutOfRange
	}
	return nil
}

func (s *MockTestService) AddQuestion(courseID string, req QuestionRequest) (*model.MockQuestion, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, util.ErrCourseNotFound
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	options, err := json.Marshal(req.Options)
	if err != nil {
		return nil, err
	}
	question := &model.MockQuestion{
		CourseID:    courseID,
		Text:        req.Text,
		Options:     options,
		Answer:      req.Answer,
		Section:     req.Section,
		Explanation: req.Explanation,
		Order:       req.Order,
	}
	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *MockTestService) UpdateQuestion(id string, req QuestionRequest) (*model.MockQuestion, error) {
	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	options, err := json.Marshal(req.Options)
	if err != nil {
		return nil, err
	}
	question.Text = req.Text
	question.Options = options
	question.Answer = req.Answer
	question.Section = req.Section
	question.Explanation = req.Explanation
	question.Order = req.Order
	if err := s.QuestionRepo.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *MockTestService) DeleteQuestion(id string) error {
	return s.QuestionRepo.Delete(id)
}

func (s *MockTestService) ListQuestions(courseID string) ([]model.MockQuestion, error) {
	return s.QuestionRepo.ListByCourse(courseID, 0)
}

func (s *MockTestService) History(userID uint) ([]model.TestResult, error) {
	return s.ResultRepo.ListByUser(userID)
}

func (s *MockTestService) BestScore(userID uint, courseID string) (int, error) {
	return s.ResultRepo.BestScore(userID, courseID)
}
