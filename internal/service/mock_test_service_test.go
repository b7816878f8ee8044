package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"odigyan_backend/internal/config"
	"odigyan_backend/internal/model"
	"odigyan_backend/internal/util"
	"odigyan_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	m.Run()
}

type fakeQuestionStore struct {
	questions []model.MockQuestion
}

func (f *fakeQuestionStore) Create(q *model.MockQuestion) error { return nil }
func (f *fakeQuestionStore) FindByID(id string) (*model.MockQuestion, error) {
	return nil, errors.New("not found")
}
func (f *fakeQuestionStore) Update(q *model.MockQuestion) error { return nil }
func (f *fakeQuestionStore) Delete(id string) error             { return nil }
func (f *fakeQuestionStore) ListByCourse(courseID string, limit int) ([]model.MockQuestion, error) {
	if limit > 0 && limit < len(f.questions) {
		return f.questions[:limit], nil
	}
	return f.questions, nil
}

type fakeResultStore struct {
	mu         sync.Mutex
	saved      []model.TestResult
	failCreate bool
}

func (f *fakeResultStore) Create(result *model.TestResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return errors.New("database gone")
	}
	f.saved = append(f.saved, *result)
	return nil
}

func (f *fakeResultStore) records() []model.TestResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.TestResult(nil), f.saved...)
}

func (f *fakeResultStore) ListByUser(userID uint) ([]model.TestResult, error) {
	return f.records(), nil
}
func (f *fakeResultStore) BestScore(userID uint, courseID string) (int, error) { return 0, nil }

type fakeCourseFinder struct {
	missing bool
}

func (f *fakeCourseFinder) FindByID(id string) (*model.Course, error) {
	if f.missing {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.Course{Name: "JEE Physics"}, nil
}

func questionRows(n int) []model.MockQuestion {
	rows := make([]model.MockQuestion, 0, n)
	for i := 0; i < n; i++ {
		options, _ := json.Marshal([]string{"a", "b", "c", "d"})
		rows = append(rows, model.MockQuestion{
			CourseID: "course-1",
			Text:     fmt.Sprintf("Q%d", i+1),
			Options:  options,
			Answer:   i % 4,
			Section:  "Physics",
		})
	}
	return rows
}

func testServiceConfig(durationSeconds int) *config.Config {
	return &config.Config{
		Test: config.TestConfig{
			DefaultTimeSeconds: durationSeconds,
			NegativeMarking:    0.25,
			LowTimeThreshold:   300,
			QuestionsPerTest:   20,
		},
	}
}

func TestStartUnknownCourse(t *testing.T) {
	svc := NewMockTestService(&fakeQuestionStore{}, &fakeResultStore{}, &fakeCourseFinder{missing: true}, testServiceConfig(1800))

	if _, err := svc.Start(1, "nope"); !errors.Is(err, util.ErrCourseNotFound) {
		t.Errorf("Start error = %v, want ErrCourseNotFound", err)
	}
}

func TestStartEmptyQuestionBank(t *testing.T) {
	svc := NewMockTestService(&fakeQuestionStore{}, &fakeResultStore{}, &fakeCourseFinder{}, testServiceConfig(1800))

	if _, err := svc.Start(1, "course-1"); !errors.Is(err, util.ErrQuestionBankEmpty) {
		t.Errorf("Start error = %v, want ErrQuestionBankEmpty", err)
	}
}

func TestStartSkipsMalformedOptions(t *testing.T) {
	rows := questionRows(2)
	rows[0].Options = json.RawMessage(`not json`)
	svc := NewMockTestService(&fakeQuestionStore{questions: rows}, &fakeResultStore{}, &fakeCourseFinder{}, testServiceConfig(1800))

	session, err := svc.Start(1, "course-1")
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	defer svc.Submit(1)

	if len(session.Questions) != 1 {
		t.Errorf("question count = %d, want 1 (malformed row skipped)", len(session.Questions))
	}
}

func TestStartHonorsQuestionLimit(t *testing.T) {
	cfg := testServiceConfig(1800)
	cfg.Test.QuestionsPerTest = 3
	svc := NewMockTestService(&fakeQuestionStore{questions: questionRows(10)}, &fakeResultStore{}, &fakeCourseFinder{}, cfg)

	session, err := svc.Start(1, "course-1")
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	defer svc.Submit(1)

	if len(session.Questions) != 3 {
		t.Errorf("question count = %d, want 3", len(session.Questions))
	}
}

func TestManualSubmitPersistsResult(t *testing.T) {
	results := &fakeResultStore{}
	svc := NewMockTestService(&fakeQuestionStore{questions: questionRows(4)}, results, &fakeCourseFinder{}, testServiceConfig(1800))

	session, err := svc.Start(7, "course-1")
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	for i := range session.Questions {
		if err := svc.SelectOption(7, i, session.Questions[i].Answer); err != nil {
			t.Fatalf("SelectOption(%d) error: %v", i, err)
		}
	}

	outcome, err := svc.Submit(7)
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if outcome.Result.Score != 100 {
		t.Errorf("Score = %d, want 100", outcome.Result.Score)
	}
	if !outcome.Saved {
		t.Error("Saved = false, want true")
	}
	if svc.Active(7) != nil {
		t.Error("session should be cleared after submit")
	}

	records := results.records()
	if len(records) != 1 {
		t.Fatalf("saved records = %d, want 1", len(records))
	}
	if records[0].UserID != 7 || records[0].CourseID != "course-1" || records[0].Score != 100 {
		t.Errorf("unexpected record: %+v", records[0])
	}
}

func TestSubmitWithoutSession(t *testing.T) {
	svc := NewMockTestService(&fakeQuestionStore{}, &fakeResultStore{}, &fakeCourseFinder{}, testServiceConfig(1800))

	if _, err := svc.Submit(1); !errors.Is(err, util.ErrNoActiveTest) {
		t.Errorf("Submit error = %v, want ErrNoActiveTest", err)
	}
}

func TestSubmitSurvivesPersistenceFailure(t *testing.T) {
	results := &fakeResultStore{failCreate: true}
	svc := NewMockTestService(&fakeQuestionStore{questions: questionRows(4)}, results, &fakeCourseFinder{}, testServiceConfig(1800))

	if _, err := svc.Start(1, "course-1"); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	outcome, err := svc.Submit(1)
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if outcome.Saved {
		t.Error("Saved = true, want false when store fails")
	}
	if outcome.Result == nil || outcome.Result.Total != 4 {
		t.Errorf("result should still be returned: %+v", outcome.Result)
	}
}

func TestSessionsAreIsolatedPerUser(t *testing.T) {
	svc := NewMockTestService(&fakeQuestionStore{questions: questionRows(4)}, &fakeResultStore{}, &fakeCourseFinder{}, testServiceConfig(1800))

	if _, err := svc.Start(1, "course-1"); err != nil {
		t.Fatalf("Start(user 1) error: %v", err)
	}
	if _, err := svc.Start(2, "course-1"); err != nil {
		t.Fatalf("Start(user 2) error: %v", err)
	}
	defer svc.Submit(2)

	if err := svc.SelectOption(1, 0, 2); err != nil {
		t.Fatalf("SelectOption error: %v", err)
	}
	if svc.Active(2).IsAnswered(0) {
		t.Error("user 2 should not see user 1's answers")
	}

	if _, err := svc.Submit(1); err != nil {
		t.Fatalf("Submit(user 1) error: %v", err)
	}
	if svc.Active(2) == nil {
		t.Error("user 2's session should survive user 1's submit")
	}
}

func TestExpiryAutoSubmitPersists(t *testing.T) {
	results := &fakeResultStore{}
	svc := NewMockTestService(&fakeQuestionStore{questions: questionRows(4)}, results, &fakeCourseFinder{}, testServiceConfig(1))

	if _, err := svc.Start(3, "course-1"); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if len(results.records()) == 1 {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	records := results.records()
	if len(records) != 1 {
		t.Fatalf("saved records = %d, want 1 after expiry", len(records))
	}
	if records[0].UserID != 3 || records[0].Score != 0 {
		t.Errorf("unexpected record: %+v", records[0])
	}
	if svc.Active(3) != nil {
		t.Error("session should be cleared after forced submit")
	}

	if _, err := svc.Submit(3); !errors.Is(err, util.ErrNoActiveTest) {
		t.Errorf("manual submit after expiry = %v, want ErrNoActiveTest", err)
	}
}
