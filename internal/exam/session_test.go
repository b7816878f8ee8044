package exam

import (
	"errors"
	"testing"
)

func testConfig() Config {
	return Config{
		DurationSeconds:  1800,
		NegativeMarking:  0.25,
		LowTimeThreshold: 300,
	}
}

func startedManager(t *testing.T) (*Manager, *Session) {
	t.Helper()
	m := NewManager(testConfig(), nil)
	s, err := m.Start("course-1", fourQuestions())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return m, s
}

func TestStartEmptyQuestionSet(t *testing.T) {
	m := NewManager(testConfig(), nil)

	s, err := m.Start("course-1", nil)
	if !errors.Is(err, ErrEmptyQuestionSet) {
		t.Fatalf("Start = %v, want ErrEmptyQuestionSet", err)
	}
	if s != nil {
		t.Error("session created from empty question set")
	}
	if m.Active() != nil {
		t.Error("manager holds a session after failed start")
	}
}

func TestStartReplacesSession(t *testing.T) {
	m, first := startedManager(t)

	second, err := m.Start("course-2", fourQuestions())
	if err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if m.Active() != second {
		t.Error("active session is not the replacement")
	}
	if first.timer.Running() {
		t.Error("replaced session's timer still running")
	}
}

func TestNavigationBounds(t *testing.T) {
	_, s := startedManager(t)

	if err := s.GoTo(3); err != nil {
		t.Fatalf("GoTo(3): %v", err)
	}
	if err := s.GoTo(4); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("GoTo(4) = %v, want ErrOutOfRange", err)
	}
	if err := s.GoTo(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("GoTo(-1) = %v, want ErrOutOfRange", err)
	}
	if s.Current() != 3 {
		t.Errorf("Current = %d after rejected jumps, want 3", s.Current())
	}

	// last question: Next is a no-op
	s.Next()
	if s.Current() != 3 {
		t.Errorf("Current = %d after Next at last question, want 3", s.Current())
	}

	// first question: Previous is a no-op
	if err := s.GoTo(0); err != nil {
		t.Fatalf("GoTo(0): %v", err)
	}
	s.Previous()
	if s.Current() != 0 {
		t.Errorf("Current = %d after Previous at first question, want 0", s.Current())
	}

	s.Next()
	if s.Current() != 1 {
		t.Errorf("Current = %d after Next, want 1", s.Current())
	}
}

func TestSelectOption(t *testing.T) {
	_, s := startedManager(t)

	if err := s.SelectOption(1, 2); err != nil {
		t.Fatalf("SelectOption: %v", err)
	}
	if !s.IsAnswered(1) {
		t.Error("question 1 not marked answered")
	}
	if s.IsAnswered(0) {
		t.Error("question 0 marked answered without a selection")
	}

	// repeated selection overwrites, never accumulates
	if err := s.SelectOption(1, 2); err != nil {
		t.Fatalf("repeat SelectOption: %v", err)
	}
	if err := s.SelectOption(1, 3); err != nil {
		t.Fatalf("overwrite SelectOption: %v", err)
	}
	if opt, ok := s.SelectedOption(1); !ok || opt != 3 {
		t.Errorf("SelectedOption(1) = %d,%t, want 3,true", opt, ok)
	}

	if err := s.SelectOption(9, 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SelectOption(9,0) = %v, want ErrOutOfRange", err)
	}
	if err := s.SelectOption(0, 7); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SelectOption(0,7) = %v, want ErrOutOfRange", err)
	}
}

func TestSelectOptionWithoutSession(t *testing.T) {
	m := NewManager(testConfig(), nil)

	// silent no-op without an active session
	if err := m.SelectOption(0, 0); err != nil {
		t.Errorf("SelectOption without session = %v, want nil", err)
	}
	m.Next()
	m.Previous()
	if m.IsAnswered(0) {
		t.Error("IsAnswered reported true without a session")
	}
}

func TestExpiryForcesSingleSubmit(t *testing.T) {
	var forced []*Result
	m := NewManager(Config{DurationSeconds: 5, NegativeMarking: 0.25, LowTimeThreshold: 300},
		func(_ *Session, r *Result) { forced = append(forced, r) })

	s, err := m.Start("course-1", fourQuestions())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.SelectOption(0, 0); err != nil {
		t.Fatalf("SelectOption: %v", err)
	}

	for i := 0; i < 5; i++ {
		s.Tick()
	}

	if len(forced) != 1 {
		t.Fatalf("forced submit fired %d times, want 1", len(forced))
	}
	if !s.Submitted() {
		t.Error("session not submitted after expiry")
	}
	if m.Active() != nil {
		t.Error("manager still holds the expired session")
	}

	// a later manual submit is a no-op
	if _, _, finalized := m.Submit(); finalized {
		t.Error("manual submit finalized an already finalized session")
	}
	if got := s.Result(); got != forced[0] {
		t.Error("result recomputed after expiry submit")
	}
}

func TestManualSubmitStopsTimer(t *testing.T) {
	forcedCalls := 0
	m := NewManager(Config{DurationSeconds: 5, NegativeMarking: 0.25, LowTimeThreshold: 300},
		func(*Session, *Result) { forcedCalls++ })

	s, err := m.Start("course-1", fourQuestions())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Tick()
	s.Tick()

	_, result, finalized := m.Submit()
	if !finalized {
		t.Fatal("manual submit did not finalize")
	}
	if result.TimeSpent != 2 {
		t.Errorf("TimeSpent = %d, want 2", result.TimeSpent)
	}

	// simulated ticks after manual submit must not trigger the expiry path
	for i := 0; i < 10; i++ {
		s.Tick()
	}
	if forcedCalls != 0 {
		t.Errorf("forced submit fired %d times after manual submit, want 0", forcedCalls)
	}

	// repeated submit returns the finalized result without rescoring
	again, againResult := s.Submit()
	if againResult {
		t.Error("second Submit reported finalized")
	}
	if again != result {
		t.Error("second Submit returned a different result")
	}
}

func TestLowTimeThreshold(t *testing.T) {
	m := NewManager(Config{DurationSeconds: 302, NegativeMarking: 0.25, LowTimeThreshold: 300}, nil)
	s, err := m.Start("course-1", fourQuestions())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if s.LowTime() {
		t.Error("LowTime true at 302s remaining")
	}
	s.Tick()
	if s.LowTime() {
		t.Error("LowTime true at 301s remaining")
	}
	s.Tick()
	if !s.LowTime() {
		t.Error("LowTime false at 300s remaining")
	}
	if s.RemainingDisplay() != "05:00" {
		t.Errorf("RemainingDisplay = %q, want 05:00", s.RemainingDisplay())
	}
}

func TestAnsweredFlags(t *testing.T) {
	_, s := startedManager(t)

	if err := s.SelectOption(0, 1); err != nil {
		t.Fatalf("SelectOption: %v", err)
	}
	if err := s.SelectOption(2, 0); err != nil {
		t.Fatalf("SelectOption: %v", err)
	}

	want := []bool{true, false, true, false}
	got := s.AnsweredFlags()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AnsweredFlags[%d] = %t, want %t", i, got[i], want[i])
		}
	}
}
