package exam

import (
	"reflect"
	"testing"
)

func fourQuestions() []Question {
	return []Question{
		{Text: "Q1", Options: []string{"a", "b", "c", "d"}, Answer: 0, Section: "Physics"},
		{Text: "Q2", Options: []string{"a", "b", "c", "d"}, Answer: 1, Section: "Chemistry", Explanation: "because"},
		{Text: "Q3", Options: []string{"a", "b", "c", "d"}, Answer: 2, Section: "Mathematics"},
		{Text: "Q4", Options: []string{"a", "b", "c", "d"}, Answer: 3, Section: "General Knowledge"},
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name        string
		answers     map[int]int
		wantScore   int
		wantCorrect int
		wantWrong   int
	}{
		{
			name:        "all correct",
			answers:     map[int]int{0: 0, 1: 1, 2: 2, 3: 3},
			wantScore:   100,
			wantCorrect: 4,
			wantWrong:   0,
		},
		{
			name:        "two correct one wrong one unanswered",
			answers:     map[int]int{0: 0, 1: 1, 2: 0},
			wantScore:   38, // raw = 2 - 2*0.25 = 1.5, round(1.5/4*100)
			wantCorrect: 2,
			wantWrong:   2,
		},
		{
			name:        "all unanswered floors at zero",
			answers:     map[int]int{},
			wantScore:   0,
			wantCorrect: 0,
			wantWrong:   4,
		},
		{
			name:        "one correct penalty floors at zero",
			answers:     map[int]int{0: 0, 1: 0, 2: 0, 3: 0},
			wantScore:   6, // raw = 1 - 3*0.25 = 0.25, round(0.25/4*100)
			wantCorrect: 1,
			wantWrong:   3,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(fourQuestions(), tc.answers, 0.25, 120)
			if got.Score != tc.wantScore {
				t.Errorf("Score = %d, want %d", got.Score, tc.wantScore)
			}
			if got.Correct != tc.wantCorrect {
				t.Errorf("Correct = %d, want %d", got.Correct, tc.wantCorrect)
			}
			if got.Wrong != tc.wantWrong {
				t.Errorf("Wrong = %d, want %d", got.Wrong, tc.wantWrong)
			}
			if got.Total != 4 {
				t.Errorf("Total = %d, want 4", got.Total)
			}
			if got.TimeSpent != 120 {
				t.Errorf("TimeSpent = %d, want 120", got.TimeSpent)
			}
		})
	}
}

func TestScoreDetails(t *testing.T) {
	questions := fourQuestions()
	answers := map[int]int{0: 0, 1: 3}

	got := Score(questions, answers, 0.25, 0)

	if len(got.Answers) != len(questions) {
		t.Fatalf("got %d details, want %d", len(got.Answers), len(questions))
	}

	// correctAnswer must always round-trip to options[answer]
	for i, d := range got.Answers {
		want := questions[i].Options[questions[i].Answer]
		if d.CorrectAnswer != want {
			t.Errorf("detail %d: CorrectAnswer = %q, want %q", i, d.CorrectAnswer, want)
		}
		if d.Question != questions[i].Text {
			t.Errorf("detail %d: Question = %q, want %q", i, d.Question, questions[i].Text)
		}
	}

	if !got.Answers[0].IsCorrect || got.Answers[0].UserAnswer != "a" {
		t.Errorf("detail 0 = %+v, want correct answer a", got.Answers[0])
	}
	if got.Answers[1].IsCorrect || got.Answers[1].UserAnswer != "d" {
		t.Errorf("detail 1 = %+v, want wrong answer d", got.Answers[1])
	}
	if got.Answers[2].UserAnswer != NotAnswered {
		t.Errorf("detail 2: UserAnswer = %q, want %q", got.Answers[2].UserAnswer, NotAnswered)
	}
	if got.Answers[1].Explanation != "because" {
		t.Errorf("detail 1: Explanation = %q, want %q", got.Answers[1].Explanation, "because")
	}
}

func TestScoreIsPure(t *testing.T) {
	questions := fourQuestions()
	answers := map[int]int{0: 0, 2: 1}

	first := Score(questions, answers, 0.25, 60)
	second := Score(questions, answers, 0.25, 60)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated scoring diverged:\nfirst  %+v\nsecond %+v", first, second)
	}
}
