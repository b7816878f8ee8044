package exam

import "math"

// NotAnswered 未作答题目在成绩明细中的展示文案
const NotAnswered = "Not Answered"

// AnswerDetail 单题的判分明细，用于成绩页逐题回顾
type AnswerDetail struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
	Explanation   string `json:"explanation,omitempty"`
}

// Result 一次测试的结算结果，产生后不再变化
type Result struct {
	Score     int            `json:"score"` // 百分制，四舍五入
	Correct   int            `json:"correct"`
	Wrong     int            `json:"wrong"`
	Total     int            `json:"total"`
	Answers   []AnswerDetail `json:"answers"`
	TimeSpent int            `json:"timeSpent"` // 秒
}

// Score 纯函数判分，不做任何 I/O，也不修改入参。
// 倒扣分规则：未作答与答错同样计入 wrong 并按系数扣分，
// 原始分 = correct - wrong*negativeMarking，下限为0，再折算成百分比。
// 空题集由会话创建时拦截，这里假定 len(questions) >= 1。
func Score(questions []Question, answers map[int]int, negativeMarking float64, timeSpent int) Result {
	total := len(questions)
	correct := 0
	details := make([]AnswerDetail, 0, total)

	for i, q := range questions {
		userAnswer, answered := answers[i]
		isCorrect := answered && userAnswer == q.Answer
		if isCorrect {
			correct++
		}

		userText := NotAnswered
		if answered {
			userText = q.Options[userAnswer]
		}

		details = append(details, AnswerDetail{
			Question:      q.Text,
			UserAnswer:    userText,
			CorrectAnswer: q.Options[q.Answer],
			IsCorrect:     isCorrect,
			Explanation:   q.Explanation,
		})
	}

	wrong := total - correct
	raw := math.Max(0, float64(correct)-float64(wrong)*negativeMarking)
	percentage := int(math.Round(raw / float64(total) * 100))

	return Result{
		Score:     percentage,
		Correct:   correct,
		Wrong:     wrong,
		Total:     total,
		Answers:   details,
		TimeSpent: timeSpent,
	}
}
