package controller

import (
	"errors"

	"odigyan_backend/internal/exam"
	"odigyan_backend/internal/service"
	"odigyan_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MockTestController struct {
	TestService   *service.MockTestService
	CourseService *service.CourseService
}

func NewMockTestController(testService *service.MockTestService, courseService *service.CourseService) *MockTestController {
	return &MockTestController{TestService: testService, CourseService: courseService}
}

// QuestionView 考生视角的题目，不含正确答案和解析
type QuestionView struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Section string   `json:"section"`
}

// SessionState 进行中测试的完整状态快照
type SessionState struct {
	CourseID         string       `json:"courseId"`
	Total            int          `json:"total"`
	Current          int          `json:"current"`
	Question         QuestionView `json:"question"`
	Selected         int          `json:"selected"` // -1 表示未选
	AnsweredFlags    []bool       `json:"answeredFlags"`
	Remaining        int          `json:"remaining"`
	RemainingDisplay string       `json:"remainingDisplay"`
	LowTime          bool         `json:"lowTime"`
}

func sessionState(s *exam.Session) *SessionState {
	current := s.Current()
	q := s.CurrentQuestion()
	selected := -1
	if opt, ok := s.SelectedOption(current); ok {
		selected = opt
	}
	return &SessionState{
		CourseID:         s.CourseID,
		Total:            len(s.Questions),
		Current:          current,
		Question:         QuestionView{Text: q.Text, Options: q.Options, Section: q.Section},
		Selected:         selected,
		AnsweredFlags:    s.AnsweredFlags(),
		Remaining:        s.Remaining(),
		RemainingDisplay: s.RemainingDisplay(),
		LowTime:          s.LowTime(),
	}
}

// StartTestRequest 开始测试请求
type StartTestRequest struct {
	CourseID string `json:"course_id" binding:"required"`
}

// Start godoc
// @Summary 开始模拟测试
// @Description 按课程题库开启新会话，已有会话会被替换
// @Tags 模拟测试
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body StartTestRequest true "课程"
// @Success 201 {object} util.Response{data=SessionState}
// @Failure 403 {object} util.Response "尚未报名该课程"
// @Failure 404 {object} util.Response "课程不存在"
// @Failure 409 {object} util.Response "题库为空"
// @Router /api/tests [post]
func (c *MockTestController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	// 只有已选课的学生能参加测试
	enrolled, err := c.CourseService.IsEnrolled(claims.UserID, req.CourseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if !enrolled {
		util.Forbidden(ctx)
		return
	}

	session, err := c.TestService.Start(claims.UserID, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrQuestionBankEmpty), errors.Is(err, exam.ErrEmptyQuestionSet):
			util.Error(ctx, 409, "该课程暂无题目")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, sessionState(session))
}

// State godoc
// @Summary 当前测试状态
// @Tags 模拟测试
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=SessionState}
// @Failure 404 {object} util.Response "没有进行中的测试"
// @Router /api/tests/current [get]
func (c *MockTestController) State(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	session := c.TestService.Active(claims.UserID)
	if session == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, sessionState(session))
}

// AnswerRequest 选择答案请求
type AnswerRequest struct {
	QuestionIndex int `json:"question_index"`
	OptionIndex   int `json:"option_index"`
}

// Answer godoc
// @Summary 作答
// @Description 重复作答同一题覆盖之前的选择
// @Tags 模拟测试
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AnswerRequest true "题目与选项下标"
// @Success 200 {object} util.Response{data=SessionState}
// @Failure 400 {object} util.Response "下标越界"
// @Failure 404 {object} util.Response "没有进行中的测试"
// @Router /api/tests/current/answer [post]
func (c *MockTestController) Answer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.TestService.SelectOption(claims.UserID, req.QuestionIndex, req.OptionIndex); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session := c.TestService.Active(claims.UserID)
	if session == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, sessionState(session))
}

// NavigateRequest 跳题请求
type NavigateRequest struct {
	QuestionIndex int `json:"question_index"`
}

// GoTo godoc
// @Summary 跳转到指定题目
// @Tags 模拟测试
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body NavigateRequest true "题目下标"
// @Success 200 {object} util.Response{data=SessionState}
// @Failure 400 {object} util.Response "下标越界"
// @Router /api/tests/current/goto [post]
func (c *MockTestController) GoTo(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req NavigateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.TestService.GoTo(claims.UserID, req.QuestionIndex); err != nil {
		if errors.Is(err, exam.ErrOutOfRange) {
			util.BadRequest(ctx, "question index out of range")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	session := c.TestService.Active(claims.UserID)
	if session == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, sessionState(session))
}

// Next godoc
// @Summary 下一题
// @Description 已在最后一题时停留原地
// @Tags 模拟测试
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=SessionState}
// @Router /api/tests/current/next [post]
func (c *MockTestController) Next(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	c.TestService.Next(claims.UserID)
	session := c.TestService.Active(claims.UserID)
	if session == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, sessionState(session))
}

// Previous godoc
// @Summary 上一题
// @Description 已在第一题时停留原地
// @Tags 模拟测试
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=SessionState}
// @Router /api/tests/current/previous [post]
func (c *MockTestController) Previous(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	c.TestService.Previous(claims.UserID)
	session := c.TestService.Active(claims.UserID)
	if session == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, sessionState(session))
}

// Submit godoc
// @Summary 交卷
// @Description 结算成绩并返回逐题明细，saved 表示是否已写入历史
// @Tags 模拟测试
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response "没有进行中的测试"
// @Router /api/tests/current/submit [post]
func (c *MockTestController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	outcome, err := c.TestService.Submit(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrNoActiveTest) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"result": outcome.Result,
		"saved":  outcome.Saved,
	})
}

// ListQuestions godoc
// @Summary 课程题库（含答案）
// @Tags 题库管理
// @Produce json
// @Security BearerAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=[]model.MockQuestion}
// @Router /api/admin/courses/{id}/questions [get]
func (c *MockTestController) ListQuestions(ctx *gin.Context) {
	questions, err := c.TestService.ListQuestions(ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// AddQuestion godoc
// @Summary 录入题目
// @Tags 题库管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "课程ID"
// @Param body body service.QuestionRequest true "题目"
// @Success 201 {object} util.Response{data=model.MockQuestion}
// @Failure 400 {object} util.Response "答案下标越界"
// @Router /api/admin/courses/{id}/questions [post]
func (c *MockTestController) AddQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.TestService.AddQuestion(ctx.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, exam.ErrOutOfRange):
			util.BadRequest(ctx, "answer index out of range")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, question)
}

// UpdateQuestion godoc
// @Summary 更新题目
// @Tags 题库管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "题目ID"
// @Param body body service.QuestionRequest true "题目"
// @Success 200 {object} util.Response{data=model.MockQuestion}
// @Router /api/admin/questions/{id} [put]
func (c *MockTestController) UpdateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.TestService.UpdateQuestion(ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, exam.ErrOutOfRange) {
			util.BadRequest(ctx, "answer index out of range")
		} else {
			util.NotFound(ctx)
		}
		return
	}
	util.Success(ctx, question)
}

// DeleteQuestion godoc
// @Summary 删除题目
// @Tags 题库管理
// @Produce json
// @Security BearerAuth
// @Param id path string true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id} [delete]
func (c *MockTestController) DeleteQuestion(ctx *gin.Context) {
	if err := c.TestService.DeleteQuestion(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
