package controller

import (
	"time"

	"learning_platform_backend/internal/service"
	"learning_platform_backend/internal/util"
	"learning_platform_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService    *service.QuizService
	GradingService *service.GradingService
}

func NewQuizController(quizService *service.QuizService, gradingService *service.GradingService) *QuizController {
	return &QuizController{
		QuizService:    quizService,
		GradingService: gradingService,
	}
}

// Get godoc
// @Summary Get a quiz with questions and options
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /quizzes/{id} [get]
func (ctl *QuizController) Get(c *gin.Context) {
	quizID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	quiz, err := ctl.QuizService.GetQuiz(quizID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, quiz)
}

// Submit godoc
// @Summary Submit quiz answers for grading
// @Description Grades the submission, records the attempt and returns the score. Attempts beyond the quiz limit are rejected.
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Param request body service.QuizSubmissionRequest true "Answers"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /quizzes/{id}/submit [post]
func (ctl *QuizController) Submit(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	quizID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req service.QuizSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	attempt, err := ctl.GradingService.SubmitAttempt(claims.UserID, quizID, req.Answers, time.Now())
	if err != nil {
		monitoring.QuizSubmissions.WithLabelValues("rejected").Inc()
		respondServiceError(c, err)
		return
	}

	if attempt.Passed {
		monitoring.QuizSubmissions.WithLabelValues("passed").Inc()
	} else {
		monitoring.QuizSubmissions.WithLabelValues("failed").Inc()
	}
	util.Created(c, attempt)
}

// Attempts godoc
// @Summary List the caller's attempts for a quiz
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} util.Response
// @Router /quizzes/{id}/attempts [get]
func (ctl *QuizController) Attempts(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	quizID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	attempts, err := ctl.QuizService.ListAttempts(claims.UserID, quizID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, attempts)
}

// MyAttempts godoc
// @Summary List the caller's attempts across all quizzes
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /attempts [get]
func (ctl *QuizController) MyAttempts(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	attempts, err := ctl.QuizService.ListAllAttempts(claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, attempts)
}

// Create godoc
// @Summary Attach a quiz to a lesson
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Param request body service.QuizRequest true "Quiz payload"
// @Success 201 {object} util.Response
// @Router /lessons/{id}/quiz [post]
func (ctl *QuizController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	lessonID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req service.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	quiz, err := ctl.QuizService.CreateQuiz(lessonID, claims, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Created(c, quiz)
}

// Update godoc
// @Summary Update quiz settings
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Param request body service.QuizRequest true "Quiz payload"
// @Success 200 {object} util.Response
// @Router /quizzes/{id} [put]
func (ctl *QuizController) Update(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	quizID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req service.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	quiz, err := ctl.QuizService.UpdateQuiz(quizID, claims, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, quiz)
}

// AddQuestion godoc
// @Summary Add a question with options to a quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Param request body service.QuestionRequest true "Question payload"
// @Success 201 {object} util.Response
// @Router /quizzes/{id}/questions [post]
func (ctl *QuizController) AddQuestion(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	quizID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req service.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	question, err := ctl.QuizService.AddQuestion(quizID, claims, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Created(c, question)
}

// UpdateQuestion godoc
// @Summary Update a question and replace its options
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param request body service.QuestionRequest true "Question payload"
// @Success 200 {object} util.Response
// @Router /questions/{id} [put]
func (ctl *QuizController) UpdateQuestion(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	questionID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req service.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	question, err := ctl.QuizService.UpdateQuestion(questionID, claims, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, question)
}
