package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/prepcoach/internal/assessment"
	"github.com/abhisek/prepcoach/internal/logger"
	"github.com/abhisek/prepcoach/internal/profile"
	"github.com/abhisek/prepcoach/internal/quizgen"
	"github.com/abhisek/prepcoach/internal/store"
)

type handlers struct {
	log         *logger.Logger
	profiles    *profile.Service
	quizzes     *quizgen.Service
	assessments *assessment.Service
}

type profileResponse struct {
	User      *store.User `json:"user"`
	Onboarded bool        `json:"onboarded"`
}

type quizResponse struct {
	Questions quizgen.Quiz `json:"questions"`
}

type submitRequest struct {
	Questions []quizgen.Question `json:"questions" binding:"required,min=1,max=10"`
	Answers   []string           `json:"answers" binding:"max=10"`
	Score     *float64           `json:"score" binding:"omitempty,min=0,max=100"`
}

type historyResponse struct {
	Assessments []store.Assessment `json:"assessments"`
	Stats       assessment.Stats   `json:"stats"`
}

// GET /healthz
func healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /api/v1/profile
func (h *handlers) getProfile(c *gin.Context) {
	u, err := h.profiles.Current(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileResponse{User: u, Onboarded: profile.IsOnboarded(u)})
}

// PUT /api/v1/profile
func (h *handlers) updateProfile(c *gin.Context) {
	var in profile.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	u, err := h.profiles.Update(c.Request.Context(), in)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileResponse{User: u, Onboarded: profile.IsOnboarded(u)})
}

// GET /api/v1/insights
func (h *handlers) getInsight(c *gin.Context) {
	in, err := h.profiles.Insight(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, in)
}

// POST /api/v1/quizzes
func (h *handlers) generateQuiz(c *gin.Context) {
	quiz, err := h.quizzes.GenerateQuiz(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizResponse{Questions: quiz})
}

// POST /api/v1/assessments
func (h *handlers) submitAssessment(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	quiz := quizgen.Quiz(req.Questions)
	for i := range quiz {
		if verr := (&quizgen.StructuralValidator{}).Validate(&quiz[i]); verr != nil {
			respondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("question %d: %s", i, verr.Message))
			return
		}
	}

	score := assessment.PercentCorrect(assessment.Score(quiz, req.Answers))
	if req.Score != nil {
		score = *req.Score
	}

	a, err := h.assessments.SaveQuizResult(c.Request.Context(), quiz, req.Answers, score)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// GET /api/v1/assessments
func (h *handlers) listAssessments(c *gin.Context) {
	list, err := h.assessments.Assessments(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	if list == nil {
		list = []store.Assessment{}
	}
	c.JSON(http.StatusOK, historyResponse{Assessments: list, Stats: assessment.ComputeStats(list)})
}
