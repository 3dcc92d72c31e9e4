package handlers

import (
	"net/http"

	"scoreboard/services"

	"github.com/gin-gonic/gin"
)

type ScoreHandler struct {
	scores *services.ScoreService
}

func NewScoreHandler(scores *services.ScoreService) *ScoreHandler {
	return &ScoreHandler{
		scores: scores,
	}
}

func (h *ScoreHandler) ListScores(c *gin.Context) {
	scores, err := h.scores.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, scores)
}

func (h *ScoreHandler) CreateScore(c *gin.Context) {
	var req services.CreateScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	score, err := h.scores.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, score)
}

func (h *ScoreHandler) GetScore(c *gin.Context) {
	score, err := h.scores.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, score)
}

func (h *ScoreHandler) UpdateScore(c *gin.Context) {
	var req services.UpdateScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	score, err := h.scores.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, score)
}

func (h *ScoreHandler) DeleteScore(c *gin.Context) {
	if err := h.scores.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Score deleted successfully"})
}
