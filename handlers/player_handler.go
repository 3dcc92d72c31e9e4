package handlers

import (
	"net/http"

	"scoreboard/services"

	"github.com/gin-gonic/gin"
)

type PlayerHandler struct {
	players *services.PlayerService
}

func NewPlayerHandler(players *services.PlayerService) *PlayerHandler {
	return &PlayerHandler{
		players: players,
	}
}

func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	players, err := h.players.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, players)
}

func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	name := c.PostForm("name")

	avatar, err := attachmentFromForm(c, "avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, err := h.players.Create(c.Request.Context(), name, avatar)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, player)
}

func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	player, err := h.players.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, player)
}

func (h *PlayerHandler) UpdatePlayer(c *gin.Context) {
	avatar, err := attachmentFromForm(c, "avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, err := h.players.Update(c.Request.Context(), c.Param("id"), services.UpdatePlayerRequest{
		Name:   c.PostForm("name"),
		Avatar: avatar,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, player)
}

func (h *PlayerHandler) DeletePlayer(c *gin.Context) {
	if err := h.players.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Player deleted successfully"})
}
