package routes

import (
	"net/http"

	"scoreboard/config"
	"scoreboard/handlers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(
	router *gin.Engine,
	gameHandler *handlers.GameHandler,
	playerHandler *handlers.PlayerHandler,
	scoreHandler *handlers.ScoreHandler,
	overviewHandler *handlers.OverviewHandler,
	cfg *config.Config,
) {
	// API routes
	api := router.Group("/api")
	{
		games := api.Group("/games")
		{
			games.GET("", gameHandler.ListGames)
			games.POST("", gameHandler.CreateGame)
			games.GET("/:id", gameHandler.GetGame)
			games.PATCH("/:id", gameHandler.UpdateGame)
			games.DELETE("/:id", gameHandler.DeleteGame)
		}

		players := api.Group("/players")
		{
			players.GET("", playerHandler.ListPlayers)
			players.POST("", playerHandler.CreatePlayer)
			players.GET("/:id", playerHandler.GetPlayer)
			players.PATCH("/:id", playerHandler.UpdatePlayer)
			players.DELETE("/:id", playerHandler.DeletePlayer)
		}

		scores := api.Group("/scores")
		{
			scores.GET("", scoreHandler.ListScores)
			scores.POST("", scoreHandler.CreateScore)
			scores.GET("/:id", scoreHandler.GetScore)
			scores.PATCH("/:id", scoreHandler.UpdateScore)
			scores.DELETE("/:id", scoreHandler.DeleteScore)
		}

		api.GET("/overview", overviewHandler.GetOverview)
	}

	// Uploaded images are served straight from disk when the local storage
	// driver is active; the vercel driver hands out absolute blob URLs.
	if cfg.StorageDriver == "local" {
		router.Static("/uploads", cfg.UploadDir)
	}

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
