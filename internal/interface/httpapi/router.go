package httpapi

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// NewRouter はAPIのルーティングを設定した gin.Engine を作成する
func NewRouter(handler *Handler, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery(), RequestID(), AccessLog(logger))

	router.GET("/health", handler.Health)

	api := router.Group("/api")
	api.POST("/generate-code", handler.GenerateCode)

	return router
}
