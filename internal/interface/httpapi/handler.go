package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jinford/code-tutor/internal/core/tutor"
)

// CodeGenerator は質問からコードを生成するサービスのインターフェース
type CodeGenerator interface {
	GenerateCode(ctx context.Context, question string) (tutor.CodeResponse, error)
}

// ErrorResponse はエラー時のレスポンスボディ
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// generateCodeRequest は question の欠落を検出するためにポインタで受け取る
type generateCodeRequest struct {
	Question *string `json:"question"`
}

var errQuestionRequired = errors.New("question: field required")

// Handler はHTTPリクエストをコード生成サービスへ橋渡しする
type Handler struct {
	generator CodeGenerator
	logger    *slog.Logger
}

// NewHandler は新しい Handler を作成する
func NewHandler(generator CodeGenerator, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		generator: generator,
		logger:    logger,
	}
}

// GenerateCode は POST /api/generate-code のハンドラ
func (h *Handler) GenerateCode(c *gin.Context) {
	req, err := decodeCodeRequest(c)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Detail: err.Error()})
		return
	}

	resp, err := h.generator.GenerateCode(c.Request.Context(), req.Question)
	if err != nil {
		h.logger.Error("code generation failed",
			"requestID", RequestIDFrom(c),
			"serviceFailure", tutor.IsServiceError(err),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Health は GET /health のハンドラ
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func decodeCodeRequest(c *gin.Context) (tutor.CodeRequest, error) {
	var body generateCodeRequest
	// 先頭のJSON値のみをデコードする（後続データは無視される）
	if err := c.ShouldBindJSON(&body); err != nil {
		return tutor.CodeRequest{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if body.Question == nil {
		return tutor.CodeRequest{}, errQuestionRequired
	}
	return tutor.CodeRequest{Question: *body.Question}, nil
}
