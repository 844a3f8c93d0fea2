package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lessonlab/code-runner/internal/repository/dto"
	"github.com/lessonlab/code-runner/internal/runner"
	"github.com/lessonlab/code-runner/internal/runner/native"
)

type executeHandler struct {
	runner runner.Runner
}

// Execute validates the request shape before any subprocess runs, dispatches
// to the runner, and maps the outcome to a status code: 200 when the
// submitted code succeeded, 400 when it failed, 500 only when the service
// itself faulted.
func (h *executeHandler) Execute(c *gin.Context) {
	var req dto.ExecutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, dto.ErrInvalidJSON)
		return
	}
	if req.Language == "" || req.Code == "" {
		badRequest(c, dto.ErrMissingLanguageOrCode)
		return
	}
	if !native.Supported(req.Language) {
		badRequest(c, dto.ErrUnsupportedLanguage)
		return
	}

	outcome, err := h.runner.Run(&req)
	if err != nil {
		slog.Error("execution failed", "language", req.Language, "error", err)
		c.JSON(http.StatusInternalServerError, dto.ExecutionOutcome{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	status := http.StatusOK
	if !outcome.Success {
		status = http.StatusBadRequest
	}
	c.JSON(status, outcome)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, dto.ExecutionOutcome{Success: false, Error: msg})
}
