package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leon37/EduConsult/internal/api/response"
	"github.com/leon37/EduConsult/internal/infrastructure/llm"
	"github.com/leon37/EduConsult/internal/service"
)

// fail 把业务层的哨兵错误翻译成 HTTP 状态码
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSurfaceBusy):
		response.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrEmptyChatInput),
		errors.Is(err, service.ErrEmptyPersonalityInput),
		errors.Is(err, service.ErrEmptyLearningContent),
		errors.Is(err, service.ErrEmptyInstructions),
		errors.Is(err, service.ErrInvalidMetricValue):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, llm.ErrEmptyResponse), errors.Is(err, llm.ErrInvalidResponse):
		response.Error(c, http.StatusBadGateway, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, err.Error())
	}
}
