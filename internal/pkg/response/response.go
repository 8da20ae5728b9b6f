package response

import (
	"Inkwell/internal/service"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Fail(c *gin.Context, httpCode int, message string) {
	c.JSON(httpCode, Response{
		Code:    httpCode,
		Message: message,
	})
}

// Error 将业务错误映射为响应。绑定与校验错误统一按 400 处理，
// 未登记的错误一律按系统异常兜底，不向外泄露内部细节。
func Error(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &validationErrs) || errors.As(err, &typeErr) {
		Fail(c, http.StatusBadRequest, service.ErrParamInvalid.Error())
		return
	}

	for sentinel, code := range service.ErrorMap {
		if errors.Is(err, sentinel) {
			Fail(c, code, sentinel.Error())
			return
		}
	}

	slog.ErrorContext(c.Request.Context(), "unexpected error", slog.Any("error", err))
	Fail(c, http.StatusInternalServerError, service.UnExpectedError.Error())
}
