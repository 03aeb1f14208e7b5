package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/dropapi/domain"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrInvalidNumberFormat),
			errors.Is(err, domain.ErrBadParamInput),
			errors.Is(err, domain.ErrInvalidAddress),
			errors.Is(err, domain.ErrInvalidSignature):
			status = http.StatusBadRequest
		case errors.Is(err, domain.ErrUnsupportedOperation):
			status = http.StatusNotImplemented
		case errors.Is(err, domain.ErrSignatureMismatch):
			status = http.StatusUnprocessableEntity
		}
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
