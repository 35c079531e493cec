package http

import (
	"errors"
	"net/http"

	"lifebank/internal/core/domain/model/request"
	"lifebank/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed call. Code is the stable
// lifecycle error code and is absent for failures outside the catalogue.
type ErrorResponse struct {
	Status  int           `json:"status"`
	Code    *request.Code `json:"code,omitempty"`
	Message string        `json:"message"`
}

var statusByCode = map[request.Code]int{
	request.CodeAlreadyInitialized:      http.StatusConflict,
	request.CodeNotInitialized:          http.StatusConflict,
	request.CodeUnauthorized:            http.StatusUnauthorized,
	request.CodeInvalidInput:            http.StatusBadRequest,
	request.CodeInvalidBloodType:        http.StatusBadRequest,
	request.CodeInvalidStatus:           http.StatusBadRequest,
	request.CodeInvalidTimestamp:        http.StatusBadRequest,
	request.CodeInvalidQuantity:         http.StatusBadRequest,
	request.CodeNotAuthorizedHospital:   http.StatusForbidden,
	request.CodeNotAuthorizedBloodBank:  http.StatusForbidden,
	request.CodeRequestNotFound:         http.StatusNotFound,
	request.CodeInvalidStatusTransition: http.StatusConflict,
}

// newErrorResponse maps err onto an HTTP status and body.
func newErrorResponse(err error) ErrorResponse {
	var domainErr *request.Error
	if errors.As(err, &domainErr) {
		code := domainErr.Code()
		status, ok := statusByCode[code]
		if !ok {
			status = http.StatusBadRequest
		}
		return ErrorResponse{Status: status, Code: &code, Message: err.Error()}
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ErrorResponse{Status: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ErrorResponse{Status: http.StatusBadRequest, Message: err.Error()}
	default:
		return ErrorResponse{Status: http.StatusInternalServerError, Message: "internal error"}
	}
}

func writeError(ctx echo.Context, err error) error {
	response := newErrorResponse(err)
	if response.Status == http.StatusInternalServerError {
		ctx.Logger().Error(err)
	}
	return ctx.JSON(response.Status, response)
}

func writeBindError(ctx echo.Context) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Status:  http.StatusBadRequest,
		Message: "Invalid request body",
	})
}
