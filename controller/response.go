package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-splendor/dto"
	"go-splendor/engine"
	"go-splendor/service"
)

func ok(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         msg,
		"data":        data,
	})
}

func fail(c *gin.Context, err error) {
	c.JSON(statusOf(err), dto.ErrorResponse{Code: service.Code(err), Message: err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "BAD_REQUEST", Message: err.Error()})
}

func statusOf(err error) int {
	var rej *engine.Rejection
	switch {
	case errors.As(err, &rej):
		return http.StatusConflict
	case errors.Is(err, service.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotRoomOwner), errors.Is(err, service.ErrNotInRoom):
		return http.StatusForbidden
	case errors.Is(err, service.ErrRoomFull),
		errors.Is(err, service.ErrRoomStarted),
		errors.Is(err, service.ErrGameNotStarted),
		errors.Is(err, service.ErrNotEnoughPlayers):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidMaxPlayers), errors.Is(err, service.ErrInvalidPlayerInput):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
