package responses

import (
	"net/http"

	"localmart/internal/structs"
)

const (
	UnauthorizedCode = http.StatusUnauthorized
	ForbiddenCode    = http.StatusForbidden
)

var (
	Success = structs.Response{
		Status:  http.StatusOK,
		Message: "success",
	}
	BadRequest = structs.Response{
		Status:  http.StatusBadRequest,
		Message: "bad request",
	}
	NotFound = structs.Response{
		Status:  http.StatusNotFound,
		Message: "not found",
	}
	Unauthorized = structs.Response{
		Status:  http.StatusUnauthorized,
		Message: "unauthorized",
	}
	Forbidden = structs.Response{
		Status:  http.StatusForbidden,
		Message: "forbidden",
	}
	Conflict = structs.Response{
		Status:  http.StatusConflict,
		Message: "conflict",
	}
	InternalErr = structs.Response{
		Status:  http.StatusInternalServerError,
		Message: "internal server error",
	}
)
