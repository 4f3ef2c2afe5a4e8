package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/Rakhulsr/go-motoshop/app/utils/apperror"
	"github.com/unrolled/render"
)

const genericErrorMessage = "Đã xảy ra lỗi, vui lòng thử lại sau."

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func StatusForKind(kind apperror.Kind) int {
	switch kind {
	case apperror.NotFound:
		return http.StatusNotFound
	case apperror.Conflict:
		return http.StatusConflict
	case apperror.InvalidArgument:
		return http.StatusBadRequest
	case apperror.Unauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as JSON. Errors that are not *apperror.Error are
// logged and hidden behind a generic 500.
func RespondError(rnd *render.Render, w http.ResponseWriter, r *http.Request, err error) {
	RespondErrorWithStatus(rnd, w, r, err, 0)
}

// RespondErrorWithStatus is RespondError with the status forced for
// application errors. A zero status keeps the kind's default.
func RespondErrorWithStatus(rnd *render.Render, w http.ResponseWriter, r *http.Request, err error, status int) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) || appErr.Kind == apperror.Internal {
		log.Printf("%s %s: internal error: %v", r.Method, r.URL.Path, err)
		_ = rnd.JSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   apperror.Internal.String(),
			Message: genericErrorMessage,
		})
		return
	}

	if status == 0 {
		status = StatusForKind(appErr.Kind)
	}
	_ = rnd.JSON(w, status, ErrorResponse{
		Error:   appErr.Kind.String(),
		Message: appErr.Message,
		Fields:  appErr.Fields,
	})
}

func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return apperror.NewInvalid("Dữ liệu gửi lên không hợp lệ.")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.NewInvalid("Dữ liệu gửi lên đang trống.")
		}
		return apperror.Wrap(apperror.InvalidArgument, "Dữ liệu gửi lên không hợp lệ.", err)
	}
	return nil
}

func UserIDFromContext(r *http.Request) string {
	userID, _ := r.Context().Value(ContextKeyUserID).(string)
	return userID
}

type PageMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type ListResponse struct {
	Data interface{} `json:"data"`
	Meta PageMeta    `json:"meta"`
}

// NewPageMeta mirrors the clamping done by the services: page >= 1,
// perPage 1..100 with a default of 12.
func NewPageMeta(page, perPage int, total int64) PageMeta {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 12
	}
	if perPage > 100 {
		perPage = 100
	}
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return PageMeta{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// QueryInt reads a positive integer query parameter, falling back to def.
func QueryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
