package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/matzehuels/lineage/pkg/errors"
	"github.com/matzehuels/lineage/pkg/lineage"
	"github.com/matzehuels/lineage/pkg/observability"
)

// ErrorResponse is the body of every failed JSON request.
type ErrorResponse struct {
	Code      errors.Code  `json:"code"`
	Message   string       `json:"message"`
	Kind      lineage.Kind `json:"kind,omitempty"`
	IDs       []string     `json:"ids,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidHierarchy, errors.ErrCodeDegenerateArea:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeMemberNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	}
	if strings.HasPrefix(string(code), "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	id := RequestID(ctx)
	observability.HTTP().OnError(ctx, id, r.Method, r.URL.Path, err)

	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := StatusFor(code)
	body := ErrorResponse{
		Code:      code,
		Message:   errors.UserMessage(err),
		Kind:      lineage.KindOf(err),
		IDs:       lineage.IDsOf(err),
		RequestID: id,
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "id", id, "err", err)
		body.Message = "internal error"
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeBytes(w http.ResponseWriter, status int, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func cacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
}
