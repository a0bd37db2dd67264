package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/inkwell-blog/inkwell/internal/common"
)

type messageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// errorText supplies the handler-specific wording for the shared error
// translation. Zero fields fall back to generic messages.
type errorText struct {
	notFound  string
	forbidden string
	internal  string
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeError translates service errors into the HTTP taxonomy. Every failure
// produces a {"message"} body; unexpected errors are logged server-side and
// never leak details to the client.
func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, err error, texts errorText) {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		writeMessage(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, common.ErrEmailTaken):
		writeMessage(w, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, common.ErrUsernameTaken):
		writeMessage(w, http.StatusBadRequest, "Username already taken")
	case errors.Is(err, common.ErrInvalidCredentials):
		writeMessage(w, http.StatusBadRequest, "Invalid email or password")
	case errors.Is(err, common.ErrNotFound):
		msg := texts.notFound
		if msg == "" {
			msg = "Not found"
		}
		writeMessage(w, http.StatusNotFound, msg)
	case errors.Is(err, common.ErrForbidden):
		msg := texts.forbidden
		if msg == "" {
			msg = "User not authorized"
		}
		writeMessage(w, http.StatusForbidden, msg)
	default:
		s.logger.Error(ctx, "request failed", "error", err.Error())
		msg := texts.internal
		if msg == "" {
			msg = "Server Error"
		}
		writeMessage(w, http.StatusInternalServerError, msg)
	}
}

// decodeJSON parses the request body into dst. A malformed body is a client
// error, reported with a generic message.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.Validation("Invalid request body")
	}
	return nil
}
