// Package respond maps service errors to the {ok,reason} wire envelope at the
// HTTP boundary. Handlers never build status codes or reason strings anywhere
// else.
package respond

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	apiinternal "github.com/Omardiab22/VELIN-START/internal/api"
	appmiddleware "github.com/Omardiab22/VELIN-START/internal/middleware"
)

const (
	ReasonServerError = "server_error"
	reasonNotFound    = "not_found"
)

var installOnce sync.Once

// Install ensures Huma renders all framework-generated errors (body parse
// failures, validation, negotiation) through the shared failure envelope.
func Install() {
	installOnce.Do(func() {
		huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
			return newFailure(context.Background(), status, statusReason(status), msg, errs)
		}

		huma.NewErrorWithContext = func(hctx huma.Context, status int, msg string, errs ...error) huma.StatusError {
			goCtx := context.Background()
			if hctx != nil {
				goCtx = hctx.Context()
			}
			return newFailure(goCtx, status, statusReason(status), msg, errs)
		}
	})
}

// Failure returns a status error carrying the failure envelope. The reason is
// sent to the client verbatim; errs are logged server-side only.
func Failure(ctx context.Context, status int, reason string, errs ...error) huma.StatusError {
	return newFailure(ctx, status, reason, "", errs)
}

// NotFoundHandler emits the failure envelope for unmatched routes.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := writeFailure(w, http.StatusNotFound, reasonNotFound); err != nil {
			appmiddleware.LogError(r.Context(), "failed to render not found", err)
		}
	}
}

// MethodNotAllowedHandler emits the failure envelope for known routes hit with
// the wrong method.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := writeFailure(w, http.StatusMethodNotAllowed, statusReason(http.StatusMethodNotAllowed)); err != nil {
			appmiddleware.LogError(r.Context(), "failed to render method not allowed", err)
		}
	}
}

// Recoverer converts panics into a 500 failure envelope so a broken handler
// never crashes the process.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					var err error
					switch v := rec.(type) {
					case error:
						err = v
					default:
						err = fmt.Errorf("%v", v)
					}
					err = fmt.Errorf("%w\n%s", err, debug.Stack())
					appmiddleware.LogError(r.Context(), "panic recovered", err)
					if writeErr := writeFailure(w, http.StatusInternalServerError, ReasonServerError); writeErr != nil {
						appmiddleware.LogError(r.Context(), "failed to render internal error", writeErr)
					}
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type failureError struct {
	apiinternal.Failure
	status int
}

func (e *failureError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return http.StatusText(e.status)
}

func (e *failureError) GetStatus() int {
	return e.status
}

func newFailure(ctx context.Context, status int, reason, detail string, errs []error) huma.StatusError {
	logWithStatus(ctx, status, reason, detail, joinErrors(errs))
	return &failureError{Failure: apiinternal.NewFailure(reason), status: status}
}

func writeFailure(w http.ResponseWriter, status int, reason string) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(apiinternal.NewFailure(reason))
}

// statusReason derives the wire reason for errors the handlers did not name
// themselves. Anything server-side collapses to server_error so upstream
// detail never leaks to clients.
func statusReason(status int) string {
	if status >= http.StatusInternalServerError {
		return ReasonServerError
	}
	switch status {
	case http.StatusNotFound:
		return reasonNotFound
	case http.StatusUnprocessableEntity:
		return "invalid_request"
	}
	name := strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	name = strings.ReplaceAll(name, "-", "_")
	if strings.TrimSpace(name) == "" {
		return fmt.Sprintf("http_%d", status)
	}
	return name
}

func joinErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return errors.Join(errs...)
	}
}

func logWithStatus(ctx context.Context, status int, reason, detail string, err error) {
	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("reason", reason),
	}
	if detail != "" {
		fields = append(fields, zap.String("detail", detail))
	}
	switch {
	case status >= 500:
		appmiddleware.LogError(ctx, "request failed", err, fields...)
	case status >= 400:
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		appmiddleware.LogWarn(ctx, "request rejected", fields...)
	}
}
