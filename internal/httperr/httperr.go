package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aircooling/backoffice/internal/logging"
)

type Kind string

const (
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindRateLimited     Kind = "rate_limited"
	KindBackend         Kind = "backend"
	KindInternal        Kind = "internal"
)

// Status maps an error kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Wrap(kind Kind, code, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

// Envelope is the uniform error body.
type Envelope struct {
	OK        bool   `json:"ok"`
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"requestId"`
}

// From converts any error into an *Error. Unknown errors become internal.
func From(err error) *Error {
	var he *Error
	if errors.As(err, &he) {
		return he
	}

	if he := classifyBackend(err); he != nil {
		return he
	}

	return Wrap(KindInternal, "internal_error", "Erreur interne.", err)
}

// Respond writes the error envelope. Server-side failures are logged with the
// correlation id and recorded on the context for error reporting.
func Respond(c *gin.Context, err error) {
	he := From(err)
	status := he.Kind.Status()

	log := logging.FromContext(c)
	if status >= http.StatusInternalServerError {
		log.Error("request_failed",
			zap.String("kind", string(he.Kind)),
			zap.String("code", he.Code),
			zap.Error(err),
		)
		_ = c.Error(err)
	} else {
		log.Info("request_rejected",
			zap.String("kind", string(he.Kind)),
			zap.String("code", he.Code),
		)
	}

	c.JSON(status, Envelope{
		OK:        false,
		Error:     he.Message,
		Code:      he.Code,
		RequestID: logging.RequestID(c),
	})
}

// Abort is Respond followed by c.Abort, for middlewares.
func Abort(c *gin.Context, err error) {
	Respond(c, err)
	c.Abort()
}

func write(c *gin.Context, kind Kind, code, message string) {
	Respond(c, New(kind, code, message))
}

func BadRequest(c *gin.Context, code, message string) {
	write(c, KindValidation, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	write(c, KindNotFound, code, message)
}
