package pkg

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/databroker-go/databroker/internal/domain"
)

// Response is the JSON envelope every API endpoint replies with.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ValidationErrorResponse carries per-field messages for rejected input.
type ValidationErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// Success replies 200 with data in the envelope.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Code: http.StatusOK, Message: "success", Data: data})
}

// List replies 200 with a list result envelope (typically a
// domain.ListResult[T]) as the data payload.
func List(c *gin.Context, result any) {
	c.JSON(http.StatusOK, Response{Code: http.StatusOK, Message: "success", Data: result})
}

// Error replies with the HTTP status derived from err's error code. Errors
// that are not *AppError values map to a generic 500.
func Error(c *gin.Context, err error) {
	status := domain.HTTPStatusCode(err)
	msg := "internal error"
	if appErr, ok := domain.AsAppError(err); ok {
		msg = appErr.Message
	}
	c.JSON(status, Response{Code: status, Message: msg})
}

// Failure translates a failed broker envelope into an HTTP error response.
// The envelope's cause picks the status; its message is sent as-is, with a
// generic fallback when empty.
func Failure(c *gin.Context, result domain.Result) {
	status := domain.HTTPStatusCode(result.Err)
	msg := result.Message
	if msg == "" {
		msg = "internal error"
	}
	c.JSON(status, Response{Code: status, Message: msg})
}

// BindAndValidate binds the request body into obj and runs validation,
// replying 400 with field details on failure. Handlers use it as a guard:
//
//	if !pkg.BindAndValidate(c, &req) { return }
func BindAndValidate(c *gin.Context, obj any) bool {
	if err := c.ShouldBind(obj); err != nil {
		writeValidationError(c, err, obj)
		return false
	}
	return true
}

// ValidationError replies 400 for a validation failure where no bound
// struct is available; field names fall back to lowercased Go names.
func ValidationError(c *gin.Context, err error) {
	writeValidationError(c, err, nil)
}

func writeValidationError(c *gin.Context, err error, obj any) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		// Malformed body rather than failed rules.
		c.JSON(http.StatusBadRequest, Response{Code: http.StatusBadRequest, Message: err.Error()})
		return
	}

	c.JSON(http.StatusBadRequest, ValidationErrorResponse{
		Code:    http.StatusBadRequest,
		Message: "validation error",
		Errors:  fieldMessages(ve, jsonNamesOf(obj)),
	})
}

// fieldMessages renders one message per failed field, keyed by the field's
// JSON name when known.
func fieldMessages(ve validator.ValidationErrors, jsonNames map[string]string) map[string]string {
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		name, ok := jsonNames[fe.StructField()]
		if !ok {
			name = strings.ToLower(fe.Field())
		}
		msg := fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		out[name] = msg
	}
	return out
}

// jsonNamesOf maps obj's struct field names to their JSON tag names.
// Returns nil when obj is not a struct or pointer to one.
func jsonNamesOf(obj any) map[string]string {
	if obj == nil {
		return nil
	}
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	names := make(map[string]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if name := parseJSONTagName(f.Tag.Get("json")); name != "" {
			names[f.Name] = name
		}
	}
	return names
}

// parseJSONTagName returns the name portion of a json struct tag, or ""
// when the field is untagged or excluded.
func parseJSONTagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return ""
	}
	return name
}
