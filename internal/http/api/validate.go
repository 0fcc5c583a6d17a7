package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// InvalidJSONMessage is reported when a request body cannot be decoded.
const InvalidJSONMessage = "The request body must be valid JSON"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs the `validate` rules of req and returns one message per failed
// rule, in field declaration order. Messages come from each field's `msg` tag.
func Validate(req any) []string {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	t := reflect.TypeOf(req)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := fe.Error()
		if field, ok := t.FieldByName(fe.StructField()); ok {
			if tag := field.Tag.Get("msg"); tag != "" {
				msg = tag
			}
		}
		messages = append(messages, msg)
	}
	return messages
}

// BindJSON decodes the request body into req and validates it. An empty body
// decodes to the zero value, so every required field is reported.
func BindJSON(ctx *gin.Context, req any) *Error {
	if err := ctx.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return &Error{Code: http.StatusBadRequest, Errors: []string{typeMessage(typeErr)}}
		}
		return &Error{Code: http.StatusBadRequest, Errors: []string{InvalidJSONMessage}}
	}
	if messages := Validate(req); len(messages) > 0 {
		return &Error{Code: http.StatusBadRequest, Errors: messages}
	}
	return nil
}

func typeMessage(err *json.UnmarshalTypeError) string {
	want := "a " + err.Type.String()
	switch err.Type.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		want = "a number"
	case reflect.String:
		want = "a string"
	case reflect.Pointer:
		if err.Type.Elem().Kind() == reflect.String {
			want = "a string"
		}
	}
	return fmt.Sprintf("The %s field must be %s", err.Field, want)
}
