package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BindJSON decodes and validates the request body. On failure it writes a
// 400 naming the offending field and reports false; the caller must return.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)

	if err != nil {
		RespondBadRequest(ctx, messageFromBindError(err, out))

		return false
	}

	return true
}

func messageFromBindError(err error, out interface{}) string {
	var validatorErrors validator.ValidationErrors

	if errors.As(err, &validatorErrors) && len(validatorErrors) > 0 {
		// first failure wins; the original validated field by field too
		first := validatorErrors[0]
		field := jsonFieldName(out, first.Field())

		if first.Tag() == "required" {
			return "Campo obrigatório ausente: " + field
		}

		return "Campo inválido: " + field
	}

	return "JSON inválido."
}

// jsonFieldName maps a struct field back to its json tag; the payloads here
// are flat structs so no nesting is handled.
func jsonFieldName(out interface{}, structField string) string {
	t := reflect.TypeOf(out)

	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == nil || t.Kind() != reflect.Struct {
		return structField
	}

	sf, ok := t.FieldByName(structField)

	if !ok {
		return structField
	}

	tag := sf.Tag.Get("json")

	name, _, _ := strings.Cut(tag, ",")

	if name == "" || name == "-" {
		return structField
	}

	return name
}
