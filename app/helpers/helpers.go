package helpers

import (
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const (
	ContextKeyUserID contextKey = "userID"
	ContextKeyUser   contextKey = "userObject"
)

// NewValidator reports field names using their json tags.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s không được để trống.", field)
		case "email":
			errorMessages[field] = fmt.Sprintf("%s phải là địa chỉ email hợp lệ.", field)
		case "numeric":
			errorMessages[field] = fmt.Sprintf("%s phải là số.", field)
		case "min":
			errorMessages[field] = fmt.Sprintf("%s tối thiểu %s ký tự/giá trị.", field, err.Param())
		case "max":
			errorMessages[field] = fmt.Sprintf("%s tối đa %s ký tự/giá trị.", field, err.Param())
		case "eqfield":
			errorMessages[field] = fmt.Sprintf("%s không khớp với %s.", field, err.Param())
		case "oneof":
			errorMessages[field] = fmt.Sprintf("%s phải là một trong: %s.", field, err.Param())
		default:
			errorMessages[field] = fmt.Sprintf("Trường %s không hợp lệ (%s).", field, err.Tag())
		}
	}
	return errorMessages
}

func PasswordCompare(hashPass string, password []byte) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashPass), password)
	if err != nil {
		log.Printf("PasswordCompare: password does not match or error: %v", err)
		return false
	}
	return true
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// GenerateSlug transliterates Vietnamese diacritics ("Phụ tùng" -> "phu-tung").
func GenerateSlug(s string) string {
	return slug.Make(s)
}
