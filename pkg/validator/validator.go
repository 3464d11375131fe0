// Package validator validates request payloads with go-playground/validator
// and renders failures as one readable message.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	playground "github.com/go-playground/validator/v10"

	"event-judging/internal/models"
)

var (
	once     sync.Once
	instance *playground.Validate
)

func get() *playground.Validate {
	once.Do(func() {
		v := playground.New(playground.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)

		// role accepts any known role name, case-insensitive
		_ = v.RegisterValidation("role", func(fl playground.FieldLevel) bool {
			_, err := models.ParseRole(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("decision", func(fl playground.FieldLevel) bool {
			switch models.Decision(strings.ToUpper(fl.Field().String())) {
			case models.DecisionApproved, models.DecisionRejected:
				return true
			}
			return false
		})
		_ = v.RegisterValidation("request_status", func(fl playground.FieldLevel) bool {
			switch models.RequestStatus(strings.ToUpper(fl.Field().String())) {
			case models.StatusPending, models.StatusApproved, models.StatusRejected:
				return true
			}
			return false
		})
		instance = v
	})
	return instance
}

// ValidateStruct validates a struct based on validate tags. The returned
// error names fields by their json name.
func ValidateStruct(s interface{}) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}

	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "role":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), models.RoleSet(models.AllRoles))
	case "decision":
		return fmt.Sprintf("%s must be APPROVED or REJECTED", fe.Field())
	case "request_status":
		return fmt.Sprintf("%s must be PENDING, APPROVED or REJECTED", fe.Field())
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// SanitizeString removes null bytes and surrounding whitespace
func SanitizeString(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	return strings.TrimSpace(s)
}
