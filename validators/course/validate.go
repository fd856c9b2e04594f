package courseValidator

import (
	"edu/middleware"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}

// validateStruct runs the struct's validate tags and returns field -> message
func validateStruct(s interface{}) map[string]string {
	errs := make(map[string]string)
	var fieldErrors validator.ValidationErrors
	if err := validate.Struct(s); errors.As(err, &fieldErrors) {
		for _, fe := range fieldErrors {
			errs[fe.Field()] = fieldMessage(fe)
		}
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	label := strings.ReplaceAll(fe.Field(), "_", " ")
	label = strings.ToUpper(label[:1]) + label[1:]

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required!", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long!", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long!", label, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or greater!", label, fe.Param())
	case "slug":
		return fmt.Sprintf("%s may only contain letters, numbers, hyphens and underscores!", label)
	case "url":
		return fmt.Sprintf("%s must be a valid URL!", label)
	}
	return fmt.Sprintf("%s is invalid!", label)
}

// parseID reads a positive integer route parameter. msg is set when it is missing or invalid.
func parseID(c *fiber.Ctx, param, label string) (id int, msg string) {
	raw := strings.TrimSpace(c.Params(param))
	if raw == "" {
		return 0, label + " is required!"
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, "Invalid " + label + "!"
	}
	return id, ""
}

// idParam validates a route parameter and stores it in Locals under key
func idParam(param, label, key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, msg := parseID(c, param, label)
		if msg != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
		}
		c.Locals(key, id)
		return c.Next()
	}
}
