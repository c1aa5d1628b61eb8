package utils

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"krishi-market/models"
)

var (
	looseEmailPattern = regexp.MustCompile(`^\S+@\S+\.\S+`)
	digitsPattern     = regexp.MustCompile(`^[0-9]+$`)

	validate     *validator.Validate
	validateOnce sync.Once
)

// fieldMessages maps a JSON field name and the failing tag to the message
// shown to the client.
var fieldMessages = map[string]map[string]string{
	"name": {
		"required": "Name is required",
	},
	"email": {
		"required":   "Email is required",
		"looseemail": "Please enter a valid email",
	},
	"phone": {
		"digits": "Please enter a valid 10-digit phone number",
	},
	"password": {
		"required": "Password is required",
		"min":      "Password must be at least 8 characters",
		"maxbytes": "Password must be at most 72 bytes",
	},
	"pincode": {
		"digits": "Please enter a valid 6-digit pincode",
	},
	"address": {
		"required": "Address is required",
	},
	"role": {
		"oneof": "Role must be either customer or seller",
	},
	"krishiBhavanId": {
		"required_if": "Krishi-Bhavan ID is required",
	},
	"krishiBhavan": {
		"required_if": "Please select a Krishi-Bhavan",
	},
}

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		// looseemail accepts anything shaped like local@domain.tld.
		_ = v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
			return looseEmailPattern.MatchString(fl.Field().String())
		})
		// digits=N requires exactly N ASCII digits.
		_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
			n, err := strconv.Atoi(fl.Param())
			if err != nil {
				return false
			}
			s := fl.Field().String()
			return len(s) == n && digitsPattern.MatchString(s)
		})
		// maxbytes=N bounds the encoded length; bcrypt rejects input over 72 bytes.
		_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
			n, err := strconv.Atoi(fl.Param())
			if err != nil {
				return false
			}
			return len(fl.Field().String()) <= n
		})
		validate = v
	})
	return validate
}

// ValidateRegistration returns one message per invalid field. An empty map
// means the request is acceptable.
func ValidateRegistration(req models.RegisterRequest) map[string]string {
	return collect(req)
}

// ValidateProfileUpdate checks the format of the fields present in an update.
func ValidateProfileUpdate(req models.UpdateProfileRequest) map[string]string {
	return collect(req)
}

func collect(req any) map[string]string {
	errs := map[string]string{}

	err := validatorInstance().Struct(req)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs["body"] = "Invalid request"
		return errs
	}
	for _, fe := range fieldErrs {
		errs[fe.Field()] = messageFor(fe)
	}
	return errs
}

func messageFor(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()][fe.Tag()]; ok {
		return msg
	}
	return "Invalid value"
}
