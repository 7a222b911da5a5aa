package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Booking lifecycle status
	validate.RegisterValidation("booking_status", func(fl validator.FieldLevel) bool {
		status := fl.Field().String()
		validStatuses := []string{"pending", "approved", "rejected", "cancelled", ""}
		for _, s := range validStatuses {
			if status == s {
				return true
			}
		}
		return false
	})

	// Approval decision status (a decision can never move a booking back to pending)
	validate.RegisterValidation("approval_status", func(fl validator.FieldLevel) bool {
		status := fl.Field().String()
		validStatuses := []string{"approved", "rejected", "cancelled"}
		for _, s := range validStatuses {
			if status == s {
				return true
			}
		}
		return false
	})

	// Room status
	validate.RegisterValidation("room_status", func(fl validator.FieldLevel) bool {
		status := fl.Field().String()
		validStatuses := []string{"available", "occupied", "maintenance", ""}
		for _, s := range validStatuses {
			if status == s {
				return true
			}
		}
		return false
	})

	// Phone numbers: digits, spaces, dashes, plus and parentheses
	validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		phone := fl.Field().String()
		if phone == "" {
			return true
		}
		for _, c := range phone {
			switch {
			case c >= '0' && c <= '9':
			case c == ' ' || c == '-' || c == '+' || c == '(' || c == ')':
			default:
				return false
			}
		}
		return true
	})

	// Notification delivery status
	validate.RegisterValidation("notification_status", func(fl validator.FieldLevel) bool {
		status := fl.Field().String()
		validStatuses := []string{"pending", "sent", "failed", ""}
		for _, s := range validStatuses {
			if status == s {
				return true
			}
		}
		return false
	})

	// Notification type
	validate.RegisterValidation("notification_type", func(fl validator.FieldLevel) bool {
		kind := fl.Field().String()
		validKinds := []string{"booking_rescheduled", "booking_approved", "booking_rejected", "booking_cancelled"}
		for _, k := range validKinds {
			if kind == k {
				return true
			}
		}
		return false
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "uuid":
			errors[field] = "Must be a valid UUID"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "phone":
			errors[field] = "Phone may only contain digits, spaces, dashes, plus and parentheses"
		case "booking_status":
			errors[field] = "Invalid status. Must be: pending, approved, rejected or cancelled"
		case "approval_status":
			errors[field] = "Invalid status. Must be: approved, rejected or cancelled"
		case "room_status":
			errors[field] = "Invalid status. Must be: available, occupied or maintenance"
		case "notification_status":
			errors[field] = "Invalid status. Must be: pending, sent or failed"
		case "notification_type":
			errors[field] = "Invalid type. Must be: booking_rescheduled, booking_approved, booking_rejected or booking_cancelled"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
