package validation

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	staffNICRegex = regexp.MustCompile(`^[A-Z0-9]{3,12}$`)
	phoneRegex    = regexp.MustCompile(`^\+?\d{7,15}$`)
)

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("staff_nic", isStaffNIC); err != nil {
		return err
	}
	if err := v.RegisterValidation("yyyy_mm_dd", isISODate); err != nil {
		return err
	}
	if err := v.RegisterValidation("phone", isPhone); err != nil {
		return err
	}
	return nil
}

// isStaffNIC - идентификатор сотрудника (NIC): заглавные латинские буквы и цифры
func isStaffNIC(fl validator.FieldLevel) bool {
	return staffNICRegex.MatchString(fl.Field().String())
}

// isISODate - дата строкой вида 2024-03-15
func isISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

func isPhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}
