package validator

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout - формат календарной даты в запросах
const DateLayout = "2006-01-02"

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// iso_date - строка вида 2024-05-10
	_ = validate.RegisterValidation("iso_date", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(DateLayout, fl.Field().String())
		return err == nil
	})
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// ValidateSlice - валидация каждого элемента среза, первая ошибка прерывает проверку
func ValidateSlice[T any](items []T) (int, error) {
	for i := range items {
		if err := validate.Struct(&items[i]); err != nil {
			return i, err
		}
	}
	return -1, nil
}
