package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// CheckoutFormDTO 結帳表單
// 只驗證欄位格式，商業規則在service層
type CheckoutFormDTO struct {
	StreetAddress string `json:"street_address" validate:"required,max=100"`
	Country       string `json:"country" validate:"required,iso3166_1_alpha2"`
	Zip           string `json:"zip" validate:"required,max=100"`
	PaymentOption string `json:"payment_option" validate:"required,oneof=stripe"`
}

// Validate 回傳 field -> 錯誤tag 的對照，給前端重新渲染表單用
func (d *CheckoutFormDTO) Validate() (map[string]string, error) {
	err := validate.Struct(d)
	if err == nil {
		return nil, nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil, err
	}

	fieldErrs := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fieldErrs[fieldErr.Field()] = fieldErr.Tag()
	}
	return fieldErrs, nil
}

// PaymentIntentDTO 回給前端做付款確認的intent資訊
type PaymentIntentDTO struct {
	IntentID     string `json:"id"`
	ClientSecret string `json:"client_secret"`
}
