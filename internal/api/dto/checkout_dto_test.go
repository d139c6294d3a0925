package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutFormValidate(t *testing.T) {
	validForm := CheckoutFormDTO{
		StreetAddress: "Street 123",
		Country:       "TW",
		Zip:           "110",
		PaymentOption: "stripe",
	}

	t.Run("合法表單", func(t *testing.T) {
		fieldErrs, err := validForm.Validate()
		require.NoError(t, err)
		assert.Nil(t, fieldErrs)
	})

	t.Run("缺地址", func(t *testing.T) {
		form := validForm
		form.StreetAddress = ""
		fieldErrs, err := form.Validate()
		require.NoError(t, err)
		assert.Contains(t, fieldErrs, "StreetAddress")
	})

	t.Run("國家代碼不合法", func(t *testing.T) {
		form := validForm
		form.Country = "Taiwan"
		fieldErrs, err := form.Validate()
		require.NoError(t, err)
		assert.Contains(t, fieldErrs, "Country")
	})

	t.Run("不支援的付款方式", func(t *testing.T) {
		form := validForm
		form.PaymentOption = "paypal"
		fieldErrs, err := form.Validate()
		require.NoError(t, err)
		assert.Equal(t, "oneof", fieldErrs["PaymentOption"])
	})

	t.Run("缺郵遞區號", func(t *testing.T) {
		form := validForm
		form.Zip = ""
		fieldErrs, err := form.Validate()
		require.NoError(t, err)
		assert.Contains(t, fieldErrs, "Zip")
	})
}
