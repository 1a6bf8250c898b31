package validate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

type variant struct {
	Size     string `json:"size"     validate:"required,size"`
	Color    string `json:"color"    validate:"required,color"`
	Phone    string `json:"phone"    validate:"required,max=10,digits"`
	Price    string `json:"price"    validate:"required,price"`
	Quantity int    `json:"quantity" validate:"gte=1,lte=1000"`
}

func TestStruct(t *testing.T) {
	err := Struct(variant{Size: "M", Color: "Navy", Phone: "0812345678", Price: "500", Quantity: 1})
	assert.NoError(t, err)

	err = Struct(variant{Size: "XS", Color: "Magenta", Phone: "08-1234", Price: "1.5", Quantity: 0})
	require.Error(t, err)

	var validationErr *inErrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Fields, 5)
	assert.Contains(t, validationErr.Fields["size"], "must be one of")
	assert.Contains(t, validationErr.Fields["color"], "must be one of")
	assert.Equal(t, "must contain only digits", validationErr.Fields["phone"])
	assert.Equal(t, "must be a non negative whole number", validationErr.Fields["price"])
	assert.Equal(t, "must be at least 1", validationErr.Fields["quantity"])
}

func TestStructMissingFields(t *testing.T) {
	err := Struct(variant{Quantity: 1})

	var validationErr *inErrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "is required", validationErr.Fields["size"])
	assert.Equal(t, "is required", validationErr.Fields["color"])
}

func TestStructQuantityBounds(t *testing.T) {
	testCases := []struct {
		name     string
		quantity int
		message  string
	}{
		{name: "lower bound", quantity: 1},
		{name: "upper bound", quantity: 1000},
		{name: "below lower bound", quantity: 0, message: "must be at least 1"},
		{name: "above upper bound", quantity: 1001, message: "must be at most 1000"},
		{name: "max int32", quantity: math.MaxInt32, message: "must be at most 1000"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Struct(variant{Size: "M", Color: "Navy", Phone: "0812345678", Price: "500", Quantity: tc.quantity})
			if tc.message == "" {
				assert.NoError(t, err)
				return
			}

			var validationErr *inErrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, map[string]string{"quantity": tc.message}, validationErr.Fields)
		})
	}
}
