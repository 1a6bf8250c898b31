package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginMasksPassword(t *testing.T) {
	expected, err := json.Marshal(map[string]string{"email": "jane@storefront.test", "password": "***"})
	require.NoError(t, err)
	login := Login{Email: "jane@storefront.test", Password: "secret-password"}

	actual, err := json.Marshal(login)
	require.NoError(t, err)

	assert.JSONEq(t, string(expected), string(actual))
	assert.Equal(t, "secret-password", login.Password)
}

func TestRegisterMasksPassword(t *testing.T) {
	register := Register{
		Username: "jane",
		Email:    "jane@storefront.test",
		Password: "secret-password",
		Role:     "vendor",
		ShopName: "Capes",
	}

	actual, err := json.Marshal(register)
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(actual, &decoded))
	assert.Equal(t, "***", decoded["password"])
	assert.Equal(t, "Capes", decoded["shop_name"])
	assert.Equal(t, "secret-password", register.Password)
}
