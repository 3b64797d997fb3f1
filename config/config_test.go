package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Run(`empty jwt secret check`, func(t *testing.T) {
		conf := new(Configuration)
		require.NotNil(t, conf.validate())
		conf.Auth.JWTSecret = "   "
		require.NotNil(t, conf.validate())
	})

	t.Run(`jwt secret set`, func(t *testing.T) {
		conf := new(Configuration)
		conf.Auth.JWTSecret = "secret"
		require.Nil(t, conf.validate())
	})
}

func TestInitConfigPanicsWithoutSecret(t *testing.T) {
	Conf = nil
	t.Setenv("JWT_SECRET", "")
	require.Panics(t, InitConfig)
	require.Nil(t, Conf)

	t.Setenv("JWT_SECRET", "secret")
	require.NotPanics(t, InitConfig)
	require.Equal(t, "secret", Conf.Auth.JWTSecret)
	Conf = nil
}
