package cache

import (
	"crypto/tls"

	"vibedocs/internal/config"

	"github.com/valkey-io/valkey-go"
)

// Connect creates the Valkey client used for credential lookup caching.
// The client is constructed in the process bootstrap and injected into
// the features that need it.
func Connect(env config.EnvVariables) (valkey.Client, error) {
	options := valkey.ClientOption{
		InitAddress: []string{env.ValkeyHost + ":" + env.ValkeyPort},
		Password:    env.ValkeyPassword,
		Username:    env.ValkeyUsername,
	}

	if env.ValkeyIsSsl {
		options.TLSConfig = &tls.Config{
			ServerName: env.ValkeyHost,
		}
	}

	return valkey.NewClient(options)
}
