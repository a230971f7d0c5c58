package httpx

import (
	"time"

	"github.com/mlehotskylf-org/signkit/internal/config"
	"github.com/mlehotskylf-org/signkit/internal/security"
)

// testSecret is the 30-byte secret used across handler tests
const testSecret = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

// newTestConfig creates a valid test configuration with all required fields
func newTestConfig() config.Config {
	return config.Config{
		Env:             "dev",
		Port:            "8080",
		LogLevel:        "info",
		SigningSecret:   []byte(testSecret),
		SecretEncoding:  config.SecretEncodingRaw,
		MaxRandomBytes:  64,
		MaxBodyBytes:    4096,
		ShutdownTimeout: 5 * time.Second,
		EnableHSTS:      false,
	}
}

// newTestDeps builds handler dependencies for cfg
func newTestDeps(cfg config.Config) Deps {
	signer, err := cfg.NewSigner()
	if err != nil {
		panic(err)
	}
	return Deps{Signer: signer, Random: security.NewRandom(nil)}
}
