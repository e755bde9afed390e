package appenv

import (
	"os"
	"strings"
)

// Env is the application runtime environment, either "production" or "test".
type Env string

const (
	Production Env = "production"
	Test       Env = "test"
)

// Current reads APP_ENV. Empty or unknown values behave as production.
func Current() Env {
	if strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))) == string(Test) {
		return Test
	}
	return Production
}

func IsProduction() bool { return Current() == Production }
func IsTest() bool       { return Current() == Test }
