package curllog

import "strings"

// Environment is a deployment tag such as "development" or "production".
type Environment string

// Well-known environments.
const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentTest        Environment = "test"
	EnvironmentStaging     Environment = "staging"
	EnvironmentProduction  Environment = "production"

	// DefaultEnvironment is used when no tag is supplied.
	DefaultEnvironment = EnvironmentProduction
)

// ParseEnvironment normalizes a textual tag: surrounding spaces are trimmed
// and the result is lower-cased.
func ParseEnvironment(value string) Environment {
	return Environment(strings.ToLower(strings.TrimSpace(value)))
}

// LoggingEnabledByDefault reports whether curl logging is on by default in e.
// Only development and test enable it.
func (e Environment) LoggingEnabledByDefault() bool {
	switch ParseEnvironment(string(e)) {
	case EnvironmentDevelopment, EnvironmentTest:
		return true
	default:
		return false
	}
}
