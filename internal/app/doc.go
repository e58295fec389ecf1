// Package app provides the logic behind the curl-logger commands.
// It turns command-line arguments into request descriptions, configures
// process-wide curl logging from the loaded configuration, and either prints
// the resulting curl command or sends the request through the logging client.
package app
