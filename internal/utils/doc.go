// Package utils provides a collection of helper functions for the command line:
// parsing of header, field, credential and proxy arguments, file checks and
// safe type conversion.
package utils
