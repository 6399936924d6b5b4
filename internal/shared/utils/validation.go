package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// String length limits
const (
	MaxIDLength          = 128
	MaxCommandLineLength = 256
	MaxDisplayNameLength = 64
)

var (
	// SafeIDPattern allows alphanumeric, hyphens, underscores
	SafeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	// CommandIDPattern allows alphanumeric, hyphens, underscores, and dots (scan.node)
	CommandIDPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidateID validates an ID field
func ValidateID(id, fieldName string, required bool) error {
	if err := ValidateString(id, fieldName, 1, MaxIDLength, required); err != nil {
		return err
	}

	if id != "" && !SafeIDPattern.MatchString(id) {
		return fmt.Errorf("%s contains invalid characters (only alphanumeric, hyphens, and underscores allowed)", fieldName)
	}

	return nil
}

// ValidateCommandID validates a command catalog ID
func ValidateCommandID(id string) error {
	if err := ValidateString(id, "command id", 1, MaxIDLength, true); err != nil {
		return err
	}

	if !CommandIDPattern.MatchString(id) {
		return fmt.Errorf("command id contains invalid characters (only alphanumeric, dots, hyphens, and underscores allowed)")
	}

	return nil
}

// ValidateCommandLine validates raw terminal input. Empty input is allowed
// since the engine treats it as a no-op.
func ValidateCommandLine(line string) error {
	return ValidateString(line, "line", 0, MaxCommandLineLength, false)
}

// ValidateDisplayName validates a player display name
func ValidateDisplayName(name string) error {
	return ValidateString(name, "display name", 1, MaxDisplayNameLength, true)
}
