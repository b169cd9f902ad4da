package errors

import (
	"strings"
	"unicode"
)

// MaxGridBytes caps how much maze text the API accepts in one request.
// A 1000x1000 maze with newlines stays comfortably under this.
const MaxGridBytes = 4 << 20

// ValidateGridText performs boundary validation of raw maze text before it
// reaches the parser. It rejects oversized and binary payloads early; the
// grid parser handles symbol-level validation with its own errors.
func ValidateGridText(text string) error {
	if text == "" {
		return New(ErrCodeInvalidGrid, "grid text cannot be empty")
	}

	if len(text) > MaxGridBytes {
		return New(ErrCodeInvalidGrid, "grid text too large (max %d bytes)", MaxGridBytes)
	}

	for _, r := range text {
		if r == '\n' || r == '\r' {
			continue
		}
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidGrid, "grid text contains control characters")
		}
	}

	return nil
}

// facingNames are the headings accepted at the boundary, matching the route
// package's parser.
var facingNames = []string{"north", "east", "south", "west", "n", "e", "s", "w"}

// ValidateFacing validates a start-heading name.
func ValidateFacing(facing string) error {
	name := strings.ToLower(strings.TrimSpace(facing))
	for _, known := range facingNames {
		if name == known {
			return nil
		}
	}
	return New(ErrCodeInvalidHeading, "unknown facing %q (want north, east, south, or west)", facing)
}

// ValidateListenAddr validates a host:port listen address.
func ValidateListenAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidConfig, "listen address cannot be empty")
	}

	if !strings.Contains(addr, ":") {
		return New(ErrCodeInvalidConfig, "listen address %q must contain a port", addr)
	}

	for _, r := range addr {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "listen address contains invalid characters")
		}
	}

	return nil
}

// ValidateLogLevel validates a log level name.
func ValidateLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return nil
	}
	return New(ErrCodeInvalidConfig, "unknown log level %q (want debug, info, warn, or error)", level)
}

// ValidateCacheBackend validates a cache backend name.
func ValidateCacheBackend(backend string) error {
	switch strings.ToLower(backend) {
	case "file", "redis", "none":
		return nil
	}
	return New(ErrCodeInvalidConfig, "unknown cache backend %q (want file, redis, or none)", backend)
}
