package config

import (
	"io"
	"time"
)

// TimeConfig defines helpers for retrieving time-based configuration values.
type TimeConfig interface {
	// GetSecond retrieves the configuration value associated with the given key as seconds.
	// If the key does not exist or the value cannot be converted to an integer,
	// the implementation should return zero.
	GetSecond(key string) time.Duration
}

// Config defines a set of methods for retrieving configuration values of various types.
// Implementations of this interface should handle the retrieval and type conversion
// of configuration data, providing default behaviors as necessary.
type Config interface {
	io.Closer
	TimeConfig

	// GetInt retrieves the configuration value associated with the given key as an int.
	GetInt(key string) int

	// GetBool retrieves the configuration value associated with the given key as a bool.
	GetBool(key string) bool

	// GetFloat64 retrieves the configuration value associated with the given key as a float64.
	GetFloat64(key string) float64

	// GetString retrieves the configuration value associated with the given key as a string.
	// If the key does not exist, the implementation should return an empty string.
	GetString(key string) string

	// GetBinary retrieves the configuration value associated with the given key as a byte slice.
	// Configuration value is stored as base64 encoded.
	GetBinary(key string) []byte

	// GetArray retrieves the configuration value associated with the given key as a slice of strings.
	// Configuration value is stored with format <element1>,<element2>,...
	// Empty elements are dropped.
	GetArray(key string) []string
}
