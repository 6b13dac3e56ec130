package util

import (
	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v4"
)

// GenUUID generates a new UUID string.
func GenUUID() string {
	return uuid.New().String()
}

// GenShortUID generates a compact unique identifier suitable for URLs.
func GenShortUID() string {
	return shortuuid.New()
}
