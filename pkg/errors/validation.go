package errors

import (
	"strings"
	"unicode"
)

const maxNameLength = 256

// ValidatePackageName validates a package name and returns it trimmed.
//
// A valid name is non-empty after trimming and consists of letters, digits
// and the punctuation apk uses in names and provider tokens: '-', '_', '.',
// '+' (g++) and ':' (so:libc.musl-x86_64.so.1, cmd:sh).
func ValidatePackageName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", New(ErrCodeInvalidPackage, "package name cannot be empty")
	}
	if len(name) > maxNameLength {
		return "", New(ErrCodeInvalidPackage, "package name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		switch r {
		case '-', '_', '.', '+', ':':
			continue
		}
		return "", New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", name)
	}
	return name, nil
}

// ValidateRepository validates a repository URL or path and returns it trimmed.
// Only emptiness is checked here; reachability is the loader's concern.
func ValidateRepository(location string) (string, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return "", New(ErrCodeInvalidRepository, "repository URL or path cannot be empty")
	}
	for _, r := range location {
		if unicode.IsControl(r) {
			return "", New(ErrCodeInvalidRepository, "repository location contains control characters")
		}
	}
	if strings.Contains(location, "://") &&
		!strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		return "", New(ErrCodeInvalidRepository, "repository URL must use http or https scheme")
	}
	return location, nil
}

// ValidateVersion validates a version selector and returns it trimmed.
// "latest" is a selector like any other here.
func ValidateVersion(version string) (string, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return "", New(ErrCodeInvalidVersion, "version cannot be empty")
	}
	if strings.ContainsFunc(version, unicode.IsSpace) {
		return "", New(ErrCodeInvalidVersion, "version cannot contain whitespace: %q", version)
	}
	return version, nil
}
