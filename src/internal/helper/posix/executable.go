// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import "strings"

// ExecutableName returns the base name of args[0] without a trailing ".exe".
//
// Parameters:
//   - args: Process arguments, normally os.Args
//   - fallback: Name returned when args is empty or yields no name
//
// Returns:
//   - string: Executable name suitable for CLI usage lines
func ExecutableName(args []string, fallback string) string {
	if len(args) == 0 {
		return fallback
	}

	parts := strings.FieldsFunc(args[0], func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) == 0 {
		return fallback
	}

	name := strings.TrimSuffix(parts[len(parts)-1], ".exe")
	if name == "" {
		return fallback
	}
	return name
}
