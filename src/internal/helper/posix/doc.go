// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides [POSIX]-style helpers that behave the same on every
// operating system.
//
// The CLI uses [ExecutableName] so that usage lines name the binary the way
// it was invoked:
//
//	rootCmd := &cobra.Command{
//	    Use: posix.ExecutableName(os.Args, "tls-cert-verifier"),
//	}
//
// Paths are split on both '/' and '\', so "C:\bin\verifier.exe" yields
// "verifier" even on a Unix host.
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
