// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger_test

import (
	"io"
	"testing"

	"github.com/H0llyW00dzZ/tls-cert-verifier/src/logger"
)

func BenchmarkJSONLogger_Printf(b *testing.B) {
	log := logger.NewJSONLogger(io.Discard, false)

	b.ReportAllocs()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		log.Printf("certificate %d (%s): not valid after %s", i, "leaf.example.com", "2026-01-01 00:00:00 UTC")
	}
}

func BenchmarkJSONLogger_WithFields(b *testing.B) {
	log := logger.NewJSONLogger(io.Discard, false).
		WithField("component", "verifier").
		WithField("chain", 3)

	b.ReportAllocs()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		log.Printf("verified %d", i)
	}
}

func BenchmarkJSONLogger_PrintfConcurrent(b *testing.B) {
	log := logger.NewJSONLogger(io.Discard, false)

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			log.Printf("added %d trusted CA(s)", i)
			i++
		}
	})
}

func BenchmarkJSONLogger_Silent(b *testing.B) {
	log := logger.NewJSONLogger(io.Discard, true)

	b.ReportAllocs()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		log.Printf("suppressed %d", i)
	}
}

func BenchmarkCLILogger_Printf(b *testing.B) {
	log := logger.NewCLILogger()
	log.SetOutput(io.Discard)

	b.ReportAllocs()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		log.Printf("loaded RSA key pair for CN=%d", i)
	}
}
