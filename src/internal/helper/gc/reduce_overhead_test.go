// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or use this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBufferInterface verifies that bytebufferpool.ByteBuffer satisfies Buffer interface
func TestBufferInterface(t *testing.T) {
	tests := []struct {
		name  string
		setup func(buf Buffer)
		check func(t *testing.T, buf Buffer)
	}{
		{
			name: "Write byte slice",
			setup: func(buf Buffer) {
				buf.Write([]byte("hello"))
			},
			check: func(t *testing.T, buf Buffer) {
				assert.Equal(t, "hello", buf.String())
				assert.Equal(t, 5, buf.Len())
			},
		},
		{
			name: "Multiple operations",
			setup: func(buf Buffer) {
				buf.Write([]byte("-----BEGIN"))
				buf.WriteString(" CERTIFICATE")
				buf.WriteByte('\n')
			},
			check: func(t *testing.T, buf Buffer) {
				expected := "-----BEGIN CERTIFICATE\n"
				assert.Equal(t, []byte(expected), buf.Bytes())
				assert.Equal(t, len(expected), buf.Len())
			},
		},
		{
			name: "ReadFrom",
			setup: func(buf Buffer) {
				buf.ReadFrom(strings.NewReader("from reader"))
			},
			check: func(t *testing.T, buf Buffer) {
				assert.Equal(t, "from reader", buf.String())
			},
		},
		{
			name: "Reset",
			setup: func(buf Buffer) {
				buf.WriteString("data")
				buf.Reset()
			},
			check: func(t *testing.T, buf Buffer) {
				assert.Equal(t, 0, buf.Len())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := Default.Get()
			defer func() {
				buf.Reset()
				Default.Put(buf)
			}()

			tt.setup(buf)
			tt.check(t, buf)
		})
	}
}

func TestPool_PutForeignBuffer(t *testing.T) {
	// A buffer that did not come from bytebufferpool is silently dropped.
	assert.NotPanics(t, func() {
		Default.Put(&mockBuffer{buf: new(bytes.Buffer)})
	})
}

func TestPool_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			buf := Default.Get()
			defer func() {
				buf.Reset()
				Default.Put(buf)
			}()
			buf.WriteByte(byte(i))
			assert.Equal(t, 1, buf.Len())
		}(i)
	}
	wg.Wait()
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("-----BEGIN CERTIFICATE-----\nAAAA\n-----END CERTIFICATE-----\n")
	path := filepath.Join(dir, "cert.pem")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Keeps Every Byte",
			testFunc: func(t *testing.T) {
				got, err := ReadFile(path, 1<<20)
				require.NoError(t, err)
				assert.Equal(t, content, got)
			},
		},
		{
			name: "Exact Limit",
			testFunc: func(t *testing.T) {
				got, err := ReadFile(path, int64(len(content)))
				require.NoError(t, err)
				assert.Equal(t, content, got)
			},
		},
		{
			name: "Too Large",
			testFunc: func(t *testing.T) {
				_, err := ReadFile(path, int64(len(content)-1))
				assert.ErrorIs(t, err, ErrFileTooLarge)
			},
		},
		{
			name: "No Limit",
			testFunc: func(t *testing.T) {
				got, err := ReadFile(path, 0)
				require.NoError(t, err)
				assert.Equal(t, content, got)
			},
		},
		{
			name: "Missing File",
			testFunc: func(t *testing.T) {
				_, err := ReadFile(filepath.Join(dir, "missing.pem"), 0)
				assert.ErrorIs(t, err, os.ErrNotExist)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}
