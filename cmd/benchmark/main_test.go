package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanBytes(t *testing.T) {
	assert.Equal(t, "512 B", humanBytes(512))
	assert.Equal(t, "1.50 KB", humanBytes(1536))
	assert.Equal(t, "2.00 MB", humanBytes(2*1024*1024))
	assert.Equal(t, "1.00 GB", humanBytes(1024*1024*1024))
}

func TestAggregate(t *testing.T) {
	results := []BenchResult{
		{Format: "png", Duration: time.Second, Size: 100},
		{Format: "png", Duration: 3 * time.Second, Size: 300},
		{Format: "png", Err: errors.New("status 500")},
		{Format: "jpg", Err: errors.New("status 400")},
	}

	agg := aggregate(results)

	assert.Equal(t, Agg{Count: 2, Failed: 1, Total: 4 * time.Second, TotalBytes: 400}, agg["png"])
	assert.Equal(t, Agg{Failed: 1}, agg["jpg"])
}

func TestPrintMarkdown(t *testing.T) {
	var buf bytes.Buffer
	printMarkdown(&buf, []BenchResult{
		{Format: "png", Duration: 2 * time.Second, Size: 2048},
		{Format: "jpg", Err: errors.New("boom")},
	})

	out := buf.String()
	assert.Contains(t, out, "| png | 1 | 0 | 2s | 2s | 2.00 KB |")
	assert.Contains(t, out, "| jpg | 0 | 1 | - | - | - |")
	assert.Contains(t, out, "| **ALL** | 1 | 1 |")
}

func TestBenchmarkImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var event invocationEvent
		_ = sonic.Unmarshal(raw, &event)
		if event.Base64 == "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"statusCode":400,"body":"missing required key: base64"}`))
			return
		}
		_, _ = w.Write([]byte(`{"statusCode":200,"body":"ABC123"}`))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "sample.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 'P', 'N', 'G'}, 0o600))

	res := benchmarkImage(context.Background(), srv.Client(), srv.URL, path)

	require.NoError(t, res.Err)
	assert.Equal(t, "sample.png", res.File)
	assert.Equal(t, "png", res.Format)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 6, res.TextLength)
	assert.EqualValues(t, 4, res.Size)
}

func TestSendEvent_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"statusCode":500,"body":"model invocation failed: upstream timeout"}`))
	}))
	defer srv.Close()

	env, err := sendEvent(context.Background(), srv.Client(), srv.URL, invocationEvent{Base64: "X"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream timeout")
	require.NotNil(t, env)
	assert.Equal(t, http.StatusInternalServerError, env.StatusCode)
}

func TestSendEvent_NonEnvelopeResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	env, err := sendEvent(context.Background(), srv.Client(), srv.URL, invocationEvent{Base64: "X"})

	require.Error(t, err)
	assert.Nil(t, env)
	assert.Contains(t, err.Error(), "bad status 502")
}
