package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"ngx/coaching/internal/config"
)

func TestEndpointURL(t *testing.T) {
	tests := []struct {
		endpoint string
		ssl      bool
		want     string
	}{
		{"minio:9000", false, "http://minio:9000"},
		{"fra1.digitaloceanspaces.com", true, "https://fra1.digitaloceanspaces.com"},
		{"http://localhost:9000", true, "http://localhost:9000"},
	}
	for _, tt := range tests {
		if got := endpointURL(tt.endpoint, tt.ssl); got != tt.want {
			t.Errorf("endpointURL(%q, %v) = %q, want %q", tt.endpoint, tt.ssl, got, tt.want)
		}
	}
}

// Presigning is computed locally, so no server is needed.
func TestGeneratePresignedDownloadURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fs, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		BucketName:      "exports",
	}, logger)
	if err != nil {
		t.Fatalf("NewS3Storage: %v", err)
	}

	url, err := fs.GeneratePresignedDownloadURL(context.Background(), "exports/t1/p1/a.pdf", 10*time.Minute)
	if err != nil {
		t.Fatalf("GeneratePresignedDownloadURL: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:9000/exports/exports/t1/p1/a.pdf?") {
		t.Errorf("url = %q, want a path-style URL on the custom endpoint", url)
	}
	if !strings.Contains(url, "X-Amz-Expires=600") {
		t.Errorf("url = %q, want a 600s expiry", url)
	}
}
