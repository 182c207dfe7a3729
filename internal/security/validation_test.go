package security

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestValidateFetchURL(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		allowPrivate bool
		wantErr      bool
	}{
		{"https", "https://example.com/logo.svg", false, false},
		{"http", "http://example.com/logo.svg", false, false},
		{"empty", "", false, true},
		{"ftp scheme", "ftp://example.com/logo.svg", false, true},
		{"file scheme", "file:///etc/passwd", false, true},
		{"no host", "https:///logo.svg", false, true},
		{"localhost", "http://localhost:8080/logo.svg", false, true},
		{"loopback", "http://127.0.0.1/logo.svg", false, true},
		{"private v4", "http://192.168.1.10/logo.svg", false, true},
		{"private 172", "http://172.20.0.1/logo.svg", false, true},
		{"link local", "http://169.254.169.254/latest", false, true},
		{"loopback v6", "http://[::1]/logo.svg", false, true},
		{"private allowed", "http://127.0.0.1:9000/logo.svg", true, false},
		{"public v4", "http://8.8.8.8/logo.svg", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFetchURL(tt.url, tt.allowPrivate)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFetchURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputName(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		wantErr bool
	}{
		{"plain", "circle.svg", false},
		{"empty", "", true},
		{"traversal", "../circle.svg", true},
		{"nested", "a/circle.svg", true},
		{"absolute", "/tmp/circle.svg", true},
		{"backslash", `a\circle.svg`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputName(tt.file, "/tmp/out")
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputName(%q) error = %v, wantErr %v", tt.file, err, tt.wantErr)
			}
		})
	}
}

func TestLimitedReader(t *testing.T) {
	data, err := io.ReadAll(NewLimitedReader(strings.NewReader("12345"), 5))
	if err != nil {
		t.Fatalf("ReadAll() at the limit error = %v", err)
	}
	if string(data) != "12345" {
		t.Errorf("ReadAll() = %q", data)
	}

	_, err = io.ReadAll(NewLimitedReader(strings.NewReader("123456"), 5))
	if !errors.Is(err, ErrSizeLimit) {
		t.Errorf("ReadAll() over the limit error = %v, want ErrSizeLimit", err)
	}
}
