package log

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		realIP     string
		want       string
	}{
		{"direct peer", "203.0.113.7:4000", "", "", "203.0.113.7"},
		{"forwarded header from public peer is ignored", "203.0.113.7:4000", "198.51.100.1", "", "203.0.113.7"},
		{"real ip from public peer is ignored", "203.0.113.7:4000", "", "198.51.100.1", "203.0.113.7"},
		{"forwarded header from private proxy", "10.1.2.3:4000", "198.51.100.1, 10.1.2.3", "", "198.51.100.1"},
		{"real ip from loopback proxy", "127.0.0.1:4000", "", "198.51.100.2", "198.51.100.2"},
		{"malformed forwarded header falls back", "192.168.1.5:4000", "not-an-ip", "", "192.168.1.5"},
		{"remote addr without port", "203.0.113.9", "198.51.100.1", "", "203.0.113.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/loans", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := ClientIP(r); got != tt.want {
				t.Fatalf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
