package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLValidate(t *testing.T) {
	v := NewURL()

	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"public https", "https://www.youtube.com/api/timedtext?v=abc", false},
		{"public http", "http://example.com/page", false},
		{"file scheme", "file:///etc/passwd", true},
		{"ftp scheme", "ftp://example.com/file", true},
		{"localhost", "http://localhost/admin", true},
		{"loopback ip", "http://127.0.0.1:8080/", true},
		{"private 10.x", "http://10.0.0.5/", true},
		{"private 192.168.x", "https://192.168.1.1/", true},
		{"private 172.16.x", "http://172.16.0.1/", true},
		{"link-local metadata", "http://169.254.169.254/latest/meta-data/", true},
		{"gcp metadata hostname", "http://metadata.google.internal/computeMetadata/", true},
		{"ipv6 loopback", "http://[::1]/", true},
		{"ipv6 mapped loopback", "http://[::ffff:127.0.0.1]/", true},
		{"unspecified", "http://0.0.0.0/", true},
		{"empty host", "https:///path", true},
		{"garbage", "://not-a-url", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSafeTransport_BlocksLoopbackDial(t *testing.T) {
	v := NewURL()
	transport := v.SafeTransport()
	require.NotNil(t, transport)

	_, err := transport.DialContext(t.Context(), "tcp", "127.0.0.1:80")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SSRF blocked")
}
