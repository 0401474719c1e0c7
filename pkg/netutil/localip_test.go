package netutil

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatURL(t *testing.T) {
	assert.Equal(t, "http://192.168.1.20:5000", FormatURL("192.168.1.20", "5000"))
	assert.Equal(t, "http://[fe80::1]:8080", FormatURL("fe80::1", "8080"))
}

func TestLocalIP(t *testing.T) {
	ip, err := LocalIP()
	if err != nil {
		t.Skipf("no outbound interface: %v", err)
	}
	assert.NotNil(t, net.ParseIP(ip))
}
