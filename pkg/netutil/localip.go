// Package netutil finds how the server can be reached from the local network.
package netutil

import (
	"fmt"
	"net"
)

const (
	// No packet is sent; dialing UDP only selects the outbound interface.
	probeAddr   = "8.8.8.8:80"
	networkType = "udp"
)

// LocalIP returns the address of the interface used for outbound traffic.
func LocalIP() (string, error) {
	conn, err := net.Dial(networkType, probeAddr)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	localAddr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return "", fmt.Errorf("unexpected local address %v", conn.LocalAddr())
	}
	return localAddr.IP.String(), nil
}

// LANURL builds the base URL at which a server on port is reachable from
// other machines. It returns "" when no interface could be found.
func LANURL(port string) string {
	ip, err := LocalIP()
	if err != nil {
		return ""
	}
	return FormatURL(ip, port)
}

// FormatURL joins host and port into an http URL, bracketing IPv6 hosts.
func FormatURL(host, port string) string {
	return "http://" + net.JoinHostPort(host, port)
}
