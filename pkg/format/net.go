// Package format provides small formatting helpers for network addresses.
package format

import (
	"net"
	"strconv"
)

// Addr joins host and port into a dialable address, bracketing IPv6
// literals.
func Addr(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
