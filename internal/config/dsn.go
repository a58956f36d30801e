package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// buildDSN joins host and port (IPv6 safe) and URL-escapes the password so
// characters like ':' or '@' don't break the postgres URL.
func buildDSN(d DatabaseConfig) string {
	hostPort := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		url.QueryEscape(d.User),
		url.QueryEscape(d.Password),
		hostPort,
		d.Name,
		d.SSLMode,
	)
}
