package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"

	"github.com/zlyZwierz/librouteros/pkg/config"
	"github.com/zlyZwierz/librouteros/pkg/format"
	"github.com/zlyZwierz/librouteros/pkg/transport"
)

// dialDependencies carries the dial function so tests can inject a fake
// network.
type dialDependencies struct {
	dialContext func(ctx context.Context, network, addr string) (net.Conn, error)
}

// Dial connects to the router described by cfg, upgrades to TLS when
// configured, applies the configured timeout and performs the API login.
// The returned connection is ready for API use; the caller must Close it.
func Dial(ctx context.Context, cfg *config.Config) (*Conn, error) {
	deps := &dialDependencies{
		dialContext: (&net.Dialer{}).DialContext,
	}
	return dial(ctx, cfg, deps)
}

func dial(ctx context.Context, cfg *config.Config, deps *dialDependencies) (*Conn, error) {
	addr := format.Addr(cfg.Host, cfg.Port)

	sock, err := deps.dialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", addr, err)
	}

	stream := transport.Stream(sock)
	if cfg.TLS {
		tlsConn := tls.Client(sock, &tls.Config{
			ServerName:         cfg.Host,
			InsecureSkipVerify: cfg.Insecure,
		})
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			sock.Close()
			return nil, fmt.Errorf("TLS handshake with %s: %w", addr, err)
		}
		stream = tlsConn
	}

	c := New(stream)

	if cfg.Timeout > 0 {
		if err := c.SetTimeout(cfg.Timeout); err != nil {
			c.Close()
			return nil, err
		}
	}

	if err := c.API().Login(cfg.Username, cfg.Password); err != nil {
		c.Close()
		return nil, fmt.Errorf("logging in as %s: %w", cfg.Username, err)
	}

	return c, nil
}
