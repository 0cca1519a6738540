package infra

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/proxy"
)

const defaultHTTPTimeout = 30 * time.Second

// NewHTTPClient returns the client shared by the outbound adapters.
// A non-empty proxyAddr routes every connection through that SOCKS5 proxy.
func NewHTTPClient(timeout time.Duration, proxyAddr string) (*http.Client, error) {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	if proxyAddr == "" {
		return &http.Client{Timeout: timeout}, nil
	}

	dialer, err := proxy.SOCKS5("tcp", proxyAddr, nil, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("creating socks5 dialer for %s: %w", proxyAddr, err)
	}

	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			if cd, ok := dialer.(proxy.ContextDialer); ok {
				return cd.DialContext(ctx, network, addr)
			}
			return dialer.Dial(network, addr)
		},
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}, nil
}
