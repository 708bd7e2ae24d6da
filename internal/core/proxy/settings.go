package proxy

import (
	"fmt"
	"net/http"
	"net/url"

	"paypal-checkout/internal/core/config"
)

// Settings describes the egress proxy used for processor calls.
type Settings struct {
	Enabled  bool
	Hostname string
	Port     int
	Username string
	Password string
}

// FromConfig builds Settings from the application configuration.
func FromConfig(cfg config.ProxyConfig) Settings {
	return Settings{
		Enabled:  cfg.Enabled,
		Hostname: cfg.Hostname,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
	}
}

// HasProxy returns true if proxy is enabled and configured.
func (p Settings) HasProxy() bool {
	return p.Enabled && p.Hostname != "" && p.Port > 0
}

// HostPort returns the proxy address without credentials, safe to log.
func (p Settings) HostPort() string {
	if !p.HasProxy() {
		return ""
	}
	return fmt.Sprintf("http://%s:%d", p.Hostname, p.Port)
}

// URL returns the proxy URL including credentials, or nil when no proxy is configured.
func (p Settings) URL() *url.URL {
	if !p.HasProxy() {
		return nil
	}
	u := &url.URL{
		Scheme: "http",
		Host:   fmt.Sprintf("%s:%d", p.Hostname, p.Port),
	}
	if p.Username != "" && p.Password != "" {
		u.User = url.UserPassword(p.Username, p.Password)
	}
	return u
}

// Func returns a proxy selector for http.Transport.
// Without a configured proxy it falls back to the HTTP(S)_PROXY environment.
func (p Settings) Func() func(*http.Request) (*url.URL, error) {
	if u := p.URL(); u != nil {
		return http.ProxyURL(u)
	}
	return http.ProxyFromEnvironment
}
