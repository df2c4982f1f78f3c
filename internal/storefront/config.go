package storefront

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	EnvPublicEndpoint = "NEXT_PUBLIC_SHOPIFY_STOREFRONT_URL"
	EnvPublicToken    = "NEXT_PUBLIC_SHOPIFY_STOREFRONT_ACCESS_TOKEN"
	EnvServerEndpoint = "SHOPIFY_STOREFRONT_URL"
	EnvServerToken    = "SHOPIFY_STOREFRONT_ACCESS_TOKEN"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultMaxRetries = 2
)

// ExecutionContext selects which environment variables may supply credentials.
type ExecutionContext int

const (
	// ContextServer reads the server pair and falls back to the public pair.
	ContextServer ExecutionContext = iota
	// ContextBrowser reads only the public pair.
	ContextBrowser
)

func (c ExecutionContext) String() string {
	switch c {
	case ContextBrowser:
		return "browser"
	case ContextServer:
		return "server"
	default:
		return fmt.Sprintf("ExecutionContext(%d)", int(c))
	}
}

func ParseExecutionContext(s string) (ExecutionContext, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "server":
		return ContextServer, nil
	case "browser", "client":
		return ContextBrowser, nil
	default:
		return 0, fmt.Errorf("unknown execution context: %q", s)
	}
}

// Config is the client configuration. A zero Timeout or MaxRetries selects the
// default; a negative MaxRetries disables retries.
type Config struct {
	Endpoint   string
	Token      string
	Timeout    time.Duration
	MaxRetries int
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ResolveConfig fills the endpoint and token left empty in explicit from the
// environment variables allowed for execCtx. Explicit values always win.
func ResolveConfig(explicit Config, execCtx ExecutionContext, lookup LookupFunc) Config {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	cfg := explicit
	endpointKeys, tokenKeys := envKeys(execCtx)

	if strings.TrimSpace(cfg.Endpoint) == "" {
		cfg.Endpoint = firstEnv(lookup, endpointKeys...)
	}
	if strings.TrimSpace(cfg.Token) == "" {
		cfg.Token = firstEnv(lookup, tokenKeys...)
	}

	return cfg
}

func envKeys(execCtx ExecutionContext) (endpoints, tokens []string) {
	if execCtx == ContextBrowser {
		return []string{EnvPublicEndpoint}, []string{EnvPublicToken}
	}
	return []string{EnvServerEndpoint, EnvPublicEndpoint}, []string{EnvServerToken, EnvPublicToken}
}

func firstEnv(lookup LookupFunc, keys ...string) string {
	for _, key := range keys {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
