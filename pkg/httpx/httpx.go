// Package httpx provides http.RoundTripper decorators for outbound clients.
package httpx

import (
	"storefront/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
