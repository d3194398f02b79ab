// Package connectors lazily opens the external clients the application uses.
package connectors

import (
	"storefront/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
