// Package middlewarex contains chi-compatible HTTP middleware shared by the
// storefront servers.
package middlewarex

import (
	"storefront/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
