// Package modules wires long-running application components into an errgroup.
package modules

import (
	"storefront/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
