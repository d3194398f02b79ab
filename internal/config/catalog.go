package config

import "time"

type Catalog struct {
	TopSellersWindow          time.Duration `env:"TOP_SELLERS_WINDOW" envDefault:"168h"`
	TopSellersRefreshInterval time.Duration `env:"TOP_SELLERS_REFRESH_INTERVAL" envDefault:"5m"`
}
