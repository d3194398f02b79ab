package config

import "time"

type Auth struct {
	GoogleClientID     string        `env:"GOOGLE_CLIENT_ID,required"`
	GoogleClientSecret string        `env:"GOOGLE_CLIENT_SECRET,required" json:"-"`
	GoogleRedirectURL  string        `env:"GOOGLE_REDIRECT_URL,required"`
	JWTSecret          string        `env:"JWT_SECRET,required" json:"-"`
	SessionTTL         time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}
