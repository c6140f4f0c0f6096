package config

import "time"

type Config struct {
	Environment  Environment
	Log          Log
	HTTP         HTTPServer
	BaseURL      string `env:"BASE_URL"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"paylock.db"`

	Fusion Fusion `envPrefix:"FUSION_"`
	Auth   Auth   `envPrefix:"AUTH_"`
}

type Fusion struct {
	PayURL       string        `env:"PAY_URL" envDefault:"https://www.pay.moneyfusion.net/pay"`
	NotifURL     string        `env:"NOTIF_URL" envDefault:"https://www.pay.moneyfusion.net/paiementNotif"`
	Timeout      time.Duration `env:"TIMEOUT" envDefault:"15s"`
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"4s"`
}

type Auth struct {
	JWTSecret  string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	AdminEmail string `env:"ADMIN_EMAIL" envDefault:"admin@paylock.com"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
