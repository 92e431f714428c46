package config

import (
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Port           string        `env:"PORT" envDefault:"4000"`
	DatabasePath   string        `env:"DATABASE_PATH" envDefault:"./clinicbook.db"`
	JWTSecret      string        `env:"JWT_SECRET" envDefault:"dev-secret"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
	FrontendOrigin string        `env:"FRONTEND_ORIGIN" envDefault:"http://localhost:5173"`

	SeedStaffEmail   string `env:"SEED_STAFF_EMAIL"`
	SeedStaffPass    string `env:"SEED_STAFF_PASS"`
	SeedPatientEmail string `env:"SEED_PATIENT_EMAIL"`
	SeedPatientPass  string `env:"SEED_PATIENT_PASS"`
}

func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
