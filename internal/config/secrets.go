package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Secrets holds the credentials loaded from the environment at startup.
// Values are immutable for the process lifetime and must never be logged.
type Secrets struct {
	DiscordToken   string `env:"DISCORD_TOKEN,required"`
	KindroidAPIKey string `env:"KINDROID_API_KEY,required"`
	KindroidURL    string `env:"KINDROID_INFER_URL" envDefault:"https://api.kindroid.ai/v1"`
}

// LoadSecrets loads the .env file at the given path (if present) and parses
// the required secrets from the environment. A missing required secret is a
// fatal configuration error: the bot cannot authenticate to Discord or
// Kindroid without them.
func LoadSecrets(envFile string) (*Secrets, error) {
	// The .env file is optional; in production secrets usually arrive
	// through real environment variables.
	_ = godotenv.Load(envFile)

	secrets := &Secrets{}
	if err := env.Parse(secrets); err != nil {
		return nil, WrapConfigError("secrets", "missing or invalid environment", err)
	}

	return secrets, nil
}
