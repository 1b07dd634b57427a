// Package config loads application configuration from the environment into
// tagged structs, with optional .env file support for local development.
//
// Describe the configuration with `env` tags:
//
//	type AppConfig struct {
//	    Addr   string `env:"LISTEN_ADDR" envDefault:":8080"`
//	    APIURL string `env:"API_URL,required"`
//	}
//
// and populate it at startup:
//
//	var cfg AppConfig
//	config.MustLoad(&cfg)
//
// Parsing is delegated to github.com/caarlos0/env; the default .env file is
// read at most once per process via github.com/joho/godotenv and its absence
// is not an error.
package config
