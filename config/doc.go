// Package config loads service configuration with Viper.
//
// Values come from an optional config.yml, an optional .env file (read with
// godotenv) and the process environment, in increasing precedence. Keys that
// have a registered environment alias (see WithEnvAliases) are read from that
// variable; every other key is read from its upper-cased, underscore-joined
// form once it has a registered default, so server.max_body_size maps to
// SERVER_MAX_BODY_SIZE.
//
// Load builds the gateway's AppConfig and fails with a CONFIG_ERROR when a
// provider credential is missing outside mock mode.
package config
