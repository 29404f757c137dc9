package main

import "github.com/spf13/viper"

// setupConfig wires the environment into viper with workable defaults for
// local development. Production deployments set DATABASE_URL, JWT_SECRET
// and NAT_ENV=production.
func setupConfig() {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DATABASE_PATH", "libgo.db")
	viper.SetDefault("JWT_SECRET", "replace-with-strong-secret")
	viper.SetDefault("NAT_ENV", "development")
	viper.AutomaticEnv()
}
