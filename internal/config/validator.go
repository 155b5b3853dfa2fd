package config

import "fmt"

// Warnings lists settings that work but should not reach production
func (c *Config) Warnings() []string {
	var warnings []string

	if c.JWTSecret == ExampleJWTSecret {
		warnings = append(warnings, "JWT_SECRET appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	} else if len(c.JWTSecret) < MinJWTSecretLength && !c.IsDev() {
		warnings = append(warnings, fmt.Sprintf("JWT_SECRET is shorter than %d bytes", MinJWTSecretLength))
	}

	if c.HasDatabase() && c.DBPassword == ExampleDBPassword {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}

	if !c.HasDatabase() && !c.IsDev() {
		warnings = append(warnings, "DB_HOST is empty - claims are kept in memory only and lost on restart")
	}

	return warnings
}
