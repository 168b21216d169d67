// Package deploy prepares an env directory for a production deployment:
// it pins the production database type and reports insecure settings.
package deploy

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"chat-app/session-service/internal/config"
	"github.com/joho/godotenv"
)

const ProductionDBType = config.DBTypeSupabase

// Prepare rewrites dir/.env with DB_TYPE pinned to the production database,
// writes dir/.env.production, and returns the production checklist warnings
// for the resulting settings. Progress is reported to out.
func Prepare(dir string, out io.Writer) ([]string, error) {
	fmt.Fprintln(out, "Preparing for production deployment...")

	envPath := filepath.Join(dir, ".env")
	env, err := godotenv.Read(envPath)
	switch {
	case err == nil:
		fmt.Fprintln(out, "Found .env file")
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintln(out, "No .env file found, creating one")
		env = map[string]string{}
	default:
		return nil, fmt.Errorf("read %s: %w", envPath, err)
	}

	if env["DB_TYPE"] != ProductionDBType {
		fmt.Fprintf(out, "Setting DB_TYPE=%s in .env\n", ProductionDBType)
		env["DB_TYPE"] = ProductionDBType
	}

	if err := godotenv.Write(env, envPath); err != nil {
		return nil, fmt.Errorf("write %s: %w", envPath, err)
	}
	fmt.Fprintln(out, "Updated .env file with production settings")

	productionPath := filepath.Join(dir, ".env.production")
	if err := godotenv.Write(map[string]string{"DB_TYPE": ProductionDBType}, productionPath); err != nil {
		return nil, fmt.Errorf("write %s: %w", productionPath, err)
	}
	fmt.Fprintln(out, "Created .env.production")

	cfg := config.FromMap(env)
	cfg.Environment = config.EnvProduction
	warnings := cfg.Checklist()
	for _, w := range warnings {
		fmt.Fprintf(out, "WARNING: %s\n", w)
	}

	fmt.Fprintln(out, "Deployment preparation complete")
	return warnings, nil
}
