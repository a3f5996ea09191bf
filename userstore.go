package userstore

import (
	"embed"

	"github.com/goliatone/go-userstore/migrations"
	"github.com/goliatone/go-userstore/service"
)

// Re-export the service package entry point so consumers can do
// `userstore.New(...)` without importing internal wiring helpers.
type (
	Service  = service.Service
	Config   = service.Config
	Commands = service.Commands
	Queries  = service.Queries
)

// New constructs the userstore runtime using the provided configuration.
func New(cfg Config) *Service {
	return service.New(cfg)
}

// GetMigrationsFS exposes the dialect-aware SQL migrations so host
// applications can register them with their own go-persistence-bun client.
//
//	migrationsFS, _ := fs.Sub(userstore.GetMigrationsFS(), "data/sql")
//	client.RegisterDialectMigrations(
//	    migrationsFS,
//	    persistence.WithDialectSourceLabel("."),
//	    persistence.WithValidationTargets("postgres", "sqlite"),
//	)
func GetMigrationsFS() embed.FS {
	return migrations.FS
}
