package postgres

import "embed"

// Migrations holds the schema migrations for the lender panel store.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory within Migrations holding the SQL files.
const MigrationsDir = "migrations"
