package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/hardik-python-lr/our-gate-backend/internal/config"
	"github.com/hardik-python-lr/our-gate-backend/internal/infrastructure/auth"
	"github.com/hardik-python-lr/our-gate-backend/internal/infrastructure/database"
	"github.com/hardik-python-lr/our-gate-backend/internal/infrastructure/repositories"
	"github.com/hardik-python-lr/our-gate-backend/internal/services"
)

// migrate creates the schema, seeds the seven roles and the default route
// policies, then prints table counts. DATABASE_DSN overrides the config file.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	dsn := cfg.DSN
	if envDSN := os.Getenv("DATABASE_DSN"); envDSN != "" {
		dsn = envDSN
	}

	db, err := database.Open(dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying sql.DB: %v", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	fmt.Println("database connection ok")

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run auto-migration: %v", err)
	}
	fmt.Println("schema migrated")

	if err := repositories.NewRoleRepository(db).EnsureRoles(context.Background()); err != nil {
		log.Fatalf("Failed to seed roles: %v", err)
	}

	cas, err := auth.NewCasbinService(db, cfg.CasbinModelPath)
	if err != nil {
		log.Fatalf("Failed to load casbin: %v", err)
	}
	seeded, err := services.NewPolicyService(cas.E).SeedDefaults(services.DefaultPolicies())
	if err != nil {
		log.Fatalf("Failed to seed policies: %v", err)
	}
	if seeded {
		fmt.Println("default route policies seeded")
	}

	for _, table := range []string{"roles", "users", "casbin_rule"} {
		var count int64
		if err := db.Table(table).Count(&count).Error; err != nil {
			log.Fatalf("Failed to count %s: %v", table, err)
		}
		fmt.Printf("%s: %d rows\n", table, count)
	}
}
