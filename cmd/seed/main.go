// Command seed populates the database with demo data for development.
package main

import (
	"context"
	"flag"
	"log"

	"joinwork/internal/config"
	"joinwork/internal/database"
	"joinwork/internal/seed"
	"joinwork/internal/server"
)

func main() {
	graduates := flag.Int("graduates", 20, "number of graduate accounts to create")
	companies := flag.Int("companies", 5, "number of company accounts to create")
	jobs := flag.Int("jobs", 3, "job postings per company")
	workshops := flag.Int("workshops", 4, "number of workshops to create")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "store plaintext passwords (fast dev mode)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed a production database")
	}

	if cfg.StoreDriver == "memory" {
		log.Fatal("Refusing to seed a memory store: data is lost on exit")
	}
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	repos := server.NewGormRepositories(db)

	opts := seed.Options{
		NumGraduates:   *graduates,
		NumCompanies:   *companies,
		JobsPerCompany: *jobs,
		NumWorkshops:   *workshops,
		SkipBcrypt:     *skipBcrypt,
	}

	factory := seed.NewFactory(repos, opts)
	if err := seed.Run(context.Background(), factory); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete")
}
