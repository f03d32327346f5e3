package main

import (
	"flag"
	"fmt"
	"log"

	"wisewallet/backend/config"
	"wisewallet/backend/database"
	"wisewallet/backend/migrations"
)

func main() {
	list := flag.Bool("list", false, "List applied migrations and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if !*list {
		if err := migrations.RunMigrations(db); err != nil {
			db.Close()
			log.Fatalf("Failed to run migrations: %v", err)
		}
		fmt.Println("Migrations completed successfully!")
	}

	applied, err := migrations.Applied(db)
	if err != nil {
		log.Fatalf("Failed to read migrations: %v", err)
	}
	for _, name := range applied {
		fmt.Println(name)
	}
}
