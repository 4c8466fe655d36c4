// storectl is the administrative companion to the storefront server.
// It implements the password-reset flow (issuing and revoking temporary
// passwords that shadow a user's permanent one) and catalog seeding.
//
// Usage:
//
//	storectl temp-password set -email user@example.com
//	storectl temp-password clear -email user@example.com
//	storectl product add -name "Mug" -description "ceramic mug" -price 799
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/apetrenko/storefront/internal/server/config"
	"github.com/apetrenko/storefront/internal/server/repositories/repomanager"
	"github.com/apetrenko/storefront/internal/server/services"
)

func main() {
	if len(os.Args) < 3 {
		usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("db ping: %v", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	switch os.Args[1] + " " + os.Args[2] {
	case "temp-password set":
		runTempPasswordSet(ctx, os.Args[3:], db, rm)
	case "temp-password clear":
		runTempPasswordClear(ctx, os.Args[3:], db, rm)
	case "product add":
		runProductAdd(ctx, os.Args[3:], db, rm)
	default:
		usage()
	}
}

func runTempPasswordSet(ctx context.Context, args []string, db *sql.DB, rm repomanager.RepositoryManager) {
	fs := flag.NewFlagSet("temp-password set", flag.ExitOnError)
	email := fs.String("email", "", "user email")
	_ = fs.Parse(args)
	if *email == "" {
		log.Fatal("-email is required")
	}

	password, err := getPassword(os.Stderr)
	if err != nil {
		log.Fatalf("reading password: %v", err)
	}

	svc := services.NewTemporaryPasswordService(db, rm)
	if err := svc.Issue(ctx, *email, string(password)); err != nil {
		log.Fatalf("issuing temporary password: %v", err)
	}
	fmt.Printf("temporary password set for %s\n", *email)
}

func runTempPasswordClear(ctx context.Context, args []string, db *sql.DB, rm repomanager.RepositoryManager) {
	fs := flag.NewFlagSet("temp-password clear", flag.ExitOnError)
	email := fs.String("email", "", "user email")
	_ = fs.Parse(args)
	if *email == "" {
		log.Fatal("-email is required")
	}

	svc := services.NewTemporaryPasswordService(db, rm)
	if err := svc.Revoke(ctx, *email); err != nil {
		log.Fatalf("revoking temporary password: %v", err)
	}
	fmt.Printf("temporary password cleared for %s\n", *email)
}

func runProductAdd(ctx context.Context, args []string, db *sql.DB, rm repomanager.RepositoryManager) {
	fs := flag.NewFlagSet("product add", flag.ExitOnError)
	name := fs.String("name", "", "product name")
	description := fs.String("description", "", "product description")
	price := fs.Int64("price", 0, "price in cents")
	_ = fs.Parse(args)
	if *name == "" {
		log.Fatal("-name is required")
	}

	svc := services.NewCatalogService(rm.Products(db))
	p, err := svc.Add(ctx, *name, *description, *price)
	if err != nil {
		log.Fatalf("adding product: %v", err)
	}
	fmt.Printf("product created: %s\n", p.ID)
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: storectl <temp-password set|temp-password clear|product add> [flags]")
	os.Exit(2)
}
