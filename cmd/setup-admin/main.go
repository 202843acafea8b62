// Command setup-admin promotes an existing user to the admin role.
//
//	setup-admin user@example.com
//
// The user must have signed in at least once so the account exists.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"

	"github.com/hemloeth/attendance/internal/config"
	"github.com/hemloeth/attendance/internal/domain/user"
	"github.com/hemloeth/attendance/internal/pkg/database"
	"github.com/hemloeth/attendance/internal/pkg/validator"
	"github.com/hemloeth/attendance/internal/repository/postgresql"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: setup-admin <email>")
		os.Exit(1)
	}
	email := os.Args[1]
	if !validator.IsValidEmail(email) {
		log.Fatalf("invalid email address: %s", email)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)

	ctx := context.Background()
	if err := userRepo.UpdateRole(ctx, email, user.RoleAdmin); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Fatalf("no user found for %s; they must sign in once first", email)
		}
		log.Fatal("Error updating role: ", err)
	}

	fmt.Printf("%s is now an admin\n", email)
}
