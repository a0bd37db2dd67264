// Command admin creates a user account from the terminal, useful for seeding
// a fresh deployment without going through the HTTP API.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"

	"github.com/inkwell-blog/inkwell/internal/server/auth"
	"github.com/inkwell-blog/inkwell/internal/server/config"
	"github.com/inkwell-blog/inkwell/internal/server/models"
	"github.com/inkwell-blog/inkwell/internal/server/repositories/repomanager"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("Enter username")
	username, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("%v", err)
	}
	username = strings.TrimSpace(username)

	fmt.Println("Enter email")
	email, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("%v", err)
	}
	email = strings.TrimSpace(email)

	fmt.Println("Enter password")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		log.Fatalf("%v", err)
	}

	hash, err := auth.HashPassword(string(password), cfg.BcryptCost)
	if err != nil {
		log.Fatalf("%v", err)
	}

	user, err := rm.Users(db).Create(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		log.Fatalf("error creating user: %v", err)
	}

	fmt.Printf("Success! Created user %s (%s)\n", user.Username, user.ID)
}
