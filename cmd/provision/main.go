// Command provision seeds a user and an opening account. There is no
// self-service registration; operators run this against the database
// directly.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"

	"github.com/hardbank/hardbank/internal/cryptox"
	"github.com/hardbank/hardbank/internal/server/config"
	"github.com/hardbank/hardbank/internal/server/models"
	"github.com/hardbank/hardbank/internal/server/repositories/repomanager"
)

func main() {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	dsn := flag.String("d", cfg.DatabaseDSN, "database DSN")
	balance := flag.Int64("b", 0, "opening balance in minor units")
	flag.Parse()

	if err := run(*dsn, *balance, cfg.Argon2); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	fmt.Println("Success!")
}

func run(dsn string, balance int64, params cryptox.Argon2Params) error {
	if balance < 0 {
		return fmt.Errorf("opening balance must not be negative")
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("Enter user name")

	username, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return fmt.Errorf("user name must not be empty")
	}

	fmt.Println("Enter password")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}
	defer cryptox.WipeByteArray(password)
	if len(password) == 0 {
		return fmt.Errorf("password must not be empty")
	}

	ctx := context.Background()

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	salt := cryptox.GenerateRandByteArray(16)
	user, err := rm.Users(db).Create(ctx, &models.User{
		Username:     username,
		Salt:         salt,
		PasswordHash: cryptox.HashPassword(password, salt, params),
	})
	if err != nil {
		return fmt.Errorf("user create error: %w", err)
	}

	account, err := rm.Accounts(db).Create(ctx, &models.Account{
		OwnerUserID: user.ID,
		Balance:     balance,
	})
	if err != nil {
		return fmt.Errorf("account create error: %w", err)
	}

	fmt.Printf("user %s account %s balance %d\n", user.ID, account.ID, account.Balance)
	return nil
}
