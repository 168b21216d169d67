// Command seed creates a development user and registers a refresh token for
// it, standing in for the login flow when exercising POST /refresh locally.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"chat-app/session-service/internal"
	"chat-app/session-service/internal/config"
	"chat-app/session-service/internal/domain"
	"chat-app/session-service/internal/token"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

func main() {
	id := flag.String("id", "", "user id (generated when empty)")
	username := flag.String("username", "", "username")
	email := flag.String("email", "", "email")
	age := flag.String("age", config.GetString("SEED_AGE", "18_24"), "age bracket")
	flag.Parse()

	if err := run(*id, *username, *email, *age); err != nil {
		log.Fatal(err)
	}
}

func run(id, username, email, age string) error {
	if username == "" || email == "" {
		return errors.New("-username and -email are required")
	}

	cfg := config.LoadConfig()
	if cfg.IsProduction() {
		return errors.New("refusing to seed users in production")
	}
	if cfg.RegistryType == config.RegistryMemory {
		log.Println("REGISTRY_TYPE=memory: the token will not outlive this process")
	}

	password, err := readPassword()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), config.GetInt("BCRYPT_COST", bcrypt.DefaultCost))
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	ctx := context.Background()
	users, closeUsers, err := internal.OpenUserRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeUsers.Close()

	registry, closeRegistry, err := internal.OpenRegistry(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRegistry.Close()

	user := &domain.User{ID: id, Username: username, Email: email, Age: age, PasswordHash: string(hash)}
	if err := users.Create(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	signer := token.NewSigner(cfg.AccessSecret, cfg.RefreshSecret)
	refreshToken, err := signer.SignRefresh(domain.Identity{UserID: user.ID, Email: user.Email}, cfg.RefreshTokenTTL)
	if err != nil {
		return fmt.Errorf("sign refresh token: %w", err)
	}
	if err := registry.Add(ctx, refreshToken, cfg.RefreshTokenTTL); err != nil {
		return fmt.Errorf("register refresh token: %w", err)
	}

	fmt.Printf("user_id=%s\nrefresh_token=%s\n", user.ID, refreshToken)
	return nil
}

func readPassword() (string, error) {
	if password := os.Getenv("SEED_PASSWORD"); password != "" {
		return password, nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("SEED_PASSWORD is not set and stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimSpace(string(raw))
	if password == "" {
		return "", errors.New("empty password")
	}
	return password, nil
}
