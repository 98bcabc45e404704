// Command createadmin provisions an admin account. Admins cannot register
// through the API.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/vk-smartminds/practice-platform/internal/app"
	"github.com/vk-smartminds/practice-platform/internal/config"
	"github.com/vk-smartminds/practice-platform/internal/database"
	"github.com/vk-smartminds/practice-platform/internal/dto"
	"github.com/vk-smartminds/practice-platform/internal/service"
)

var readPasswordFunc = term.ReadPassword

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()

	if err := run(os.Args[1:], os.Stdin, os.Stdout, logger); err != nil {
		logger.Error().Err(err).Msg("admin not created")
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer, logger zerolog.Logger) error {
	flags := flag.NewFlagSet("createadmin", flag.ContinueOnError)
	name := flags.String("name", "", "admin display name")
	email := flags.String("email", "", "admin email address")
	password := flags.String("password", "", "admin password; prompted when omitted")
	if err := flags.Parse(args); err != nil {
		return err
	}

	req, err := collect(dto.AdminCreateRequest{Name: *name, Email: *email, Password: *password}, bufio.NewReader(stdin), stdout)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	services := app.NewServices(app.Options{Config: cfg, DB: db, Logger: logger})
	admin, err := services.Auth.CreateAdmin(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicate) {
			return fmt.Errorf("an admin with email %s already exists", req.Email)
		}
		return err
	}

	fmt.Fprintf(stdout, "admin %s <%s> created with id %d\n", admin.Name, admin.Email, admin.ID)
	return nil
}

// collect prompts for any field not given on the command line.
func collect(req dto.AdminCreateRequest, reader *bufio.Reader, stdout io.Writer) (dto.AdminCreateRequest, error) {
	var err error
	if strings.TrimSpace(req.Name) == "" {
		if req.Name, err = prompt(reader, stdout, "Name: "); err != nil {
			return req, err
		}
	}
	if strings.TrimSpace(req.Email) == "" {
		if req.Email, err = prompt(reader, stdout, "Email: "); err != nil {
			return req, err
		}
	}
	if req.Password == "" {
		fmt.Fprint(stdout, "Password: ")
		raw, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(stdout)
		if err != nil {
			return req, err
		}
		req.Password = string(raw)
	}
	return req, nil
}

func prompt(reader *bufio.Reader, stdout io.Writer, label string) (string, error) {
	fmt.Fprint(stdout, label)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
