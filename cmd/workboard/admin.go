package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/Strob0t/Workboard/internal/adapter/bcrypt"
	"github.com/Strob0t/Workboard/internal/adapter/jwt"
	wbnats "github.com/Strob0t/Workboard/internal/adapter/nats"
	"github.com/Strob0t/Workboard/internal/adapter/postgres"
	"github.com/Strob0t/Workboard/internal/config"
	"github.com/Strob0t/Workboard/internal/domain/user"
	"github.com/Strob0t/Workboard/internal/port/messagequeue"
	"github.com/Strob0t/Workboard/internal/service"
)

// runAdmin dispatches admin subcommands.
func runAdmin(args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" {
		printAdminHelp()
		return nil
	}

	switch args[0] {
	case "create-super-admin":
		return runAdminCreateSuperAdmin(args[1:])
	case "list-tenants":
		return runAdminListTenants(args[1:])
	case "migrate":
		return runAdminMigrate(args[1:])
	case "audit-tail":
		return runAdminAuditTail(args[1:])
	default:
		printAdminHelp()
		return fmt.Errorf("unknown admin command: %s", args[0])
	}
}

func printAdminHelp() {
	fmt.Fprintf(os.Stderr, `Usage: workboard admin <command> [options]

Commands:
  create-super-admin   Create the platform super admin
  list-tenants         List all tenants
  migrate              Show or roll back the schema version
  audit-tail           Stream mirrored audit events from NATS
  help                 Show this help message

Examples:
  workboard admin create-super-admin --email root@example.com
  workboard admin list-tenants
  workboard admin migrate --down 1
  workboard admin audit-tail --subject audit.task
`)
}

// cliPrincipal is the identity admin commands act as.
var cliPrincipal = &user.Principal{UserID: "cli", Role: user.RoleSuperAdmin}

type adminDeps struct {
	cfg     *config.Config
	auth    *service.AuthService
	tenants *service.TenantService
	cleanup func()
}

func loadAdminDeps(ctx context.Context) (*adminDeps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	store := postgres.NewStore(pool)
	hasher := bcrypt.New(cfg.Auth.BcryptCost)
	auditSvc := service.NewAuditService(store)
	return &adminDeps{
		cfg:     cfg,
		auth:    service.NewAuthService(store, hasher, jwt.New(cfg.Auth.JWTSecret, cfg.Auth.Issuer), cfg.Auth.TokenExpiry),
		tenants: service.NewTenantService(store, hasher, auditSvc),
		cleanup: pool.Close,
	}, nil
}

func runAdminCreateSuperAdmin(args []string) error {
	fs := flag.NewFlagSet("create-super-admin", flag.ContinueOnError)
	email := fs.String("email", "", "super admin email address (required)")
	name := fs.String("name", "", "display name")
	password := fs.String("password", "", "password (prompted if not provided)") //nolint:gosec // CLI flag
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		return errors.New("--email is required")
	}

	pass := *password
	if pass == "" {
		var err error
		pass, err = promptPassword("Password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		if pass != confirm {
			return errors.New("passwords do not match")
		}
	}

	ctx := context.Background()
	deps, err := loadAdminDeps(ctx)
	if err != nil {
		return err
	}
	defer deps.cleanup()

	created, err := deps.auth.SeedSuperAdmin(ctx, *email, pass, *name)
	if err != nil {
		return fmt.Errorf("create super admin: %w", err)
	}
	if !created {
		fmt.Fprintf(os.Stderr, "Super admin %s already exists\n", *email)
		return nil
	}
	fmt.Fprintf(os.Stderr, "Super admin created: %s\n", *email)
	return nil
}

func runAdminListTenants(args []string) error {
	fs := flag.NewFlagSet("list-tenants", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	deps, err := loadAdminDeps(ctx)
	if err != nil {
		return err
	}
	defer deps.cleanup()

	tenants, err := deps.tenants.List(ctx, cliPrincipal)
	if err != nil {
		return fmt.Errorf("list tenants: %w", err)
	}

	if len(tenants) == 0 {
		fmt.Println("No tenants found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tSUBDOMAIN\tNAME\tSTATUS\tPLAN\tMAX_USERS\tMAX_PROJECTS")
	for i := range tenants {
		t := &tenants[i]
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\n",
			t.ID, t.Subdomain, t.Name, t.Status, t.SubscriptionPlan, t.MaxUsers, t.MaxProjects)
	}
	return w.Flush()
}

func runAdminMigrate(args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	down := fs.Int("down", 0, "number of migrations to roll back")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()
	if *down > 0 {
		if err := postgres.RollbackMigrations(ctx, cfg.Postgres.DSN, *down); err != nil {
			return fmt.Errorf("rollback: %w", err)
		}
	}

	version, err := postgres.MigrationVersion(ctx, cfg.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("migration version: %w", err)
	}
	fmt.Printf("schema version: %d\n", version)
	return nil
}

func runAdminAuditTail(args []string) error {
	fs := flag.NewFlagSet("audit-tail", flag.ContinueOnError)
	subject := fs.String("subject", messagequeue.SubjectAuditAll, "subject filter")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.NATS.URL == "" {
		return errors.New("NATS_URL is not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	queue, err := wbnats.Connect(ctx, cfg.NATS.URL)
	if err != nil {
		return err
	}
	defer func() { _ = queue.Close() }()

	enc := json.NewEncoder(os.Stdout)
	cancel, err := queue.Subscribe(ctx, *subject, func(_ context.Context, _ string, data []byte) error {
		var ev messagequeue.AuditEventPayload
		if err := json.Unmarshal(data, &ev); err != nil {
			return fmt.Errorf("decode audit event: %w", err)
		}
		return enc.Encode(ev)
	})
	if err != nil {
		return err
	}
	defer cancel()

	<-ctx.Done()
	return nil
}

// promptPassword reads a password from the terminal without echoing.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin)) //nolint:unconvert // int conversion needed on some platforms
	fmt.Fprintln(os.Stderr)                         // newline after password input
	if err != nil {
		return "", err
	}
	return string(b), nil
}
