package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/application/dto"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/application/usecase"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/service"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/infrastructure/config"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/infrastructure/notify"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/infrastructure/panel"
	pgRepo "github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/infrastructure/persistence/postgres"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/pkg/auth"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/pkg/money"
	pkgpostgres "github.com/ggonevn2t4/vay-thong-minh-viet-sub001/pkg/postgres"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/pkg/tlsutil"
)

// Exit codes.
const (
	exitOK         = 0
	exitFailure    = 1
	exitUsage      = 2
	exitAdvisories = 3
)

var errUnknownCommand = errors.New("unknown command")

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	logger *slog.Logger

	// replace seeds the panel store; nil means the configured database.
	replace func(ctx context.Context, p *model.LenderPanel) error
}

func (c *cli) run(ctx context.Context, cmd string, args []string) (int, error) {
	switch cmd {
	case "validate":
		return c.validate(args)
	case "export":
		return c.export(args)
	case "import":
		return c.importPanel(ctx, args)
	case "evaluate":
		return c.evaluate(ctx, args)
	case "dev-certs":
		return c.devCerts(args)
	case "token":
		return c.token(args)
	default:
		return exitUsage, fmt.Errorf("%w %q", errUnknownCommand, cmd)
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// loadPanel reads path, or returns the built-in panel when path is empty.
func loadPanel(path string) (*model.LenderPanel, error) {
	if path == "" {
		return panel.Default(), nil
	}
	return panel.LoadFile(path)
}

func (c *cli) validate(args []string) (int, error) {
	fs := newFlagSet("validate")
	file := fs.String("file", "", "panel file (YAML or JSON); built-in panel when empty")
	strict := fs.Bool("strict", false, "fail when any tier gap or overlap is found")
	if err := fs.Parse(args); err != nil {
		return exitUsage, err
	}

	p, err := loadPanel(*file)
	if err != nil {
		return exitFailure, err
	}

	findings := p.Validate()
	fmt.Fprintf(c.stdout, "panel %s: %d lenders, %d findings\n", p.Version(), p.Len(), len(findings))
	for _, f := range findings {
		fmt.Fprintf(c.stdout, "  %s\n", f)
	}
	if *strict && len(findings) > 0 {
		return exitFailure, fmt.Errorf("%d panel findings", len(findings))
	}
	return exitOK, nil
}

func (c *cli) export(args []string) (int, error) {
	fs := newFlagSet("export")
	file := fs.String("file", "", "panel file to re-encode; built-in panel when empty")
	if err := fs.Parse(args); err != nil {
		return exitUsage, err
	}

	p, err := loadPanel(*file)
	if err != nil {
		return exitFailure, err
	}
	if err := panel.EncodeYAML(c.stdout, panel.FromPanel(p)); err != nil {
		return exitFailure, err
	}
	return exitOK, nil
}

func (c *cli) importPanel(ctx context.Context, args []string) (int, error) {
	fs := newFlagSet("import")
	file := fs.String("file", "", "panel file to import; built-in panel when empty")
	migrate := fs.Bool("migrate", true, "apply schema migrations first")
	if err := fs.Parse(args); err != nil {
		return exitUsage, err
	}

	p, err := loadPanel(*file)
	if err != nil {
		return exitFailure, err
	}

	replace := c.replace
	if replace == nil {
		cfg, err := config.Load()
		if err != nil {
			return exitFailure, err
		}
		pgCfg := pkgpostgres.Config{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			User:     cfg.DB.User,
			Password: cfg.DB.Password,
			Database: cfg.DB.Name,
			SSLMode:  cfg.DB.SSLMode,
			MaxConns: 2,
		}
		dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		pool, err := pkgpostgres.NewPool(dbCtx, pgCfg)
		if err != nil {
			return exitFailure, err
		}
		defer pool.Close()
		if *migrate {
			if err := pkgpostgres.RunMigrations(pgCfg.DSN(), pgRepo.Migrations, pgRepo.MigrationsDir); err != nil {
				return exitFailure, err
			}
		}
		replace = pgRepo.NewLenderPanelRepo(pool).Replace
	}

	if err := replace(ctx, p); err != nil {
		return exitFailure, err
	}
	c.logger.Info("lender panel imported", "panel_version", p.Version(), "lenders", p.Len())
	return exitOK, nil
}

func (c *cli) evaluate(ctx context.Context, args []string) (int, error) {
	fs := newFlagSet("evaluate")
	file := fs.String("file", "", "panel file; built-in panel when empty")
	currencyCode := fs.String("currency", "VND", "ISO 4217 currency for amounts")
	strict := fs.Bool("strict", false, "exit 3 when any advisory is raised")
	if err := fs.Parse(args); err != nil {
		return exitUsage, err
	}

	currency, err := money.NewCurrency(strings.ToUpper(*currencyCode))
	if err != nil {
		return exitUsage, err
	}
	p, err := loadPanel(*file)
	if err != nil {
		return exitFailure, err
	}

	var req dto.ApplicantRequest
	dec := json.NewDecoder(c.stdin)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return exitUsage, fmt.Errorf("decode applicant: %w", err)
	}

	collected := notify.NewCollector()
	engine := service.NewEngine(panel.NewStore(p), notify.Fanout{collected, notify.NewLogNotifier(c.logger)})
	schedules := usecase.NewBuildScheduleUseCase(engine, nil, nil, nil, currency, c.logger)
	warnings := usecase.NewCheckWarningsUseCase(engine, nil, c.logger)
	evaluate := usecase.NewEvaluateApplicantUseCase(engine, schedules, warnings, service.NewFeeCalculator(currency), nil, c.logger)

	resp, err := evaluate.Execute(ctx, req)
	if err != nil {
		return exitFailure, err
	}

	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return exitFailure, err
	}

	if *strict && len(collected.Advisories()) > 0 {
		return exitAdvisories, nil
	}
	return exitOK, nil
}

func (c *cli) devCerts(args []string) (int, error) {
	fs := newFlagSet("dev-certs")
	out := fs.String("out", "certs", "output directory")
	hosts := fs.String("hosts", "localhost,127.0.0.1", "comma-separated server hostnames and IPs")
	if err := fs.Parse(args); err != nil {
		return exitUsage, err
	}

	var list []string
	for _, h := range strings.Split(*hosts, ",") {
		if h = strings.TrimSpace(h); h != "" {
			list = append(list, h)
		}
	}
	paths, err := tlsutil.GenerateDevCertificates(list, *out)
	if err != nil {
		return exitFailure, err
	}
	fmt.Fprintf(c.stdout, "ca: %s\nserver cert: %s\nserver key: %s\n", paths.CACert, paths.ServerCert, paths.ServerKey)
	return exitOK, nil
}

func (c *cli) token(args []string) (int, error) {
	fs := newFlagSet("token")
	secret := fs.String("secret", "", "HMAC secret (ADMIN_JWT_SECRET)")
	keyFile := fs.String("private-key", "", "PEM RSA private key; overrides -secret")
	issuer := fs.String("issuer", "loanmatch", "token issuer (ADMIN_JWT_ISSUER)")
	subject := fs.String("subject", "panelctl", "token subject")
	ttl := fs.Duration("ttl", time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return exitUsage, err
	}

	cfg := auth.JWTConfig{Secret: *secret, Issuer: *issuer, Expiration: *ttl}
	if *keyFile != "" {
		pem, err := auth.LoadKeyFromFile(*keyFile)
		if err != nil {
			return exitFailure, err
		}
		cfg.PrivateKeyPEM = string(pem)
	}
	svc, err := auth.NewJWTService(cfg)
	if err != nil {
		return exitUsage, err
	}

	token, err := svc.GenerateToken(*subject, []string{auth.RolePanelAdmin})
	if err != nil {
		return exitFailure, err
	}
	fmt.Fprintln(c.stdout, token)
	return exitOK, nil
}
