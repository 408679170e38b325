package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/offerdoc"
	"github.com/fwojciec/offerdoc/goquery"
	"github.com/fwojciec/offerdoc/htmltomarkdown"
	offerhttp "github.com/fwojciec/offerdoc/http"
	offerslog "github.com/fwojciec/offerdoc/slog"
	"github.com/fwojciec/offerdoc/sqlite"
	"github.com/fwojciec/offerdoc/wkhtmltopdf"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Overrides --db when set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("offerdoc"),
		kong.Description("Edit offer templates locally and render them to PDF"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'offerdoc --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	dbPath := m.DBPath
	if dbPath == "" {
		dbPath = cli.DB
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set OFFERDOC_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	deps.DB = m.DB
	deps.Drafts = sqlite.NewDraftService(m.DB)
	deps.Variables = sqlite.NewVariableListService(m.DB)
	deps.Credentials = sqlite.NewCredentialService(m.DB)

	token := cli.Token
	if token == "" {
		token, err = deps.Credentials.FindToken(ctx)
		if err != nil && offerdoc.ErrorCode(err) != offerdoc.ENOTFOUND {
			return fmt.Errorf("failed to read stored token: %w", err)
		}
	}

	api := offerhttp.NewTemplateService(cli.APIURL, token)
	deps.Templates = offerslog.NewLoggingTemplateService(api, logger)
	deps.Pinger = api
	deps.TemplatesFor = func(token string) offerdoc.TemplateService {
		return offerslog.NewLoggingTemplateService(offerhttp.NewTemplateService(cli.APIURL, token), logger)
	}

	deps.Editor = offerslog.NewLoggingEditor(goquery.NewEditor(logger), logger)
	deps.Converter = htmltomarkdown.NewConverter()

	switch cmd {
	case "pdf":
		deps.Renderer = offerslog.NewLoggingRenderer(wkhtmltopdf.NewRenderer(cli.PDF.Wkhtmltopdf, logger), logger)
	case "serve":
		deps.Renderer = offerslog.NewLoggingRenderer(wkhtmltopdf.NewRenderer(cli.Serve.Wkhtmltopdf, logger), logger)
	}

	return kongCtx.Run(deps)
}
