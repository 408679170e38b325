package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/offerdoc"
	offerhttp "github.com/fwojciec/offerdoc/http"
	"github.com/fwojciec/offerdoc/sqlite"
)

// Pinger checks connectivity to the remote API.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx          context.Context
	Stdout       io.Writer
	Stderr       io.Writer
	Logger       *slog.Logger
	DB           *sqlite.DB
	Templates    offerdoc.TemplateService
	TemplatesFor offerhttp.TemplateServiceFunc
	Pinger       Pinger
	Drafts       offerdoc.DraftService
	Variables    offerdoc.VariableListService
	Credentials  offerdoc.CredentialService
	Editor       offerdoc.StructureEditor
	Converter    offerdoc.Converter
	Renderer     offerdoc.Renderer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `name:"db" env:"OFFERDOC_DB" default:"~/.offerdoc/offerdoc.db" type:"path" help:"Local workspace database"`
	APIURL  string `name:"api-url" env:"OFFERDOC_API_URL" default:"https://api.kpulse.fr/k3-geosquare" help:"Template API base URL"`
	Token   string `env:"OFFERDOC_TOKEN" help:"API token (defaults to the token saved by login)"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Login         LoginCmd         `cmd:"" help:"Save an API token"`
	Logout        LogoutCmd        `cmd:"" help:"Forget the saved API token"`
	Ping          PingCmd          `cmd:"" help:"Test the connection to the API"`
	List          ListCmd          `cmd:"" help:"List remote templates"`
	Pull          PullCmd          `cmd:"" help:"Download templates into local drafts"`
	Drafts        DraftsCmd        `cmd:"" help:"List local drafts"`
	Show          ShowCmd          `cmd:"" help:"Print a draft"`
	Outline       OutlineCmd       `cmd:"" help:"List the headings of a draft"`
	RemoveSection RemoveSectionCmd `cmd:"" name:"remove-section" help:"Remove sections by heading index"`
	Tables        TablesCmd        `cmd:"" help:"List the tables of a draft"`
	RemoveTable   RemoveTableCmd   `cmd:"" name:"remove-table" help:"Remove a table by index"`
	Images        ImagesCmd        `cmd:"" help:"List the embedded images of a draft"`
	ReplaceImage  ReplaceImageCmd  `cmd:"" name:"replace-image" help:"Replace an embedded image with a file"`
	RotateImage   RotateImageCmd   `cmd:"" name:"rotate-image" help:"Rotate an embedded image clockwise"`
	Replace       ReplaceCmd       `cmd:"" help:"Search and replace text in drafts"`
	Suggest       SuggestCmd       `cmd:"" help:"Show or apply replacement suggestions"`
	Vars          VarsCmd          `cmd:"" help:"Manage variable lists"`
	Style         StyleCmd         `cmd:"" help:"Show or edit the CSS of a draft"`
	Margins       MarginsCmd       `cmd:"" help:"Show or edit the page margins of a draft"`
	Push          PushCmd          `cmd:"" help:"Upload drafts to the API"`
	PDF           PDFCmd           `cmd:"" name:"pdf" help:"Render a draft to PDF"`
	Serve         ServeCmd         `cmd:"" help:"Run the HTTP service"`
}

// LoginCmd is the "login" subcommand.
type LoginCmd struct {
	Token string `arg:"" help:"API token"`
}

// LogoutCmd is the "logout" subcommand.
type LogoutCmd struct{}

// PingCmd is the "ping" subcommand.
type PingCmd struct{}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Search  string `short:"s" help:"Filter templates by name"`
	Page    int    `default:"1" help:"Page number"`
	PerPage int    `name:"per-page" default:"10" help:"Templates per page"`
}

// PullCmd is the "pull" subcommand.
type PullCmd struct {
	IDs   []string `arg:"" optional:"" name:"id" help:"Template IDs"`
	All   bool     `short:"a" help:"Pull every template"`
	Force bool     `short:"f" help:"Overwrite drafts with unpushed changes"`
}

// DraftsCmd is the "drafts" subcommand.
type DraftsCmd struct {
	Modified bool `short:"m" help:"Only show drafts with unpushed changes"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID       string `arg:"" help:"Template ID"`
	Part     string `enum:"content,header,footer" default:"content" help:"Part to print (content, header, footer)"`
	Markdown bool   `help:"Print as Markdown"`
}

// OutlineCmd is the "outline" subcommand.
type OutlineCmd struct {
	ID string `arg:"" help:"Template ID"`
}

// RemoveSectionCmd is the "remove-section" subcommand.
type RemoveSectionCmd struct {
	ID      string `arg:"" help:"Template ID"`
	Indexes []int  `arg:"" name:"index" help:"Heading indexes as printed by outline"`
}

// TablesCmd is the "tables" subcommand.
type TablesCmd struct {
	ID string `arg:"" help:"Template ID"`
}

// RemoveTableCmd is the "remove-table" subcommand.
type RemoveTableCmd struct {
	ID    string `arg:"" help:"Template ID"`
	Index int    `arg:"" help:"Table index as printed by tables"`
}

// ImagesCmd is the "images" subcommand.
type ImagesCmd struct {
	ID string `arg:"" help:"Template ID"`
}

// ReplaceImageCmd is the "replace-image" subcommand.
type ReplaceImageCmd struct {
	ID    string `arg:"" help:"Template ID"`
	Index int    `arg:"" help:"Image index as printed by images"`
	File  string `arg:"" type:"existingfile" help:"Replacement image file"`
}

// RotateImageCmd is the "rotate-image" subcommand.
type RotateImageCmd struct {
	ID    string `arg:"" help:"Template ID"`
	Index int    `arg:"" help:"Image index as printed by images"`
}

// ReplaceCmd is the "replace" subcommand.
type ReplaceCmd struct {
	Term        string   `arg:"" help:"Text to search for"`
	Replacement string   `arg:"" help:"Replacement text"`
	IDs         []string `arg:"" optional:"" name:"id" help:"Template IDs (default: all drafts)"`
	MatchCase   bool     `name:"match-case" help:"Match case"`
	WholeWord   bool     `name:"whole-word" help:"Match whole words only"`
}

// SuggestCmd is the "suggest" subcommand.
type SuggestCmd struct {
	IDs   []string `arg:"" optional:"" name:"id" help:"Template IDs (default: all drafts)"`
	Apply bool     `help:"Apply the suggestions"`
}

// VarsCmd groups the "vars" subcommands.
type VarsCmd struct {
	List   VarsListCmd   `cmd:"" help:"List variable lists"`
	Set    VarsSetCmd    `cmd:"" help:"Set a variable, creating the list if needed"`
	Apply  VarsApplyCmd  `cmd:"" help:"Replace [KEY] placeholders in drafts"`
	Delete VarsDeleteCmd `cmd:"" help:"Delete a variable list"`
}

// VarsListCmd is the "vars list" subcommand.
type VarsListCmd struct{}

// VarsSetCmd is the "vars set" subcommand.
type VarsSetCmd struct {
	List  string `arg:"" help:"Variable list name"`
	Key   string `arg:"" help:"Variable key"`
	Value string `arg:"" help:"Variable value"`
}

// VarsApplyCmd is the "vars apply" subcommand.
type VarsApplyCmd struct {
	List string   `arg:"" help:"Variable list name"`
	IDs  []string `arg:"" optional:"" name:"id" help:"Template IDs (default: all drafts)"`
}

// VarsDeleteCmd is the "vars delete" subcommand.
type VarsDeleteCmd struct {
	List string `arg:"" help:"Variable list name"`
}

// StyleCmd is the "style" subcommand.
type StyleCmd struct {
	ID       string `arg:"" help:"Template ID"`
	File     string `xor:"action" type:"existingfile" help:"Replace the CSS with a file"`
	Format   bool   `xor:"action" help:"Pretty-print the CSS"`
	Minify   bool   `xor:"action" help:"Minify the CSS"`
	Validate bool   `xor:"action" help:"Check the CSS for syntax problems"`
}

// MarginsCmd is the "margins" subcommand.
type MarginsCmd struct {
	ID     string `arg:"" help:"Template ID"`
	Top    string `help:"Top margin (e.g. 25mm)"`
	Right  string `help:"Right margin"`
	Bottom string `help:"Bottom margin"`
	Left   string `help:"Left margin"`
}

// PushCmd is the "push" subcommand.
type PushCmd struct {
	IDs         []string `arg:"" optional:"" name:"id" help:"Template IDs (default: all modified drafts)"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent upload limit"`
}

// PDFCmd is the "pdf" subcommand.
type PDFCmd struct {
	ID          string `arg:"" help:"Template ID"`
	Output      string `short:"o" required:"" type:"path" help:"Output PDF file"`
	Vars        string `help:"Apply a variable list before rendering"`
	Wkhtmltopdf string `env:"OFFERDOC_WKHTMLTOPDF" default:"wkhtmltopdf" help:"wkhtmltopdf binary"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr        string `env:"OFFERDOC_ADDR" default:":8080" help:"Listen address"`
	MaxBody     int64  `name:"max-body" default:"104857600" help:"Maximum request body size in bytes"`
	Wkhtmltopdf string `env:"OFFERDOC_WKHTMLTOPDF" default:"wkhtmltopdf" help:"wkhtmltopdf binary"`
}

// fail prints err to stderr and returns it.
func fail(deps *Dependencies, err error) error {
	fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
	return err
}

// errorMessage returns the message of an application error, or the full
// error text otherwise.
func errorMessage(err error) string {
	var e *offerdoc.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
