// Command etiket evaluates template expressions from the command line.
//
// It exists for template authors debugging receipt layouts: feed it an
// expression and a YAML data context and it prints what the engine would
// render.
//
//	etiket eval 'price * quantity | currency' --context order.yaml
//	etiket eval "name ?? 'Guest'" --locale de
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"golang.org/x/text/language"

	etiket "github.com/etiket/etiket-go"
	"github.com/etiket/etiket-go/value"
)

// CLI is the top-level command-line interface.
type CLI struct {
	Eval EvalCmd `cmd:"" default:"withargs" help:"Evaluate an expression against a data context"`
}

// EvalCmd evaluates a single expression.
type EvalCmd struct {
	Expr    string `arg:"" help:"Expression text (without embedding delimiters)"`
	Context string `short:"c" type:"existingfile" help:"YAML file holding the data context"`
	Locale  string `short:"l" default:"en" help:"BCP 47 locale tag for filter formatting"`
}

// Run executes the eval command.
func (c *EvalCmd) Run() error {
	ctx := value.FromObject(nil)
	if c.Context != "" {
		raw, err := os.ReadFile(c.Context)
		if err != nil {
			return err
		}
		var data map[string]any
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return fmt.Errorf("context file: %w", err)
		}
		ctx = value.FromAny(data)
	}

	locale, err := language.Parse(c.Locale)
	if err != nil {
		return fmt.Errorf("locale %q: %w", c.Locale, err)
	}

	result, err := etiket.New().Evaluate(c.Expr, ctx, locale)
	if err != nil {
		return err
	}
	fmt.Println(result.String())
	return nil
}

func main() {
	var cli CLI
	ktx := kong.Parse(&cli,
		kong.Name("etiket"),
		kong.Description("Evaluate Etiket template expressions."),
		kong.UsageOnError(),
		kong.Vars{"version": etiket.Version},
	)
	if err := ktx.Run(); err != nil {
		slog.Error("eval failed", slog.Any("error", err))
		os.Exit(1)
	}
}
