package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"go.uber.org/zap"

	"github.com/wudi/proxyconf/builder"
	"github.com/wudi/proxyconf/internal/logging"
	"github.com/wudi/proxyconf/variables"
)

var version = "dev"

func main() {
	templatePath := flag.String("template", "", "Path to the raw configuration template (YAML or JSON)")
	contextPath := flag.String("context", "", "Path to the variable context file (flat YAML map)")
	format := flag.String("format", "yaml", "Output format: yaml or json")
	strict := flag.Bool("strict", false, "Fail when any placeholder stays unresolved")
	preview := flag.Bool("preview", false, "Report satisfiable and missing variables instead of compiling")
	validateOnly := flag.Bool("validate", false, "Parse the template and exit")
	logLevel := flag.String("log-level", "error", "Log level (debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("proxyconf %s\n", version)
		os.Exit(0)
	}

	if *templatePath == "" {
		fmt.Fprintln(os.Stderr, "missing required flag: -template")
		flag.Usage()
		os.Exit(2)
	}

	logger, err := logging.New(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logging.SetGlobal(logger)

	b := builder.New()
	data, err := os.ReadFile(*templatePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read template: %v\n", err)
		os.Exit(1)
	}
	if err := b.Load(data); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load template: %v\n", err)
		os.Exit(1)
	}

	if *validateOnly {
		stats := b.Stats()
		fmt.Printf("Template is valid: %d routers, %d services, %d middlewares\n",
			stats.Routers, stats.Services, stats.Middlewares)
		os.Exit(0)
	}

	ctx, err := loadContext(*contextPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load context: %v\n", err)
		os.Exit(1)
	}

	if *preview {
		report, err := b.Preview(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Preview failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("variables: %d\n", report.Total)
		fmt.Printf("found:     %s\n", joinOrNone(report.Found))
		fmt.Printf("missing:   %s\n", joinOrNone(report.Missing))
		if len(report.Missing) > 0 {
			os.Exit(1)
		}
		os.Exit(0)
	}

	var opts []builder.CompileOption
	if *strict {
		opts = append(opts, builder.WithStrict())
	}

	var out []byte
	switch *format {
	case "json":
		out, err = b.ToJSON(ctx, opts...)
	case "yaml":
		out, err = b.ToYAML(ctx, opts...)
	default:
		fmt.Fprintf(os.Stderr, "Unknown format: %s\n", *format)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed: %v\n", err)
		os.Exit(1)
	}

	logging.Debug("template compiled", zap.String("template", *templatePath))
	fmt.Println(string(out))
}

// loadContext reads a flat YAML map of variable values. An empty path
// yields an empty context.
func loadContext(path string) (variables.Context, error) {
	if path == "" {
		return variables.Context{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ctx := variables.Context{}
	if err := yaml.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("failed to parse context file: %w", err)
	}
	return ctx, nil
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}
