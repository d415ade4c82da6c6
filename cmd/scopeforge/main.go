package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	scopeforge "github.com/ashgrove-dev/scopeforge"
	"github.com/ashgrove-dev/scopeforge/internal/core"
	"github.com/ashgrove-dev/scopeforge/internal/engine"
	"github.com/ashgrove-dev/scopeforge/internal/httpserver"
	"github.com/ashgrove-dev/scopeforge/internal/sandbox"
	"github.com/ashgrove-dev/scopeforge/internal/store"
)

var (
	scopeFlag      string
	excludeCSVFlag string
	includeFlag    []string
	excludeFlag    []string
	codeFlag       string
	timeoutMsFlag  int
	formatFlag     string
	htmlFileFlag   string
	timeoutFlag    time.Duration
	debugFlag      bool
	outputFileFlag string

	serveAddr     string
	serveCache    string
	serveCacheTTL time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scopeforge",
		Short: "scopeforge - scoped web content extraction",
		Long:  "scopeforge resolves a scope against a page's DOM and renders the result as HTML, Markdown, or text",
	}

	extractCmd := &cobra.Command{
		Use:   "extract [url]",
		Short: "Extract scoped content from a URL or local HTML file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExtract,
	}
	extractCmd.Flags().StringVarP(&scopeFlag, "scope", "s", "main", "Scope: main|full|auto|selector:<csv>|{json}")
	extractCmd.Flags().StringVarP(&excludeCSVFlag, "exclude", "x", "", "Exclude selector csv (only meaningful with selector:)")
	extractCmd.Flags().StringArrayVarP(&includeFlag, "include", "i", nil, "Include CSS selector (selector scope, repeatable; alternative to selector:<csv>)")
	extractCmd.Flags().StringArrayVar(&excludeFlag, "exclude-list", nil, "Exclude CSS selector (selector scope, repeatable; alternative to -x)")
	extractCmd.Flags().StringVar(&codeFlag, "code", "", "Function scope JS code")
	extractCmd.Flags().IntVar(&timeoutMsFlag, "function-timeout-ms", 0, "Function scope timeout in milliseconds")
	extractCmd.Flags().StringVarP(&formatFlag, "format", "f", "html", "Output format (html|markdown|text)")
	extractCmd.Flags().StringVar(&htmlFileFlag, "html-file", "", "Read HTML from a local file instead of fetching a URL")
	extractCmd.Flags().DurationVar(&timeoutFlag, "timeout", 30*time.Second, "HTTP fetch timeout")
	extractCmd.Flags().BoolVar(&debugFlag, "debug", false, "Print the resolved scope to stderr")
	extractCmd.Flags().StringVarP(&outputFileFlag, "output", "o", "", "Output file (default: stdout)")

	metaCmd := &cobra.Command{
		Use:   "meta [url]",
		Short: "Extract page metadata from a URL or local HTML file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMeta,
	}
	metaCmd.Flags().StringVar(&htmlFileFlag, "html-file", "", "Read HTML from a local file instead of fetching a URL")
	metaCmd.Flags().DurationVar(&timeoutFlag, "timeout", 30*time.Second, "HTTP fetch timeout")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP extraction service",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveCache, "cache-path", "", "Path to a sqlite cache file (empty disables caching)")
	serveCmd.Flags().DurationVar(&serveCacheTTL, "cache-ttl", 10*time.Minute, "Cache entry TTL")
	bindServeFlags(serveCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("scopeforge v0.1.0")
		},
	}

	rootCmd.AddCommand(extractCmd, metaCmd, serveCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bindServeFlags lets serve's flags be overridden by SCOPEFORGE_ environment
// variables, the way viper is used across the rest of the pack for
// environment-bound server configuration.
func bindServeFlags(cmd *cobra.Command) {
	v := viper.New()
	v.SetEnvPrefix("SCOPEFORGE")
	v.AutomaticEnv()
	_ = v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	_ = v.BindPFlag("cache-path", cmd.Flags().Lookup("cache-path"))
	_ = v.BindPFlag("cache-ttl", cmd.Flags().Lookup("cache-ttl"))

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		serveAddr = v.GetString("addr")
		serveCache = v.GetString("cache-path")
		if ttl := v.GetDuration("cache-ttl"); ttl > 0 {
			serveCacheTTL = ttl
		}
	}
}

// buildScope turns -s/--scope (main|full|auto|selector:<csv>|{json}) into
// a Scope via engine.ParseScopeArg. The bare "selector"/"function"
// keywords are a convenience for scripts that prefer repeatable
// -i/--exclude-list flags or a --code flag over inlining a selector: csv
// or a JSON literal.
func buildScope() (core.Scope, error) {
	switch scopeFlag {
	case "selector":
		return core.NewSelectorScope(includeFlag, excludeFlag), nil
	case "function":
		return core.NewFunctionScope(codeFlag, timeoutMsFlag), nil
	default:
		return engine.ParseScopeArg(scopeFlag, excludeCSVFlag)
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	scope, err := buildScope()
	if err != nil {
		return err
	}
	format, err := core.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	client := scopeforge.New(
		scopeforge.WithTimeout(timeoutFlag),
		scopeforge.WithFunctionRunner(sandbox.Runner{}),
	)

	ctx := context.Background()
	var result *core.ExtractionResult

	if htmlFileFlag != "" {
		data, err := os.ReadFile(htmlFileFlag)
		if err != nil {
			return err
		}
		source := ""
		if len(args) > 0 {
			source = args[0]
		}
		result, err = client.ExtractHTML(ctx, string(data), source, scope, format)
		if err != nil {
			return err
		}
	} else {
		if len(args) != 1 {
			return fmt.Errorf("extract requires a URL argument unless --html-file is set")
		}
		result, err = client.Extract(ctx, args[0], scope, format)
		if err != nil {
			return err
		}
	}

	if debugFlag {
		resJSON, err := json.Marshal(result.Resolution)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, string(resJSON))
	}

	return writeOutput([]byte(result.Content))
}

func runMeta(cmd *cobra.Command, args []string) error {
	client := scopeforge.New(scopeforge.WithTimeout(timeoutFlag))

	ctx := context.Background()
	var m *core.PageMeta
	var err error

	if htmlFileFlag != "" {
		data, readErr := os.ReadFile(htmlFileFlag)
		if readErr != nil {
			return readErr
		}
		m = client.MetaHTML(string(data))
	} else {
		if len(args) != 1 {
			return fmt.Errorf("meta requires a URL argument unless --html-file is set")
		}
		m, err = client.Meta(ctx, args[0])
		if err != nil {
			return err
		}
	}

	out, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(out)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	var opts []httpserver.Option
	opts = append(opts, httpserver.WithLogger(logger), httpserver.WithFunctionRunner(sandbox.Runner{}))

	if serveCache != "" {
		cache, err := store.Open(serveCache)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer cache.Close()
		opts = append(opts, httpserver.WithCache(cache, serveCacheTTL))
	}

	s := httpserver.New(opts...)
	logger.Info("scopeforge listening", "addr", serveAddr)
	return http.ListenAndServe(serveAddr, s.Router())
}

func writeOutput(data []byte) error {
	var w io.Writer = os.Stdout
	if outputFileFlag != "" {
		f, err := os.Create(outputFileFlag)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	_, err := w.Write(data)
	if err == nil && outputFileFlag == "" {
		fmt.Println()
	}
	return err
}
