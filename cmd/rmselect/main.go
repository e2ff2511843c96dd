package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"rmselect/internal/config"
	"rmselect/internal/debug"
	"rmselect/internal/rickmorty"
	"rmselect/internal/ui"
	"rmselect/internal/ui/theme"

	tea "github.com/charmbracelet/bubbletea"
)

const cacheOpenTimeout = 5 * time.Second

func main() {
	if err := config.Initialize(); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	versionFlag := flag.Bool("version", false, "Print version information and exit")
	debugFlag := flag.Bool("debug", false, "Write a debug log to ~/.rmselect/debug.log")
	maxSelectableFlag := flag.Int("max-selectable", config.GetInt(config.KeyMaxSelectable), "Maximum number of characters that can be selected (0 for no limit)")
	baseURLFlag := flag.String("base-url", config.GetString(config.KeyAPIBaseURL), "Character API base URL")
	noCacheFlag := flag.Bool("no-cache", !config.GetBool(config.KeyCacheEnabled), "Disable the on-disk page cache")
	cachePathFlag := flag.String("cache-path", config.GetString(config.KeyCachePath), "Path to the page cache database")
	themeFlag := flag.String("theme", config.GetString(config.KeyTheme), fmt.Sprintf("Color theme (%s)", strings.Join(theme.Names(), ", ")))
	outputFormatFlag := flag.String("output-format", config.GetString(config.KeyOutputFormat), "Description markdown style (rich, light, plain)")
	flag.Parse()

	if *versionFlag {
		printVersion()
		os.Exit(0)
	}

	visited := map[string]struct{}{}
	flag.CommandLine.Visit(func(f *flag.Flag) {
		visited[f.Name] = struct{}{}
	})

	runtime := computeRuntimeOptions(runtimeFlags{
		debug:         debugFlag,
		maxSelectable: maxSelectableFlag,
		baseURL:       baseURLFlag,
		noCache:       noCacheFlag,
		cachePath:     cachePathFlag,
		theme:         themeFlag,
		outputFormat:  outputFormatFlag,
	}, visited)

	if err := debug.Init(runtime.debug); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug log disabled: %v\n", err)
	}
	defer debug.Close()

	if runtime.theme != "" && !theme.Set(runtime.theme) {
		fmt.Fprintf(os.Stderr, "Warning: unknown theme %q, using %s\n", runtime.theme, theme.CurrentName())
	}

	source, closeSource, err := buildSource(runtime)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeSource()

	appCfg := ui.Config{
		Source:         source,
		MaxSelectable:  runtime.maxSelectable,
		MaxVisible:     config.GetInt(config.KeyMaxVisible),
		ScrollDebounce: config.GetDuration(config.KeyScrollDebounce),
		OutputFormat:   runtime.outputFormat,
		Version:        Version,
		SaveTheme:      config.SaveTheme,
	}

	started := time.Now()
	selection, err := runProgram(appCfg, ui.NewApp, func(app *ui.App) programRunner {
		return tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	printExitSummary(os.Stdout, ExitSummary{
		Version:       Version,
		StartTime:     started,
		MaxSelectable: runtime.maxSelectable,
		Selection:     selection,
	})
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*ui.App) programRunner

// runProgram builds the app, runs it to completion and returns what was
// selected.
func runProgram(cfg ui.Config, builder func(ui.Config) *ui.App, factory programFactory) ([]rickmorty.Character, error) {
	if builder == nil {
		return nil, fmt.Errorf("app builder is nil")
	}
	app := builder(cfg)
	if app == nil {
		return nil, fmt.Errorf("initialize UI: app is nil")
	}
	defer app.Close()
	if factory == nil {
		return nil, fmt.Errorf("program factory is nil")
	}
	prog := factory(app)
	if prog == nil {
		return nil, fmt.Errorf("program is nil")
	}
	if _, err := prog.Run(); err != nil {
		return nil, fmt.Errorf("run UI: %w", err)
	}
	return app.Selection(), nil
}

// buildSource returns the HTTP client, wrapped in the page cache unless
// caching is off. A cache that fails to open is logged and skipped.
func buildSource(runtime runtimeOptions) (rickmorty.Source, func(), error) {
	client, err := rickmorty.NewClient(runtime.baseURL, rickmorty.WithTimeout(config.GetDuration(config.KeyAPITimeout)))
	if err != nil {
		return nil, nil, fmt.Errorf("create API client: %w", err)
	}
	if !runtime.cacheEnabled {
		debug.Log("page cache disabled")
		return rickmorty.NewCachedSource(client, nil), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cacheOpenTimeout)
	defer cancel()
	cache, err := rickmorty.OpenCache(ctx, runtime.cachePath, config.GetDuration(config.KeyCacheTTL))
	if err != nil {
		debug.Logf("page cache unavailable: %v", err)
		return rickmorty.NewCachedSource(client, nil), func() {}, nil
	}
	if n, err := cache.Prune(ctx); err != nil {
		debug.Logf("prune page cache: %v", err)
	} else if n > 0 {
		debug.Logf("pruned %d expired pages", n)
	}
	closeCache := func() {
		if err := cache.Close(); err != nil {
			debug.Logf("close page cache: %v", err)
		}
	}
	return rickmorty.NewCachedSource(client, cache), closeCache, nil
}

type runtimeFlags struct {
	debug         *bool
	maxSelectable *int
	baseURL       *string
	noCache       *bool
	cachePath     *string
	theme         *string
	outputFormat  *string
}

type runtimeOptions struct {
	debug         bool
	maxSelectable int
	baseURL       string
	cacheEnabled  bool
	cachePath     string
	theme         string
	outputFormat  string
}

func computeRuntimeOptions(flags runtimeFlags, visited map[string]struct{}) runtimeOptions {
	debugEnabled := false
	if flagWasExplicitlySet("debug", visited) {
		debugEnabled = *flags.debug
	}

	maxSelectable := sanitizeMaxSelectable(config.GetInt(config.KeyMaxSelectable))
	if flagWasExplicitlySet("max-selectable", visited) {
		maxSelectable = sanitizeMaxSelectable(*flags.maxSelectable)
	}

	baseURL := strings.TrimSpace(config.GetString(config.KeyAPIBaseURL))
	if flagWasExplicitlySet("base-url", visited) {
		baseURL = strings.TrimSpace(*flags.baseURL)
	}

	cacheEnabled := config.GetBool(config.KeyCacheEnabled)
	if flagWasExplicitlySet("no-cache", visited) {
		cacheEnabled = !*flags.noCache
	}

	cachePath := strings.TrimSpace(config.GetString(config.KeyCachePath))
	if flagWasExplicitlySet("cache-path", visited) {
		cachePath = strings.TrimSpace(*flags.cachePath)
	}

	themeName := strings.TrimSpace(config.GetString(config.KeyTheme))
	if flagWasExplicitlySet("theme", visited) {
		themeName = strings.TrimSpace(*flags.theme)
	}

	outputFormat := strings.TrimSpace(config.GetString(config.KeyOutputFormat))
	if flagWasExplicitlySet("output-format", visited) {
		outputFormat = strings.TrimSpace(*flags.outputFormat)
	}

	return runtimeOptions{
		debug:         debugEnabled,
		maxSelectable: maxSelectable,
		baseURL:       baseURL,
		cacheEnabled:  cacheEnabled,
		cachePath:     cachePath,
		theme:         strings.ToLower(themeName),
		outputFormat:  outputFormat,
	}
}

func flagWasExplicitlySet(name string, visited map[string]struct{}) bool {
	if _, ok := visited[name]; ok {
		return true
	}
	f := flag.CommandLine.Lookup(name)
	if f == nil {
		return false
	}
	return f.Value.String() != f.DefValue
}

// Negative limits mean "no limit", same as zero.
func sanitizeMaxSelectable(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
