package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/Kush-Singh-26/stemr/builder/config"
	"github.com/Kush-Singh-26/stemr/builder/generators"
	"github.com/Kush-Singh-26/stemr/builder/models"
	"github.com/Kush-Singh-26/stemr/builder/run"
	"github.com/Kush-Singh-26/stemr/builder/search"
	"github.com/Kush-Singh-26/stemr/internal/bench"
	"github.com/Kush-Singh-26/stemr/internal/clean"
	"github.com/Kush-Singh-26/stemr/internal/logging"
	"github.com/Kush-Singh-26/stemr/internal/server"
	"github.com/Kush-Singh-26/stemr/internal/verify"
	"github.com/Kush-Singh-26/stemr/porter2"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var code int
	switch command {
	case "stem":
		code = runStem(args, os.Stdin, os.Stdout)
	case "verify":
		code = runVerify(ctx, args)
	case "bench":
		code = runBench(ctx, args)
	case "index":
		code = runIndex(ctx, args)
	case "search":
		code = runSearch(args)
	case "serve":
		code = runServe(ctx, args)
	case "cache":
		code = handleCacheCommand(args)
	case "clean":
		code = runClean(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		code = 1
	}
	stop()
	os.Exit(code)
}

func printUsage() {
	fmt.Println("Usage: stemr <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  stem [-v] [words...]             Print the Porter2 stem of each word (stdin if none)")
	fmt.Println("  verify <input> <output>          Check stems against parallel fixture files")
	fmt.Println("  verify -vocab <file>             Check stems against a \"word stem\" vocabulary")
	fmt.Println("  bench [-rounds n] <words>        Time stemming a word list")
	fmt.Println("  index                            Build search.bin from the corpus")
	fmt.Println("  search <query>                   Query search.bin")
	fmt.Println("  serve                            Start the HTTP API")
	fmt.Println("  cache <stats|gc|verify|clear>    Inspect or reset the analysis cache")
	fmt.Println("  clean [-cache]                   Remove search.bin (and the cache)")
	fmt.Println("  help                             Show this help message")
	fmt.Println("\nFlags for index, search and serve:")
	fmt.Println("  -config <file>   Config file (default stemr.yaml)")
	fmt.Println("  -corpus <dir>    Documents to index")
	fmt.Println("  -output <dir>    Where search.bin is written")
	fmt.Println("  -addr <host:port> Listen address for serve")
	fmt.Println("  -watch           Re-index on corpus changes (serve)")
	fmt.Println("  -no-stem, -no-stopwords, -force, -log-level <level>")
}

// loadConfig parses flags and stemr.yaml, reporting a broken file
func loadConfig(args []string) (*config.Config, bool) {
	cfg := config.Load(args)
	if cfg.LoadErr != nil {
		fmt.Printf("❌ Config error: %v\n", cfg.LoadErr)
		return nil, false
	}
	return cfg, true
}

func newLogger(cfg *config.Config) (*zap.Logger, bool) {
	logger, err := logging.Setup(cfg.Log)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return nil, false
	}
	return logger, true
}

func runStem(args []string, stdin io.Reader, stdout io.Writer) int {
	fs := flag.NewFlagSet("stem", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Print \"word -> stem\"")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	w := bufio.NewWriter(stdout)
	defer func() { _ = w.Flush() }()

	emit := func(word string) {
		stem := porter2.Stem(strings.ToLower(word))
		if *verbose {
			_, _ = fmt.Fprintf(w, "%s -> %s\n", word, stem)
		} else {
			_, _ = fmt.Fprintln(w, stem)
		}
	}

	if fs.NArg() > 0 {
		for _, word := range fs.Args() {
			emit(word)
		}
		return 0
	}

	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		emit(strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		_ = w.Flush()
		fmt.Fprintf(os.Stderr, "❌ read stdin: %v\n", err)
		return 1
	}
	return 0
}

func runVerify(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	vocab := fs.String("vocab", "", "Two-column vocabulary file")
	limit := fs.Int("limit", 20, "Maximum mismatches to print")
	workers := fs.Int("workers", 0, "Worker goroutines (0 = NumCPU)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	osFs := afero.NewOsFs()
	var (
		res *verify.Result
		err error
	)
	switch {
	case *vocab != "":
		res, err = verify.Vocabulary(ctx, osFs, *vocab, *workers)
	case fs.NArg() == 2:
		res, err = verify.Parallel(ctx, osFs, fs.Arg(0), fs.Arg(1), *workers)
	default:
		fmt.Println("Usage: stemr verify <input> <output> | stemr verify -vocab <file>")
		return 2
	}
	if err != nil {
		fmt.Printf("❌ Verify failed: %v\n", err)
		return 1
	}

	if res.OK() {
		fmt.Printf("✅ %d words verified\n", res.Checked)
		return 0
	}

	fmt.Printf("❌ %d of %d words mismatched\n", len(res.Mismatches), res.Checked)
	for i, m := range res.Mismatches {
		if i == *limit {
			fmt.Printf("   ... and %d more\n", len(res.Mismatches)-*limit)
			break
		}
		fmt.Printf("   line %d: %q -> %q, want %q\n", m.Line, m.Word, m.Got, m.Want)
	}
	return 1
}

func runBench(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	rounds := fs.Int("rounds", bench.DefaultRounds, "Passes over the word list")
	parallel := fs.Bool("parallel", false, "Stem each pass on a worker pool")
	workers := fs.Int("workers", 0, "Worker goroutines for -parallel (0 = NumCPU)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Println("Usage: stemr bench [-rounds n] [-parallel] <wordlist>")
		return 2
	}

	report, err := bench.RunFile(ctx, afero.NewOsFs(), fs.Arg(0), bench.Options{
		Rounds:   *rounds,
		Parallel: *parallel,
		Workers:  *workers,
	})
	if err != nil {
		fmt.Printf("❌ Benchmark failed: %v\n", err)
		return 1
	}
	fmt.Println(report)
	return 0
}

func runIndex(ctx context.Context, args []string) int {
	cfg, ok := loadConfig(args)
	if !ok {
		return 1
	}
	logger, ok := newLogger(cfg)
	if !ok {
		return 1
	}
	defer func() { _ = logger.Sync() }()

	b, err := run.NewBuilder(cfg, logger)
	if err != nil {
		fmt.Printf("❌ Failed to open cache: %v\n", err)
		return 1
	}
	defer func() { _ = b.Close() }()

	fmt.Printf("🔨 Indexing %s...\n", cfg.CorpusDir)
	_, m, err := b.Build(ctx)
	if err != nil {
		fmt.Printf("❌ Index failed: %v\n", err)
		return 1
	}
	m.Print()
	if skipped := m.DocsSkipped.Load(); skipped > 0 {
		fmt.Printf("⚠️  %d documents skipped (see log)\n", skipped)
	}
	fmt.Printf("✅ Wrote %s\n", cfg.SnapshotPath())
	return 0
}

func loadIndex(cfg *config.Config) (*models.SearchIndex, error) {
	return generators.LoadSnapshot(afero.NewOsFs(), cfg.SnapshotPath())
}

func runSearch(args []string) int {
	cfg, ok := loadConfig(args)
	if !ok {
		return 1
	}
	query := strings.Join(cfg.Args, " ")
	if strings.TrimSpace(query) == "" {
		fmt.Println("Usage: stemr search [flags] <query>")
		return 2
	}
	search.ConfigureStemCache(cfg.StemCacheTTL, cfg.StemCacheSize)

	index, err := loadIndex(cfg)
	if err != nil {
		fmt.Printf("❌ %v\n   Run 'stemr index' first.\n", err)
		return 1
	}

	results := search.PerformSearch(index, query, cfg.SearchOptions())
	if len(results) == 0 {
		fmt.Printf("🔍 No results for %q\n", query)
		return 0
	}
	fmt.Printf("🔍 %d results for %q\n\n", len(results), query)
	for i, r := range results {
		fmt.Printf("%2d. %s (%s)  score %.2f\n", i+1, r.Title, r.Path, r.Score)
		if len(r.Tags) > 0 {
			fmt.Printf("    tags: %s\n", strings.Join(r.Tags, ", "))
		}
		if r.Snippet != "" {
			fmt.Printf("    %s\n", r.Snippet)
		}
	}
	return 0
}

func runServe(ctx context.Context, args []string) int {
	cfg, ok := loadConfig(args)
	if !ok {
		return 1
	}
	logger, ok := newLogger(cfg)
	if !ok {
		return 1
	}
	defer func() { _ = logger.Sync() }()
	search.ConfigureStemCache(cfg.StemCacheTTL, cfg.StemCacheSize)

	index, err := loadIndex(cfg)
	if err != nil {
		logger.Warn("no search snapshot loaded", zap.Error(err))
	}

	srv := server.New(cfg, logger, index)
	if cfg.Server.Watch || index == nil {
		b, err := run.NewBuilder(cfg, logger)
		if err != nil {
			logger.Error("failed to open cache", zap.Error(err))
			return 1
		}
		defer func() { _ = b.Close() }()

		if index == nil {
			built, _, err := b.Build(ctx)
			if err != nil {
				logger.Error("initial index build failed", zap.Error(err))
				return 1
			}
			srv.SetIndex(built)
		}
		srv.WithBuilder(b)
	}

	fmt.Printf("🌐 Serving on http://%s\n", cfg.Server.Addr)
	if cfg.Server.Watch {
		fmt.Printf("   (Re-indexing on changes under %s)\n", cfg.CorpusDir)
	}
	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return 1
	}
	fmt.Println("✅ Server stopped.")
	return 0
}

func runClean(args []string) int {
	fs := flag.NewFlagSet("clean", flag.ContinueOnError)
	withCache := fs.Bool("cache", false, "Also remove the analysis cache")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	cfg, ok := loadConfig(fs.Args())
	if !ok {
		return 1
	}

	if _, err := clean.Run(afero.NewOsFs(), cfg, clean.Options{Cache: *withCache}); err != nil {
		fmt.Printf("❌ Clean failed: %v\n", err)
		return 1
	}
	return 0
}
