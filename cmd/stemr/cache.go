package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Kush-Singh-26/stemr/builder/cache"
	"github.com/Kush-Singh-26/stemr/builder/config"
)

// handleCacheCommand processes cache-related subcommands
func handleCacheCommand(args []string) int {
	if len(args) < 1 {
		printCacheUsage()
		return 1
	}

	subcommand := args[0]
	cfg, ok := loadConfig(args[1:])
	if !ok {
		return 1
	}

	switch subcommand {
	case "stats":
		return cacheStats(cfg)
	case "gc":
		dryRun := false
		for _, arg := range cfg.Args {
			if arg == "--dry-run" || arg == "-n" {
				dryRun = true
			}
		}
		return cacheGC(cfg, dryRun)
	case "verify":
		return cacheVerify(cfg)
	case "clear":
		return cacheClear(cfg)
	case "inspect":
		if len(cfg.Args) < 1 {
			fmt.Println("Usage: stemr cache inspect <path>")
			return 1
		}
		return cacheInspect(cfg, cfg.Args[0])
	default:
		fmt.Printf("Unknown cache subcommand: %s\n", subcommand)
		printCacheUsage()
		return 1
	}
}

func printCacheUsage() {
	fmt.Println("Usage: stemr cache <subcommand> [arguments]")
	fmt.Println("\nSubcommands:")
	fmt.Println("  stats          Show cache statistics")
	fmt.Println("  gc             Delete text blobs no document references")
	fmt.Println("  verify         Check cache integrity")
	fmt.Println("  clear          Delete all cache data")
	fmt.Println("  inspect <path> Show the cache entry for a corpus file")
	fmt.Println("\nFlags for gc:")
	fmt.Println("  --dry-run, -n  Show what would be deleted without deleting")
}

func openCache(cfg *config.Config) (*cache.Manager, bool) {
	// Cache commands run in production mode for durability
	cm, err := cache.Open(cfg.CacheDir, false)
	if err != nil {
		fmt.Printf("❌ Failed to open cache: %v\n", err)
		return nil, false
	}
	return cm, true
}

func formatTime(unix int64) string {
	if unix <= 0 {
		return "never"
	}
	t := time.Unix(unix, 0)
	return fmt.Sprintf("%s (%s)", t.Format(time.RFC3339), humanize.Time(t))
}

func cacheStats(cfg *config.Config) int {
	cm, ok := openCache(cfg)
	if !ok {
		return 1
	}
	defer func() { _ = cm.Close() }()

	stats, err := cm.Stats()
	if err != nil {
		fmt.Printf("❌ Failed to get stats: %v\n", err)
		return 1
	}

	fmt.Println("📊 Cache Statistics")
	fmt.Println("════════════════════════════════════════")
	fmt.Printf("Location:        %s\n", cm.Path())
	fmt.Printf("Schema Version:  %d\n", stats.SchemaVersion)
	fmt.Printf("Documents:       %d\n", stats.TotalDocs)
	fmt.Printf("Search Records:  %d\n", stats.TotalSearch)
	fmt.Printf("Text Store:      %s\n", humanize.Bytes(uint64(stats.StoreBytes)))
	fmt.Printf("Build Count:     %d\n", stats.BuildCount)
	fmt.Printf("Last Build:      %s\n", formatTime(stats.LastBuildTime))
	fmt.Printf("Last GC:         %s\n", formatTime(stats.LastGC))

	stale, err := cm.VerifyCacheID(cfg.Fingerprint())
	if err == nil && stale && stats.TotalDocs > 0 {
		fmt.Println("\n⚠️  Analyzer settings changed since the last build; the next index run re-analyzes everything.")
	}
	return 0
}

func cacheGC(cfg *config.Config, dryRun bool) int {
	cm, ok := openCache(cfg)
	if !ok {
		return 1
	}
	defer func() { _ = cm.Close() }()

	if dryRun {
		fmt.Println("🗑️  Running GC (dry run)...")
	} else {
		fmt.Println("🗑️  Running garbage collection...")
	}

	result, err := cm.RunGC(dryRun)
	if err != nil {
		fmt.Printf("❌ GC failed: %v\n", err)
		return 1
	}

	fmt.Println("════════════════════════════════════════")
	fmt.Printf("Scanned:    %d blobs\n", result.ScannedBlobs)
	fmt.Printf("Live:       %d blobs\n", result.LiveBlobs)
	fmt.Printf("Deleted:    %d blobs\n", result.DeletedBlobs)
	fmt.Printf("Duration:   %v\n", result.Duration)

	if dryRun {
		fmt.Println("\n(No changes made - dry run mode)")
	} else {
		fmt.Println("\n✅ GC complete")
	}
	return 0
}

func cacheVerify(cfg *config.Config) int {
	cm, ok := openCache(cfg)
	if !ok {
		return 1
	}
	defer func() { _ = cm.Close() }()

	fmt.Println("🔍 Verifying cache integrity...")

	problems, err := cm.Verify()
	if err != nil {
		fmt.Printf("❌ Verification failed: %v\n", err)
		return 1
	}

	if len(problems) == 0 {
		fmt.Println("✅ Cache is healthy - no issues found")
		return 0
	}
	fmt.Printf("⚠️  Found %d issues:\n", len(problems))
	for i, p := range problems {
		fmt.Printf("  %d. %s\n", i+1, p)
	}
	return 1
}

func cacheClear(cfg *config.Config) int {
	cm, ok := openCache(cfg)
	if !ok {
		return 1
	}

	fmt.Println("🗑️  Clearing all cache data...")

	if err := cm.Clear(); err != nil {
		fmt.Printf("❌ Failed to clear cache: %v\n", err)
		return 1
	}
	_ = cm.Close()

	fmt.Println("✅ Cache cleared. Run 'stemr index' to rebuild.")
	return 0
}

func cacheInspect(cfg *config.Config, path string) int {
	cm, ok := openCache(cfg)
	if !ok {
		return 1
	}
	defer func() { _ = cm.Close() }()

	doc, err := cm.GetDocByPath(path)
	if err != nil {
		fmt.Printf("❌ No cache entry found for %s: %v\n", path, err)
		return 1
	}

	fmt.Println("📄 Cache Entry")
	fmt.Println("════════════════════════════════════════")
	fmt.Printf("DocID:        %s\n", doc.DocID)
	fmt.Printf("Path:         %s\n", doc.Path)
	fmt.Printf("Title:        %s\n", doc.Title)
	fmt.Printf("ModTime:      %s\n", formatTime(doc.ModTime))
	fmt.Printf("IndexedAt:    %s\n", formatTime(doc.IndexedAt))
	fmt.Printf("ContentHash:  %s\n", truncateHash(doc.ContentHash))
	fmt.Printf("TextHash:     %s\n", truncateHash(doc.TextHash))
	fmt.Printf("Tags:         %v\n", doc.Tags)
	fmt.Printf("WordCount:    %d\n", doc.WordCount)

	if rec, err := cm.GetSearchRecord(doc.DocID); err == nil {
		fmt.Printf("Terms:        %d distinct, %d total\n", len(rec.WordFreqs), rec.DocLen)
	}
	return 0
}

func truncateHash(hash string) string {
	if len(hash) > 16 {
		return hash[:8] + "..." + hash[len(hash)-8:]
	}
	return hash
}
