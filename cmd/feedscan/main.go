package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SchwabischesBauernbrot/firefish"
	"github.com/SchwabischesBauernbrot/firefish/config"
	"github.com/SchwabischesBauernbrot/firefish/feed"
	"github.com/SchwabischesBauernbrot/firefish/feedstore/ddb"
	"github.com/SchwabischesBauernbrot/firefish/storagemodels"
)

var (
	versionFlag  = flag.Bool("version", false, "Show version information")
	vFlag        = flag.Bool("v", false, "Show version information (short)")
	settingsFlag = flag.String("settings", "", "Path to the YAML settings file")
	kindFlag     = flag.String("kind", "global", "Feed kind to scan")
	viewerFlag   = flag.String("viewer", "", "Viewer user id (empty for anonymous)")
	scopeFlag    = flag.String("scope", "", "Scoping id (user/channel/note/list) for scoped kinds")
	limitFlag    = flag.Int("limit", 20, "Page size (1..100)")
	timeoutFlag  = flag.Duration("timeout", 10*time.Second, "Wall-clock budget for the scan")
)

// noPredicates serves empty predicate sets; feedscan is a read-only probe
// with no viewer-specific state of its own.
type noPredicates struct{}

func (noPredicates) FollowingsOf(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}
func (noPredicates) ChannelFollowingsOf(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}
func (noPredicates) MutedUsersOf(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}
func (noPredicates) MutedInstancesOf(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}
func (noPredicates) MutePatternsOf(ctx context.Context, userID string) ([]storagemodels.MutePattern, error) {
	return nil, nil
}
func (noPredicates) BlockersOf(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}
func (noPredicates) BlockeesOf(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}
func (noPredicates) RenoteMutedOf(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}
func (noPredicates) ListMembersOf(ctx context.Context, listID string) ([]string, error) {
	return nil, nil
}

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := firefish.GetVersionInfo()
		fmt.Printf("feedscan version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(*settingsFlag)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	client, err := ddb.NewClient(cfg.AWSAccessKey, cfg.AWSSecretKey, cfg.AWSRegion)
	if err != nil {
		logger.Error("failed to create DynamoDB client", "error", err)
		os.Exit(1)
	}

	store := ddb.NewFeedStore(client, cfg.FeedTable)
	kv := ddb.NewKVStore(client, cfg.CacheTable)

	settings := feed.Settings{
		MaxPartitions:  cfg.Engine.MaxPartitions,
		FetchLimit:     cfg.Engine.FetchLimit,
		PredicateTTL:   cfg.Engine.PredicateTTL.Std(),
		FreshTTL:       cfg.Engine.FreshTTL.Std(),
		MutePatternTTL: cfg.Engine.MutePatternTTL.Std(),
	}
	engine := feed.NewEngine(store, kv, noPredicates{}, settings, logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	rows, err := engine.Timeline(ctx, feed.Kind(*kindFlag), *viewerFlag, feed.PageParams{
		Limit:               *limitFlag,
		Scope:               *scopeFlag,
		IncludeLocalRenotes: true,
	})
	if err != nil {
		logger.Error("timeline scan failed", "error", err)
		os.Exit(1)
	}

	for _, row := range rows {
		fmt.Printf("%s\t%s\t%s\n", row.CreatedAt().Format(time.RFC3339), row.Origin, row.ID())
	}
	fmt.Printf("%d rows\n", len(rows))
}
