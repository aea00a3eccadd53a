package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"
	_ "time/tzdata" // cron time zones on hosts without zoneinfo

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/redis/go-redis/v9"

	"github.com/umputun/aidigest/pkg/config"
	"github.com/umputun/aidigest/pkg/content"
	"github.com/umputun/aidigest/pkg/domain"
	"github.com/umputun/aidigest/pkg/llm"
	"github.com/umputun/aidigest/pkg/metrics"
	"github.com/umputun/aidigest/pkg/pipeline"
	"github.com/umputun/aidigest/pkg/repository"
	"github.com/umputun/aidigest/pkg/scheduler"
	"github.com/umputun/aidigest/pkg/source"
	"github.com/umputun/aidigest/pkg/summarizer"
	"github.com/umputun/aidigest/server"
)

// Opts with all CLI options, set values override the config file
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address"`
	Once   bool   `long:"once" description:"run one fetch and exit"`

	DatabaseURL    string `long:"database-url" env:"DATABASE_URL" description:"database connection string"`
	DeepSeekAPIKey string `long:"deepseek-key" env:"DEEPSEEK_API_KEY" description:"llm api key"`
	RapidAPIKey    string `long:"rapidapi-key" env:"RAPIDAPI_KEY" description:"rapidapi key for twitter"`
	AdminAPIKey    string `long:"admin-key" env:"ADMIN_API_KEY" description:"admin api key"`
	FrontendURL    string `long:"frontend-url" env:"FRONTEND_URL" description:"frontend url"`
	RedisAddr      string `long:"redis" env:"REDIS_ADDR" description:"redis address of the llm cache"`

	CronHour          int `long:"cron-hour" env:"FETCH_CRON_HOUR" default:"-1" description:"daily fetch hour"`
	CronMinute        int `long:"cron-minute" env:"FETCH_CRON_MINUTE" default:"-1" description:"daily fetch minute"`
	MaxItemsPerModule int `long:"max-items" env:"MAX_ITEMS_PER_MODULE" description:"max items stored per module"`
	TimeWindowHours   int `long:"time-window" env:"TIME_WINDOW_HOURS" description:"max item age in hours"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.DeepSeekAPIKey, opts.RapidAPIKey, opts.AdminAPIKey)
	log.Printf("[INFO] starting aidigest version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyOverrides(cfg, opts)
	setupLog(opts.Debug, configSecrets(cfg)...) // config file values are known only after load
	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to init database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	m := metrics.NewMetrics(nil)

	llmParams := llm.Params{
		APIKey:      cfg.LLM.APIKey,
		Endpoint:    cfg.LLM.Endpoint,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
		Concurrency: cfg.LLM.Concurrency,
		RateLimit:   cfg.LLM.RateLimit,
		Recorder:    m,
	}
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("[WARN] redis %s unavailable, llm cache disabled: %v", cfg.Redis.Addr, err)
		} else {
			llmParams.Cache = llm.NewRedisCache(rdb, cfg.Redis.TTL)
			log.Printf("[INFO] llm cache enabled, redis %s", cfg.Redis.Addr)
		}
	}
	if cfg.LLM.APIKey == "" {
		log.Printf("[WARN] llm api key not set, translations and summaries fall back to source text")
	}

	sumParams := summarizer.Params{LLM: llm.New(llmParams), Temperature: cfg.LLM.Temperature}
	if cfg.Sources.ExtractHeroes {
		sumParams.Extractor = content.NewHTTPExtractor(cfg.Sources.ExtractTimeout, cfg.Sources.UserAgent, 0)
	}

	coordinator := pipeline.NewCoordinator(pipeline.Params{
		Store:          pipelineStore{ItemRepository: repos.Item, RunRepository: repos.Run},
		Summarizer:     summarizer.New(sumParams),
		Recorder:       m,
		Modules:        makeModules(cfg),
		MaxItems:       cfg.Fetch.MaxItemsPerModule,
		TranslateLimit: cfg.Fetch.TranslateLimit,
		Concurrency:    cfg.Fetch.ModuleConcurrency,
	})

	sched := scheduler.NewScheduler(scheduler.Params{
		Runner:   coordinator,
		Store:    repos.Run,
		Hour:     cfg.Fetch.CronHour,
		Minute:   cfg.Fetch.CronMinute,
		Location: cfg.Location(),
	})

	if opts.Once {
		return runOnce(ctx, sched)
	}

	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	srv := server.New(server.Params{
		Listen:   cfg.Server.Listen,
		Timeout:  cfg.Server.Timeout,
		AdminKey: cfg.Server.AdminKey,
		Version:  revision,
		Debug:    opts.Debug,
		Fetcher:  sched,
		Runs:     repos.Run,
		Items:    repos.Item,
	})
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func runOnce(ctx context.Context, sched *scheduler.Scheduler) error {
	run, err := sched.RunOnce(ctx)
	if err != nil {
		return fmt.Errorf("fetch run failed: %w", err)
	}
	log.Printf("[INFO] fetch run %s %s, %d items, %d errors", run.ID, run.Status, run.TotalItems, len(run.Errors))
	for _, e := range run.Errors {
		log.Printf("[WARN] %s", e)
	}
	return nil
}

// applyOverrides copies set CLI and env options over the config file values
func applyOverrides(cfg *config.Config, opts Opts) {
	setStr := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setStr(&cfg.Server.Listen, opts.Listen)
	setStr(&cfg.Database.DSN, opts.DatabaseURL)
	setStr(&cfg.LLM.APIKey, opts.DeepSeekAPIKey)
	setStr(&cfg.Sources.RapidAPIKey, opts.RapidAPIKey)
	setStr(&cfg.Server.AdminKey, opts.AdminAPIKey)
	setStr(&cfg.Server.FrontendURL, opts.FrontendURL)
	setStr(&cfg.Redis.Addr, opts.RedisAddr)

	if opts.CronHour >= 0 {
		cfg.Fetch.CronHour = opts.CronHour
	}
	if opts.CronMinute >= 0 {
		cfg.Fetch.CronMinute = opts.CronMinute
	}
	if opts.MaxItemsPerModule > 0 {
		cfg.Fetch.MaxItemsPerModule = opts.MaxItemsPerModule
	}
	if opts.TimeWindowHours > 0 {
		cfg.Fetch.TimeWindow = time.Duration(opts.TimeWindowHours) * time.Hour
	}
}

// makeModules builds adapters of enabled modules in pipeline order
func makeModules(cfg *config.Config) []pipeline.Module {
	httpClient := source.NewHTTPClient(cfg.Sources.HTTPTimeout, cfg.Sources.UserAgent)
	feeds := source.NewFeedParser(cfg.Sources.HTTPTimeout, cfg.Sources.UserAgent)
	window, conc := cfg.Fetch.TimeWindow, cfg.Sources.Concurrency

	all := map[domain.Module]pipeline.Module{
		domain.ModuleYouTube: {Type: domain.ContentVideo, Adapter: source.NewYouTube(source.YouTubeParams{
			Feeds: feeds, Prober: &source.WatchPageProber{HTTP: httpClient}, Window: window, Concurrency: conc})},
		domain.ModuleSubstack: {Type: domain.ContentArticle, Adapter: source.NewSubstack(source.SubstackParams{
			Feeds: feeds, Window: window, Concurrency: conc})},
		domain.ModuleTwitter: {Type: domain.ContentMicroblog, Adapter: source.NewTwitter(source.TwitterParams{
			HTTP: httpClient, APIKey: cfg.Sources.RapidAPIKey, Window: window, Concurrency: conc})},
		domain.ModuleProducts: {Type: domain.ContentProduct, Adapter: source.NewProducts(source.ProductsParams{
			HTTP: httpClient, Concurrency: conc})},
		domain.ModuleBusiness: {Type: domain.ContentNews, Adapter: source.NewBusiness(source.BusinessParams{
			Feeds: feeds, Window: window, Concurrency: conc})},
		domain.ModuleApplePodcast: {Type: domain.ContentAudio, Adapter: source.NewPodcast(source.PodcastParams{
			Feeds: feeds, Window: window, Concurrency: conc})},
		domain.ModuleReddit: {Type: domain.ContentForum, Adapter: source.NewReddit(source.RedditParams{
			HTTP: httpClient, Concurrency: conc})},
	}

	enabled := cfg.EnabledModules()
	res := make([]pipeline.Module, 0, len(enabled))
	for _, name := range enabled {
		mod := all[name]
		mod.Name = name
		res = append(res, mod)
	}
	return res
}

// pipelineStore joins item and run repositories into pipeline.Store
type pipelineStore struct {
	*repository.ItemRepository
	*repository.RunRepository
}

// configSecrets lists resolved credentials to be masked in logs
func configSecrets(cfg *config.Config) []string {
	return []string{cfg.LLM.APIKey, cfg.Sources.RapidAPIKey, cfg.Server.AdminKey, cfg.Redis.Password}
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	nonEmpty := make([]string, 0, len(secs))
	for _, s := range secs {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) > 0 {
		logOpts = append(logOpts, lgr.Secret(nonEmpty...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
