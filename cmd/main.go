package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strings"

	"nordpick/internal/catalog"
	"nordpick/internal/config"
	"nordpick/internal/filter"
	"nordpick/internal/geoip"
	"nordpick/internal/logger"
	"nordpick/internal/notify"
	"nordpick/internal/ping"
	"nordpick/internal/region"
	"nordpick/internal/selector"
	"nordpick/internal/sink"
	"nordpick/internal/source"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Setup(cfg.LogLevel)

	if err := run(cfg, os.Args[1:]); err != nil {
		slog.Error("run_failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, args []string) error {
	ctx := context.Background()
	client := &http.Client{Timeout: cfg.HTTPTimeout}

	// --- STAGE 1: BUILD CATALOG ---
	cat, err := buildCatalog(ctx, cfg, client)
	if err != nil {
		return err
	}
	slog.Debug("catalog_fetched", "servers", cat.Len())

	if containsFlag(args, "--filters") {
		showFilters(cat)
		return nil
	}

	// --- STAGE 2: FILTER ---
	filters, err := buildFilters(ctx, cfg, client, cat, args)
	if err != nil {
		return err
	}
	cat.FilterAll(filters)
	slog.Debug("catalog_filtered", "servers", cat.Len())

	// --- STAGE 3: RANK ---
	if cfg.UsePing && cat.Len() > 1 {
		if err := rankByLatency(ctx, cfg, cat); err != nil {
			// Degrade gracefully: the catalog is already load-ranked.
			slog.Warn("latency_ranking_unavailable", "fallback", "load", "error", err)
		}
	} else {
		selector.RankByLoad(cat)
	}

	// --- STAGE 4: REPORT ---
	best := selector.Best(cat)
	if best == nil {
		fmt.Fprintln(os.Stderr, "No server found")
		os.Exit(1)
	}

	if cfg.GeoIPPath != "" {
		verifyCountry(cfg.GeoIPPath, best.Domain, best.Flag)
	}

	if cfg.PrintDomain {
		fmt.Println(best.Domain)
	} else {
		fmt.Println(best.Name())
	}

	if cfg.OutputPath != "" {
		if err := writeShortlist(cfg, cat); err != nil {
			slog.Warn("shortlist_write_failed", "path", cfg.OutputPath, "error", err)
		}
	}

	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
		notifier := notify.NewNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err := notifier.SendBest(ctx, best); err != nil {
			slog.Warn("telegram_notify_failed", "error", err)
		}
	}

	return nil
}

func buildCatalog(ctx context.Context, cfg *config.Config, client *http.Client) (*catalog.Catalog, error) {
	if cfg.FixturePath != "" {
		return source.FromFile(cfg.FixturePath)
	}
	return source.FromAPI(ctx, client, cfg.APIURL)
}

// buildFilters turns CLI tokens and configured allow/deny lists into the
// filter chain. Lists go first so later filters see the reduced set.
func buildFilters(ctx context.Context, cfg *config.Config, client *http.Client, cat *catalog.Catalog, args []string) ([]filter.Filter, error) {
	var filters []filter.Filter

	if cfg.Whitelist != "" {
		domains, err := source.LoadDomainSet(ctx, client, cfg.Whitelist)
		if err != nil {
			return nil, fmt.Errorf("whitelist: %w", err)
		}
		filters = append(filters, filter.Whitelist(domains))
	}
	if cfg.Blacklist != "" {
		domains, err := source.LoadDomainSet(ctx, client, cfg.Blacklist)
		if err != nil {
			return nil, fmt.Errorf("blacklist: %w", err)
		}
		filters = append(filters, filter.Blacklist(domains))
	}

	flags := cat.Flags()
	for _, token := range args {
		if strings.HasPrefix(token, "--") {
			continue
		}
		f, err := filter.Parse(token, flags)
		if err != nil {
			var unrec *filter.UnrecognizedFilterError
			if errors.As(err, &unrec) {
				return nil, fmt.Errorf("%w (see --filters for the available ones)", err)
			}
			return nil, err
		}
		filters = append(filters, f)
	}

	return filters, nil
}

func rankByLatency(ctx context.Context, cfg *config.Config, cat *catalog.Catalog) error {
	strategy, err := ping.ParseStrategy(cfg.PingStrategy)
	if err != nil {
		return err
	}
	prober := ping.NewProber(&ping.ICMPPinger{
		Timeout:    cfg.PingTimeout,
		Privileged: cfg.PingPrivileged,
	}, cfg.PingRate)

	return selector.RankByLatency(ctx, cat, prober, cfg.PingCandidates, cfg.PingTries, strategy)
}

func verifyCountry(dbPath, domain, claimed string) {
	db, err := geoip.Open(dbPath)
	if err != nil {
		slog.Warn("geoip_unavailable", "error", err)
		return
	}
	defer db.Close()

	actual, err := db.CountryOf(domain)
	if err != nil {
		slog.Debug("geoip_lookup_failed", "domain", domain, "error", err)
		return
	}
	if actual != claimed {
		slog.Warn("country_mismatch", "domain", domain, "claimed", claimed, "geoip", actual)
	}
}

func writeShortlist(cfg *config.Config, cat *catalog.Catalog) error {
	limit := cfg.OutputLimit
	if limit <= 0 || limit > cat.Len() {
		limit = cat.Len()
	}

	if strings.HasSuffix(cfg.OutputPath, ".jsonl") {
		w, err := sink.NewJSONL(cfg.OutputPath)
		if err != nil {
			return err
		}
		defer w.Close()
		for i := 0; i < limit; i++ {
			if err := w.Write(&cat.Servers[i]); err != nil {
				return err
			}
		}
		return nil
	}

	w, err := sink.NewText(cfg.OutputPath)
	if err != nil {
		return err
	}
	defer w.Close()
	for i := 0; i < limit; i++ {
		if err := w.Write(&cat.Servers[i]); err != nil {
			return err
		}
	}
	return nil
}

func showFilters(cat *catalog.Catalog) {
	protocols := make([]string, 0, len(filter.Protocols()))
	for _, p := range filter.Protocols() {
		protocols = append(protocols, string(p))
	}
	fmt.Printf("PROTOCOLS:\t%s\n", strings.Join(protocols, ", "))
	fmt.Printf("SERVERS:\t%s\n", strings.Join(filter.CategoryTokens(), ", "))

	flags := make([]string, 0, len(cat.Flags()))
	for flag := range cat.Flags() {
		flags = append(flags, strings.ToLower(flag))
	}
	sort.Strings(flags)
	fmt.Printf("COUNTRIES:\t%s\n\n", strings.Join(flags, ", "))

	fmt.Println("REGIONS:")
	for _, r := range region.All() {
		fmt.Printf("%s\t%s\n", strings.ToLower(r.Code), r.Description)
	}
	fmt.Println()
	fmt.Println("Any filter can be inverted using !")
}

func containsFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}
