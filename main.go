package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"baseball-preview-go/aggregator"
	"baseball-preview-go/render"

	log "github.com/sirupsen/logrus"
)

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel) // Set to InfoLevel (change to DebugLevel for detailed logs)
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s <command> [arguments]

Commands:
  fetch  AWAY HOME DATE   warm the endpoint cache for one matchup
  build  AWAY HOME DATE   aggregate a preview bundle (flags: -force, -strict)
  render AWAY HOME DATE   render a stored bundle to HTML
  cache  <stats|clear|clear-expired|list>
  serve                   start the HTTP API

Teams are MLB abbreviations (NYY, BOS, ...); DATE is YYYY-MM-DD.
`, os.Args[0])
}

func main() {
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "fetch":
		err = cmdFetch(args[1:])
	case "build":
		err = cmdBuild(args[1:])
	case "render":
		err = cmdRender(args[1:])
	case "cache":
		err = cmdCache(args[1:])
	case "serve":
		err = cmdServe()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", args[0])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// matchupArgs parses the common AWAY HOME DATE argument triple.
func matchupArgs(fs *flag.FlagSet, args []string) (away, home, date string, err error) {
	if err := fs.Parse(args); err != nil {
		return "", "", "", err
	}
	rest := fs.Args()
	if len(rest) != 3 {
		return "", "", "", fmt.Errorf("expected AWAY HOME DATE, got %d arguments", len(rest))
	}
	return rest[0], rest[1], rest[2], nil
}

func cmdFetch(args []string) error {
	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	force := fs.Bool("force", false, "clear the endpoint cache before fetching")
	away, home, date, err := matchupArgs(fs, args)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if *force {
		n := a.endpoints.ClearAll()
		fmt.Printf("Cleared %d endpoint cache entries\n", n)
	}

	// A forced build exercises every upstream endpoint, which populates the
	// endpoint cache through the shared fetchers. The bundle itself is kept
	// too; a following build is then fully cache-served.
	_, report, err := a.agg.Build(context.Background(), away, home, date, aggregator.Options{Force: true})
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}
	cs := a.endpoints.Stats()
	fmt.Printf("Endpoint cache warmed for %s @ %s on %s: %d entries (%d warnings)\n",
		away, home, date, cs.Total, len(report.Warnings))
	fmt.Printf("Next: %s build %s %s %s\n", os.Args[0], away, home, date)
	return nil
}

func cmdBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	force := fs.Bool("force", false, "rebuild even if a bundle exists")
	strict := fs.Bool("strict", false, "fail when required fields are missing")
	away, home, date, err := matchupArgs(fs, args)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	b, report, err := a.agg.Build(context.Background(), away, home, date,
		aggregator.Options{Force: *force, Strict: *strict})
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	fmt.Printf("Built bundle %s @ %s on %s (season %d)\n", b.AwayTeam, b.HomeTeam, b.GameDate, b.Metadata.Season)
	for _, m := range report.Missing {
		fmt.Printf("  missing: %s\n", m)
	}
	for _, w := range report.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
	fmt.Printf("Next: %s render %s %s %s\n", os.Args[0], away, home, date)
	return nil
}

func cmdRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	away, home, date, err := matchupArgs(fs, args)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	b, ok := a.store.Get(away, home, date)
	if !ok {
		return fmt.Errorf("bundle not found for %s @ %s on %s; run: %s build %s %s %s",
			away, home, date, os.Args[0], away, home, date)
	}
	if _, err := aggregator.Validate(b, true); err != nil {
		return fmt.Errorf("stored bundle is incomplete: %w; run: %s build -force %s %s %s",
			err, os.Args[0], away, home, date)
	}

	path, err := render.WriteFile(a.cfg.Configuration.RenderOutputPath, b)
	if err != nil {
		return err
	}
	fmt.Printf("Rendered %s\n", path)
	return nil
}

func cmdCache(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected one of: stats, clear, clear-expired, list")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	switch args[0] {
	case "stats":
		cs := a.endpoints.Stats()
		fmt.Printf("Endpoint cache: %d entries (%d valid, %d expired), %.1f KB\n",
			cs.Total, cs.Valid, cs.Expired, float64(cs.TotalSizeBytes)/1024)
		fmt.Printf("Bundle cache: %d bundles\n", len(a.store.List()))
	case "clear":
		n := a.endpoints.ClearAll()
		fmt.Printf("Cleared %d endpoint cache entries\n", n)
	case "clear-expired":
		n := a.endpoints.ClearExpired()
		fmt.Printf("Cleared %d expired endpoint cache entries\n", n)
	case "list":
		bundles := a.store.List()
		if len(bundles) == 0 {
			fmt.Println("No bundles stored")
			return nil
		}
		for _, s := range bundles {
			fmt.Printf("%s @ %s  %s  (fetched %s)\n",
				s.AwayTeam, s.HomeTeam, s.GameDate, s.FetchedAt.Format("2006-01-02 15:04"))
		}
	default:
		return fmt.Errorf("unknown cache command %q; expected stats, clear, clear-expired, or list", args[0])
	}
	return nil
}
