package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", defaultConfigPath(), "Path to the YAML configuration file")
	htmlOut := flag.String("html", "", "Optional path to also save the rendered HTML report")
	dryRun := flag.Bool("dry-run", false, "Render the report but skip email delivery")
	flag.Parse()

	if err := run(*configPath, *htmlOut, *dryRun); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run(configPath string, htmlOut string, dryRun bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	initLogging(cfg.Log.Level)

	log.Infof("Connecting to %s on %s...", cfg.Database.Database, cfg.Database.Server)
	db, err := openDatabase(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Warnf("closing database connection: %v", cerr)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	log.Info("Fetching statistics for the most recent analysis date...")
	report, err := fetchAgentStats(ctx, db)
	if err != nil {
		return err
	}
	if report == nil {
		log.Info("No data found to generate a report.")
		return nil
	}
	log.Infof("Found statistics for %d agents on %s.", len(report.Rows), report.Date.Format(subjectDateLayout))

	htmlBody, err := renderReport(report)
	if err != nil {
		return err
	}

	if htmlOut != "" {
		if err := os.WriteFile(htmlOut, []byte(htmlBody), 0644); err != nil {
			return fmt.Errorf("save HTML report: %w", err)
		}
		log.Infof("HTML report saved to %s", htmlOut)
	}

	if dryRun {
		log.Info("Dry run; skipping email delivery.")
		return nil
	}

	if err := sendReport(cfg, htmlBody, report.Date); err != nil {
		return err
	}
	log.Info("Email sent successfully.")
	return nil
}

func initLogging(level string) {
	if level == "" {
		return
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.Warnf("unknown log level %q; keeping info", level)
		return
	}
	log.SetLevel(parsed)
}
