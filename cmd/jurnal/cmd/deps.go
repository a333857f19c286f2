package cmd

import (
	"context"
	"log/slog"

	"github.com/shunichi-ikebuchi/jurnal/pkg/backend"
	"github.com/shunichi-ikebuchi/jurnal/pkg/config"
	"github.com/shunichi-ikebuchi/jurnal/pkg/db"
	"github.com/shunichi-ikebuchi/jurnal/pkg/events"
	"github.com/shunichi-ikebuchi/jurnal/pkg/events/kafka"
	"github.com/shunichi-ikebuchi/jurnal/pkg/pathutil"
	"github.com/shunichi-ikebuchi/jurnal/pkg/posting"
)

func loadConfig(required ...[]string) *config.Config {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	if err := cfg.Validate(required...); err != nil {
		exitOnError(err, "invalid configuration")
	}

	return cfg
}

func newPathResolver(cfg *config.Config) *pathutil.PathResolver {
	return pathutil.New(pathutil.Config{
		DataDir:      cfg.Storage.DataDir,
		DatabasePath: cfg.Storage.DBPath,
		ReportDir:    cfg.Storage.ReportDir,
	})
}

func newClient(cfg *config.Config) *backend.Client {
	return backend.NewClient(backend.ClientConfig{
		APIURL:      cfg.API.URL,
		AccessToken: cfg.API.AccessToken,
		Timeout:     cfg.API.Timeout,
		Logger:      slog.Default(),
	})
}

func openHistory(cfg *config.Config) (*db.Connection, *db.History) {
	dbPath := newPathResolver(cfg).GetDatabasePath()
	slog.Debug("Opening database", "path", dbPath)

	conn, err := db.Open(dbPath)
	exitOnError(err, "failed to open database")

	return conn, db.NewHistory(conn)
}

func newPublisher(cfg *config.Config) events.Publisher {
	if !cfg.Kafka.Enabled() {
		return events.NewLogPublisher(slog.Default())
	}
	slog.Debug("Publishing journal events to Kafka", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	return kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
}

// publish delivers an event. Delivery failures are logged; the journal is
// already persisted.
func publish(ctx context.Context, p events.Publisher, event events.JournalEvent) {
	if err := p.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish journal event", "type", event.Type, "trans_no", event.TransNo, "error", err)
	}
}

func loadChart(ctx context.Context, client *backend.Client) *posting.Chart {
	accounts, err := client.ListChart(ctx)
	exitOnError(err, "failed to load chart of accounts")

	chart := make([]posting.Account, 0, len(accounts))
	for _, a := range accounts {
		chart = append(chart, posting.Account{Code: a.AccountCode, Name: a.AccountName})
	}
	return posting.NewChart(chart)
}
