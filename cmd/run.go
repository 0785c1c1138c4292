package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/rmoralesp/jobfit/internal/catalog"
	"github.com/rmoralesp/jobfit/internal/logger"
	"github.com/rmoralesp/jobfit/internal/matcher"
	"github.com/rmoralesp/jobfit/internal/poller"
	"github.com/rmoralesp/jobfit/internal/report"
	"github.com/rmoralesp/jobfit/internal/secrets"
	"github.com/rmoralesp/jobfit/internal/submit"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptDone = "Done"
)

var runCmd = &cobra.Command{
	Use:   "run [files...]",
	Short: "Submit resume files against selected job offers and browse the match report",
	Args:  cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringSliceP("job", "J", nil, "job offer id to match against (repeatable)")
	runCmd.Flags().StringP("output", "o", "", "write an HTML report to this path instead of the interactive browser")
	runCmd.Flags().Bool("no-wait", false, "skip the model readiness check")

	viper.BindPFlag("submit.jobs", runCmd.Flags().Lookup("job"))
	viper.BindPFlag("submit.output", runCmd.Flags().Lookup("output"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting jobfit", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	cat, err := loadCatalog(config)
	if err != nil {
		logger.Fatal("loading job catalog", zap.Error(err))
	}

	logger.Info("loaded job catalog", zap.Int("offers", cat.Len()))

	client := newClient(ctx, config, logger)

	if !pollDisabled(cmd, config) {
		interval := poller.DefaultInterval
		if config.Poll != nil && config.Poll.Interval > 0 {
			interval = config.Poll.Interval
		}

		logger.Info("waiting for the model to become ready")
		if err := poller.New(client, interval, logger).Wait(ctx); err != nil {
			logger.Fatal("waiting for model readiness", zap.Error(err))
		}
	}

	jobIDs, err := resolveJobIDs(config, cat)
	if err != nil {
		logger.Fatal("selecting job offers", zap.Error(err))
	}

	controller := submit.New(cat, client, logger)

	result, names, err := controller.SubmitPaths(jobIDs, args)
	if err != nil {
		fatalSubmitError(logger, err)
	}

	logger.Info("got match results", zap.Int("count", result.Len()))

	entries := report.Build(result, names)

	if output := viper.GetString("submit.output"); output != "" {
		if err := report.WriteHTMLFile(output, entries); err != nil {
			logger.Fatal("writing report", zap.Error(err))
		}
		logger.Info("report written", zap.String("path", output))
		return
	}

	if err := report.NewBrowser(entries).Run(); err != nil {
		logger.Fatal("browsing report", zap.Error(err))
	}
}

func loadCatalog(config *Config) (*catalog.Catalog, error) {
	if config != nil && config.CatalogFile != "" {
		return catalog.FromFile(config.CatalogFile)
	}

	return catalog.New()
}

func newClient(ctx context.Context, config *Config, logger *zap.Logger) *matcher.Client {
	serverURL := ""
	if config.Server != nil {
		serverURL = config.Server.URL
	}

	// The token is optional: most deployments expose the API unauthenticated.
	token, err := resolveToken(config)
	if err != nil {
		logger.Debug("proceeding without API token", zap.Error(err))
	}

	client := matcher.New(ctx, logger, serverURL, token)

	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	return client
}

func resolveToken(config *Config) (string, error) {
	tokenFile := ""
	if config != nil {
		tokenFile = config.TokenFile
	}
	if tokenFile == "" {
		tokenFile = viper.GetString("token-file")
	}

	return secrets.Load("matching service token", tokenFile, "")
}

func pollDisabled(cmd *cobra.Command, config *Config) bool {
	if cmd.Flag("no-wait").Value.String() == "true" {
		return true
	}

	return config.Poll != nil && config.Poll.Disabled
}

func fatalSubmitError(logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, submit.ErrNoJobSelected):
		logger.Fatal("no job offer selected",
			zap.String("hint", "pass --job or set submit.jobs in the configuration file"),
		)
	case errors.Is(err, submit.ErrNoFileSelected):
		logger.Fatal("no resume file selected",
			zap.String("hint", "pass one or more resume files as arguments"),
		)
	default:
		var apiErr *matcher.APIError
		if errors.As(err, &apiErr) {
			logger.Fatal("matching service rejected the submission",
				zap.Int("status_code", apiErr.StatusCode),
				zap.String("server_message", apiErr.Message),
			)
		}
		logger.Fatal("submission failed", zap.Error(err))
	}
}

// resolveJobIDs takes the job selection from flags or config, falling back to
// an interactive multi-select over the catalog.
func resolveJobIDs(config *Config, cat *catalog.Catalog) ([]string, error) {
	fromConfig := viper.GetStringSlice("submit.jobs")
	if len(fromConfig) == 0 && config.Submit != nil {
		fromConfig = config.Submit.Jobs
	}
	if len(fromConfig) > 0 {
		return fromConfig, nil
	}

	return selectOffers(cat)
}

// selectOffers runs a prompt loop until the user confirms the selection.
// Picking an already selected offer removes it again.
func selectOffers(cat *catalog.Catalog) ([]string, error) {
	selected := make([]string, 0)

	for {
		items := make([]string, 0, cat.Len()+1)
		for _, offer := range cat.Offers() {
			mark := " "
			if containsID(selected, offer.ID) {
				mark = "*"
			}
			items = append(items, fmt.Sprintf("[%s] %s  %s", mark, offer.ID, offer.Label))
		}
		items = append(items, PromptDone)

		prompt := promptui.Select{
			Label: "Select job offers and press ENTER",
			Items: items,
			Size:  len(items),
		}

		idx, _, err := prompt.Run()
		if err != nil {
			return nil, err
		}

		if idx == cat.Len() {
			return selected, nil
		}

		id := cat.Offers()[idx].ID
		if containsID(selected, id) {
			selected = removeID(selected, id)
			continue
		}
		selected = append(selected, id)
	}
}

func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
