package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "jobfit"
)

type Config struct {
	Server      *ServerConfig `mapstructure:"server"`
	Poll        *PollConfig   `mapstructure:"poll"`
	CatalogFile string        `mapstructure:"catalog-file"`
	TokenFile   string        `mapstructure:"token-file"`
	UserAgent   string        `mapstructure:"user-agent"`
	Submit      *struct {
		Jobs   []string
		Output string
	} `mapstructure:"submit"`
}

type ServerConfig struct {
	URL string `mapstructure:"url"`
}

type PollConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	Disabled bool          `mapstructure:"disabled"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobfit is a simple cli for scoring resumes against job offers via a remote matching service",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("token-file", "JOBFIT_TOKEN_FILE"); err != nil {
		log.Fatalf("binding JOBFIT_TOKEN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobfit.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("server-url", "", "base URL of the matching service")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("server.url", rootCmd.PersistentFlags().Lookup("server-url"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional: every setting has a default or a flag.
	// An explicitly requested file must exist though.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	return config, nil
}
