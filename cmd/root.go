package cmd

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/store/postgres"
)

const (
	app = "resume-ranker"
)

type Config struct {
	Store  StoreConfig       `mapstructure:"store"`
	Search *EvaluationConfig `mapstructure:"search"`
	Rank   *EvaluationConfig `mapstructure:"rank"`
	AI     *AIConfig         `mapstructure:"ai"`
}

type StoreConfig struct {
	Driver          string          `mapstructure:"driver"`
	Path            string          `mapstructure:"path"`
	DatabaseURLFile string          `mapstructure:"database-url-file"`
	Postgres        postgres.Config `mapstructure:"postgres"`
}

// EvaluationConfig overrides the defaults of the search or rank command.
type EvaluationConfig struct {
	Weights  *WeightsConfig `mapstructure:"weights"`
	MinScore *float64       `mapstructure:"min-score"`
	Limit    int            `mapstructure:"limit"`
}

// WeightsConfig holds per-criterion overrides; an unset weight keeps the
// command default.
type WeightsConfig struct {
	Skills     *float64 `mapstructure:"skills"`
	Location   *float64 `mapstructure:"location"`
	Experience *float64 `mapstructure:"experience"`
	Title      *float64 `mapstructure:"title"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile     string `mapstructure:"api-key-file"`
	Model          string `mapstructure:"model"`
	EmbeddingModel string `mapstructure:"embedding-model"`
	MaxRetries     int    `mapstructure:"max-retries"`
	MaxLogLength   int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-ranker matches parsed resumes against job postings and free-form searches",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("store.database-url-file", "RANKER_DATABASE_URL_FILE"); err != nil {
		log.Fatalf("binding RANKER_DATABASE_URL_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	viper.SetDefault("store.driver", "file")
	viper.SetDefault("store.path", app+".json")

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-ranker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Secrets may be referenced from a local .env file during development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Every setting has a default, so only an explicit or broken config is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
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

func newLogger() *zap.Logger {
	l, err := logger.New(logger.Options{
		JSON:  viper.GetBool("json"),
		Debug: viper.GetBool("debug"),
	})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}
