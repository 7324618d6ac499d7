package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/jaehyun-im/kcscbot/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "kcscbot",
	Short: "kcscbot - Grounded Q&A over the KCSC construction standards",
	Long: `kcscbot answers free-text questions about national construction
standards (KDS/KCS) using the KCSC OpenAPI.

For each question it distills a search keyword with a language model,
matches it locally against the cached standards catalog, flattens the
best-matching standard's full text, and generates an answer grounded in
that text with a source citation.

The KCSC API exposes only a bulk listing and a by-code viewer; there is
no server-side search, so matching happens locally over the cached
catalog.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("kcscbot v0.2.1")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.kcscbot/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.kcscbot")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match KCSCBOT_*, with nested keys
	// flattened (kcsc.doc_type -> KCSCBOT_KCSC_DOC_TYPE)
	viper.SetEnvPrefix("KCSCBOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// buildConfig assembles the runtime configuration: defaults, config file,
// KCSCBOT_* env vars, then secrets from the environment.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	// Viper only resolves keys it knows about; registering every default key
	// makes the env layer work for nested keys with no config file present.
	if err := registerDefaults(cfg); err != nil {
		return nil, fmt.Errorf("register defaults: %w", err)
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}

	if key := os.Getenv("KCSC_API_KEY"); key != "" {
		cfg.KCSC.APIKey = key
	}

	cfg.Output.Verbose = verbose

	return cfg, nil
}

// registerDefaults declares every config key to viper with its default value.
func registerDefaults(cfg *model.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	var tree map[string]interface{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return err
	}

	setDefaults("", tree)
	return nil
}

func setDefaults(prefix string, tree map[string]interface{}) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]interface{}); ok {
			setDefaults(key, sub)
			continue
		}
		viper.SetDefault(key, v)
	}
}

// resolveLLMSecrets fills provider credentials from the environment. Secrets
// live in env vars, not config files.
func resolveLLMSecrets(cfg *model.Config) error {
	switch cfg.LLM.Provider {
	case "openai":
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}

	case "azure":
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("AZURE_OPENAI_KEY")
		}
		if cfg.LLM.AzureEndpoint == "" {
			cfg.LLM.AzureEndpoint = os.Getenv("AZURE_OPENAI_ENDPOINT")
		}
		if cfg.LLM.Deployment == "" {
			cfg.LLM.Deployment = os.Getenv("AZURE_OPENAI_DEPLOYMENT_NAME")
		}
		if cfg.LLM.AzureAPIVersion == "" {
			cfg.LLM.AzureAPIVersion = os.Getenv("AZURE_OPENAI_API_VERSION")
		}
		if cfg.LLM.APIKey == "" || cfg.LLM.AzureEndpoint == "" {
			return fmt.Errorf("AZURE_OPENAI_KEY and AZURE_OPENAI_ENDPOINT environment variables are required")
		}

	case "anthropic", "claude":
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}

	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return nil
}
