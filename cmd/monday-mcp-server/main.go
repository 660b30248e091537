package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/krsjen/monday-mcp-server/internal/credential"
	"github.com/krsjen/monday-mcp-server/internal/mondaymcp"
	"github.com/krsjen/monday-mcp-server/pkg/monday"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// These variables are set by the build process using ldflags.
var version = "version"
var commit = "commit"
var date = "date"

var (
	rootCmd = &cobra.Command{
		Use:     "server",
		Short:   "Monday.com MCP Server",
		Long:    `A Monday.com MCP server that handles tasks on a single Monday.com board.`,
		Version: fmt.Sprintf("Version: %s\nCommit: %s\nBuild Date: %s", version, commit, date),
	}

	stdioCmd = &cobra.Command{
		Use:   "stdio",
		Short: "Start stdio server",
		Long:  `Start a server that communicates via standard input/output streams using JSON-RPC messages.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			apiKey := viper.GetString("api_key")
			if apiKey == "" {
				apiKey = credential.LookupAPIKey(credential.Open)
			}

			// If you're wondering why we're not using viper.GetStringSlice("toolsets"),
			// it's because viper doesn't handle comma-separated values correctly for env
			// vars when using GetStringSlice.
			// https://github.com/spf13/viper/issues/380
			var enabledToolsets []string
			if err := viper.UnmarshalKey("toolsets", &enabledToolsets); err != nil {
				return fmt.Errorf("failed to unmarshal toolsets: %w", err)
			}

			stdioServerConfig := mondaymcp.StdioServerConfig{
				MCPServerConfig: mondaymcp.MCPServerConfig{
					Version:     version,
					APIKey:      apiKey,
					APIURL:      viper.GetString("api_url"),
					APIVersion:  viper.GetString("api_version"),
					HTTPTimeout: viper.GetDuration("http_timeout"),
					Board: monday.BoardConfig{
						BoardID:             viper.GetString("tasks_board_id"),
						StatusColumnID:      viper.GetString("status_column_id"),
						DescriptionColumnID: viper.GetString("description_column_id"),
						OwnerColumnID:       viper.GetString("owner_column_id"),
					},
					EnabledToolsets: enabledToolsets,
					ReadOnly:        viper.GetBool("read_only"),
				},
				ExportTranslations:   viper.GetBool("export_translations"),
				EnableCommandLogging: viper.GetBool("enable_command_logging"),
				LogFilePath:          viper.GetString("log_file"),
				LogLevel:             viper.GetString("log_level"),
			}
			return mondaymcp.RunStdioServer(stdioServerConfig)
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.SetGlobalNormalizationFunc(wordSepNormalizeFunc)

	rootCmd.SetVersionTemplate("{{.Short}}\n{{.Version}}\n")

	// Add global flags that will be shared by all commands
	rootCmd.PersistentFlags().StringSlice("toolsets", monday.DefaultTools, "An optional comma separated list of groups of tools to allow, defaults to enabling all")
	rootCmd.PersistentFlags().Bool("read-only", false, "Restrict the server to read-only operations")
	rootCmd.PersistentFlags().String("tasks-board-id", "", "ID of the Monday.com board the tools work against")
	rootCmd.PersistentFlags().String("api-url", monday.DefaultAPIURL, "Monday.com GraphQL endpoint")
	rootCmd.PersistentFlags().String("api-version", "", "Monday.com API version sent as the API-Version header")
	rootCmd.PersistentFlags().Duration("http-timeout", monday.DefaultHTTPTimeout, "Timeout for a single Monday.com API request")
	rootCmd.PersistentFlags().String("status-column-id", monday.DefaultStatusColumnID, "Column shown as the item status by my-items")
	rootCmd.PersistentFlags().String("description-column-id", monday.DefaultDescriptionColumnID, "Long text column shown as the item description by my-items")
	rootCmd.PersistentFlags().String("owner-column-id", monday.DefaultOwnerColumnID, "People column add-task assigns the current user to")
	rootCmd.PersistentFlags().String("log-file", "", "Path to log file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().Bool("enable-command-logging", false, "When enabled, the server will log all command requests and responses to the log file")
	rootCmd.PersistentFlags().Bool("export-translations", false, "Save translations to a JSON file")

	// Bind flag to viper
	for _, key := range []string{
		"toolsets", "read-only", "tasks-board-id", "api-url", "api-version", "http-timeout",
		"status-column-id", "description-column-id", "owner-column-id",
		"log-file", "log-level", "enable-command-logging", "export-translations",
	} {
		_ = viper.BindPFlag(strings.ReplaceAll(key, "-", "_"), rootCmd.PersistentFlags().Lookup(key))
	}

	// Add subcommands
	rootCmd.AddCommand(stdioCmd)
	rootCmd.AddCommand(authCmd)
}

func initConfig() {
	// Initialize Viper configuration
	viper.SetEnvPrefix("monday")
	viper.AutomaticEnv()
	loadDotEnv(viper.GetViper(), ".env")
}

// loadDotEnv makes MONDAY_* entries of a dotenv file available under their
// unprefixed keys. Real environment variables and flags still take
// precedence.
func loadDotEnv(v *viper.Viper, path string) {
	dotenv := viper.New()
	dotenv.SetConfigFile(path)
	dotenv.SetConfigType("env")
	if err := dotenv.ReadInConfig(); err != nil {
		return
	}
	for _, key := range dotenv.AllKeys() {
		name, ok := strings.CutPrefix(key, "monday_")
		if !ok {
			continue
		}
		v.SetDefault(name, dotenv.Get(key))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func wordSepNormalizeFunc(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	from := []string{"_"}
	to := "-"
	for _, sep := range from {
		name = strings.ReplaceAll(name, sep, to)
	}
	return pflag.NormalizedName(name)
}
