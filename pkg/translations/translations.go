package translations

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

const (
	envPrefix      = "MONDAY_MCP_"
	configFileName = "monday-mcp-server-config"
)

type TranslationHelperFunc func(key string, defaultValue string) string

func NullTranslationHelper(_ string, defaultValue string) string {
	return defaultValue
}

// TranslationHelper returns a lookup that resolves a key from the
// MONDAY_MCP_<KEY> environment variable, then monday-mcp-server-config.json
// in the working directory, then the given default. The second return value
// dumps every key looked up so far back to the config file.
func TranslationHelper() (TranslationHelperFunc, func()) {
	var mu sync.Mutex
	translationKeyMap := map[string]string{}

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType("json")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		slog.Debug("could not read translations config", "error", err)
	}

	return func(key string, defaultValue string) string {
			key = strings.ToUpper(key)

			mu.Lock()
			defer mu.Unlock()

			if value, exists := translationKeyMap[key]; exists {
				return value
			}
			if value, exists := os.LookupEnv(envPrefix + key); exists {
				translationKeyMap[key] = value
				return value
			}

			v.SetDefault(key, defaultValue)
			translationKeyMap[key] = v.GetString(key)
			return translationKeyMap[key]
		}, func() {
			mu.Lock()
			defer mu.Unlock()

			if err := DumpTranslationKeyMap(translationKeyMap); err != nil {
				slog.Error("could not dump translation key map", "error", err)
			}
		}
}

// DumpTranslationKeyMap writes the translation map to a json file called
// monday-mcp-server-config.json
func DumpTranslationKeyMap(translationKeyMap map[string]string) error {
	file, err := os.Create(configFileName + ".json")
	if err != nil {
		return fmt.Errorf("error creating file: %v", err)
	}
	defer func() { _ = file.Close() }()

	// marshal the map to json
	jsonData, err := json.MarshalIndent(translationKeyMap, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling map to JSON: %v", err)
	}

	// write the json data to the file
	if _, err := file.Write(jsonData); err != nil {
		return fmt.Errorf("error writing to file: %v", err)
	}

	return nil
}
