/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/gemtext/internal/config"
)

var version = "0.1.0"

var (
	cfgFile string
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "gemtext",
	Short: "Gemini-backed text translation and enhancement",
	Long: `A small front-end to a hosted language model with two tasks:

  translate   Translate text into Spanish, French, English or Arabic
  enhance     Rewrite text to be more formal, friendly, concise or detailed

Run "gemtext serve" for the web page, or use the subcommands directly.
The API key is read from GOOGLE_API_KEY (or OPENROUTER_API_KEY with
--provider openrouter); a .env file in the working directory is honoured.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	config.SetDefaults(v)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default: ./gemtext.yaml or ~/.config/gemtext/gemtext.yaml)")
	pf.String("provider", "gemini", "Completion provider: gemini or openrouter")
	pf.String("model", "", "Model name (provider default when empty)")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String("log-format", "json", "Log format: json or console")
	pf.Bool("history", false, "Record completed requests in the history database")
	pf.String("db", "./data/gemtext.db", "History database path")

	_ = v.BindPFlag("completion.provider", pf.Lookup("provider"))
	_ = v.BindPFlag("completion.model", pf.Lookup("model"))
	_ = v.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = v.BindPFlag("log.format", pf.Lookup("log-format"))
	_ = v.BindPFlag("history.enabled", pf.Lookup("history"))
	_ = v.BindPFlag("history.path", pf.Lookup("db"))
}

// initConfig loads .env and the optional config file. Credentials are checked
// later, by the commands that need them.
func initConfig() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("gemtext")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "gemtext"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}
