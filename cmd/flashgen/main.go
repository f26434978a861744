// Command flashgen is a terminal client for the flashcard API. It submits
// source text for generation, walks through the proposals in an
// interactive review session, and lists or deletes saved flashcards.
//
// Settings come from the environment (a local .env is loaded first) and
// can be overridden with flags:
//
//	FLASHGEN_SERVER      API base URL (default http://localhost:8080)
//	FLASHGEN_TOKEN       bearer access token, see cmd/devtoken
//	FLASHGEN_AI_API_KEY  per-request model API key
//	FLASHGEN_TIMEOUT     request timeout (default 90s)
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/flashgen-backend/internal/apiclient"
)

type clientConfig struct {
	Server   string        `env:"FLASHGEN_SERVER"     env-default:"http://localhost:8080"`
	Token    string        `env:"FLASHGEN_TOKEN"`
	APIKey   string        `env:"FLASHGEN_AI_API_KEY"`
	Timeout  time.Duration `env:"FLASHGEN_TIMEOUT"    env-default:"90s"`
	LogLevel string        `env:"FLASHGEN_LOG_LEVEL"  env-default:"warn"`
}

func main() {
	_ = godotenv.Load()

	var cfg clientConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "flashgen: read env: %v\n", err)
		os.Exit(1)
	}

	if err := newRootCmd(&cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *clientConfig) *cobra.Command {
	root := &cobra.Command{
		Use:           "flashgen",
		Short:         "Generate and review flashcards from pasted text",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.Server, "server", cfg.Server, "API base URL")
	flags.StringVar(&cfg.Token, "token", cfg.Token, "bearer access token")
	flags.StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "model API key sent as X-AI-Api-Key")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "request timeout")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")

	root.AddCommand(
		newGenerateCmd(cfg),
		newListCmd(cfg),
		newDeleteCmd(cfg),
	)
	return root
}

func (c *clientConfig) client() *apiclient.Client {
	return apiclient.New(apiclient.Options{
		BaseURL: c.Server,
		Token:   c.Token,
		APIKey:  c.APIKey,
		Timeout: c.Timeout,
	}, newLogger(c.LogLevel))
}
