package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"french_vocab_trainer/config"
	"french_vocab_trainer/generator"
	"french_vocab_trainer/history"
	"french_vocab_trainer/logging"
	"french_vocab_trainer/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type app struct {
	configPath string
	mock       bool
	cfg        config.Config
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "vocab",
		Short:         "French vocabulary generator for Spanish speakers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "path to config.json")
	root.PersistentFlags().BoolVar(&a.mock, "mock", false, "use the offline mock model")

	root.AddCommand(a.serveCmd(), a.generateCmd(), a.historyCmd())
	return root
}

func (a *app) init() error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			agent, err := a.buildAgent()
			if err != nil {
				return err
			}
			store, err := a.buildStore()
			if err != nil {
				return err
			}
			srv, err := server.New(agent, store, server.Options{
				Timeout:        a.cfg.RequestTimeout(),
				AllowedOrigins: a.cfg.AllowedOrigins,
			}, a.logger)
			if err != nil {
				return err
			}
			listen := a.cfg.ServerAddr
			if addr != "" {
				listen = addr
			}
			a.logger.Info("starting web server", zap.String("addr", listen), zap.Bool("mock", a.mock))
			return http.ListenAndServe(listen, srv.Routes())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "http listen address (overrides config server_addr)")
	return cmd
}

func (a *app) generateCmd() *cobra.Command {
	var topic, level, apiKey string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate entries once and save them to history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if apiKey == "" {
				apiKey = os.Getenv("GEMINI_API_KEY")
			}
			if a.mock && apiKey == "" {
				apiKey = "mock"
			}
			agent, err := a.buildAgent()
			if err != nil {
				return err
			}
			store, err := a.buildStore()
			if err != nil {
				return err
			}
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), agent, store, apiKey, topic, generator.Level(level))
		},
	}
	cmd.Flags().StringVar(&topic, "topic", "", "topic to generate for")
	cmd.Flags().StringVar(&level, "level", string(generator.LevelWords), "Palabras, Frases or Textos")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "provider api key (default $GEMINI_API_KEY)")
	_ = cmd.MarkFlagRequired("topic")
	return cmd
}

func (a *app) historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Print the saved history as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.buildStore()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), store.LoadAll())
		},
	}
}

// runGenerate follows the same path as POST /generar: generate, save, print.
func runGenerate(ctx context.Context, w io.Writer, gen server.Generator, store history.Store, apiKey, topic string, level generator.Level) error {
	if apiKey == "" {
		return errors.New("api key required: pass --api-key or set GEMINI_API_KEY")
	}
	entries, err := gen.Generate(ctx, apiKey, topic, level)
	if err != nil {
		var genErr *generator.GenerationError
		if errors.As(err, &genErr) && genErr.Message != "" {
			return errors.New(genErr.Message)
		}
		return err
	}
	store.Prepend(topic, level, entries)
	return printJSON(w, entries)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) buildAgent() (*generator.Agent, error) {
	llm, err := a.buildLLM()
	if err != nil {
		return nil, err
	}
	return generator.NewAgent(llm, a.logger)
}

func (a *app) buildLLM() (generator.LLMClient, error) {
	if a.mock {
		return generator.MockLLM{}, nil
	}
	return generator.NewOpenAILLMFromConfig(&generator.LLMSettings{
		Model:   a.cfg.Model,
		BaseURL: a.cfg.BaseURL,
	})
}

func (a *app) buildStore() (history.Store, error) {
	if a.cfg.HistoryFile == "" {
		return history.NewMemoryStore(), nil
	}
	return history.NewFileStore(a.cfg.HistoryFile, a.logger)
}
