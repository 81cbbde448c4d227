// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/yamlmend"
	"github.com/poiesic/yamlmend/ai"
	"github.com/poiesic/yamlmend/pipeline"
	"github.com/poiesic/yamlmend/prompt"
	"github.com/poiesic/yamlmend/server"
	"github.com/urfave/cli/v2"
)

const defaultEnvFile = ".env"

func main() {
	if err := loadEnvFile(envFileFromArgs(os.Args[1:])); err != nil {
		log.Fatal(err)
	}
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "yamlmend",
		Usage: "Turn free text into valid YAML with a language model and a repair pass",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment variables from this file if it exists",
				Value: defaultEnvFile,
			},
			&cli.StringFlag{
				Name:    "parser",
				Usage:   "YAML parser used to validate output (yamlv3, goccy)",
				Value:   "yamlv3",
				EnvVars: []string{"YAMLMEND_PARSER"},
			},
			&cli.StringFlag{
				Name:    "provider",
				Usage:   "Model provider (openai, ollama, anthropic)",
				Value:   ai.ProviderOpenAI,
				EnvVars: []string{"YAMLMEND_PROVIDER"},
			},
			&cli.StringFlag{
				Name:    "host",
				Usage:   "Provider base URL",
				Value:   ai.DefaultHost,
				EnvVars: []string{"YAMLMEND_HOST"},
			},
			&cli.StringFlag{
				Name:    "model",
				Usage:   "Model name",
				Value:   ai.DefaultModel,
				EnvVars: []string{"YAMLMEND_MODEL"},
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "Provider API key",
				EnvVars: []string{"COHERE_API_KEY", "YAMLMEND_API_KEY"},
			},
			&cli.Float64Flag{
				Name:  "temperature",
				Usage: "Sampling temperature",
				Value: 0.1,
			},
			&cli.IntFlag{
				Name:  "max-tokens",
				Usage: "Maximum tokens in a model response",
				Value: 4000,
			},
			&cli.IntFlag{
				Name:  "max-retries",
				Usage: "Maximum attempts for failed model requests",
				Value: 3,
			},
			&cli.DurationFlag{
				Name:  "retry-delay",
				Usage: "Base delay for exponential backoff",
				Value: 1 * time.Second,
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP service",
				Action: serveCommand,
				Flags: append(pipelineFlags(),
					&cli.IntFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Usage:   "Port to listen on",
						Value:   server.DefaultPort,
						EnvVars: []string{"PORT", "ROCKET_PORT"},
					},
					&cli.Int64Flag{
						Name:  "max-body",
						Usage: "Maximum request body size in bytes",
						Value: server.DefaultMaxBodyBytes,
					},
				),
			},
			{
				Name:      "format",
				Usage:     "Format text files into YAML",
				ArgsUsage: "<file>...",
				Action:    formatCommand,
				Flags: append(pipelineFlags(),
					&cli.BoolFlag{
						Name:  "stdout",
						Usage: "Write results to stdout instead of <name>.formatted.yaml",
					},
				),
			},
			{
				Name:      "repair",
				Usage:     "Repair a YAML document without calling a model",
				ArgsUsage: "[file]",
				Action:    repairCommand,
			},
			{
				Name:   "history",
				Usage:  "List stored format records, most recent first",
				Action: historyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of records to list",
						Value: 20,
					},
				},
			},
		},
	}
}

func pipelineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config-path",
			Aliases: []string{"c"},
			Usage:   "Directory (or .yaml file inside it) holding template.yaml and prompt/",
			EnvVars: []string{"CONFIG_PATH"},
		},
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to BadgerDB database directory; records are not kept when empty",
			EnvVars: []string{"YAMLMEND_DB"},
		},
		&cli.BoolFlag{
			Name:  "cache",
			Usage: "Reuse earlier successful results for identical input (requires --db)",
		},
		&cli.IntFlag{
			Name:  "pool-size",
			Usage: "Number of inputs formatted concurrently",
			Value: 4,
		},
	}
}

// envFileFromArgs finds the --env-file value before flags are parsed, so the
// file can populate flag environment variables.
func envFileFromArgs(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "--env-file" || arg == "-env-file":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(arg, "--env-file="):
			return strings.TrimPrefix(arg, "--env-file=")
		case strings.HasPrefix(arg, "-env-file="):
			return strings.TrimPrefix(arg, "-env-file=")
		}
	}
	return defaultEnvFile
}

// loadEnvFile loads path without overriding variables already set. A
// missing file is ignored.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func aiConfigFromFlags(c *cli.Context) *ai.Config {
	return ai.NewConfig(
		ai.WithProvider(c.String("provider")),
		ai.WithHost(c.String("host")),
		ai.WithModel(c.String("model")),
		ai.WithAPIKey(c.String("api-key")),
		ai.WithTemperature(c.Float64("temperature")),
		ai.WithMaxTokens(c.Int("max-tokens")),
		ai.WithRetries(c.Int("max-retries"), c.Duration("retry-delay")),
	)
}

func openService(c *cli.Context) (*yamlmend.Service, error) {
	aiConfig := aiConfigFromFlags(c)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts := []yamlmend.ServiceOption{
		yamlmend.WithAIConfig(aiConfig),
		yamlmend.WithOracle(c.String("parser")),
		yamlmend.WithPromptBase(prompt.ResolveBase(c.String("config-path"))),
	}
	if db := c.String("db"); db != "" {
		opts = append(opts, yamlmend.WithDatabase(db))
	} else if c.Bool("cache") {
		return nil, errors.New("--cache requires --db")
	}
	return yamlmend.NewService(opts...)
}

func serveCommand(c *cli.Context) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	p, err := svc.NewPipeline(
		pipeline.WithCache(c.Bool("cache")),
		pipeline.WithPoolSize(c.Int("pool-size")),
	)
	if err != nil {
		return err
	}
	defer p.Release()

	srv, err := svc.NewServer(p,
		server.WithPort(c.Int("port")),
		server.WithMaxBodyBytes(c.Int64("max-body")),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(c.App.ErrWriter, "Listening on %s\n", srv.Addr())
	fmt.Fprintf(c.App.ErrWriter, "Provider: %s (%s)\n", c.String("provider"), c.String("model"))
	return srv.Run(ctx)
}

// formattedPath maps input.txt to input.formatted.yaml in the same directory.
func formattedPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".formatted.yaml"
}

func formatCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("at least one input file is required")
	}

	inputs := make([]pipeline.Input, 0, c.NArg())
	for _, path := range c.Args().Slice() {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		inputs = append(inputs, pipeline.Input{Source: path, Content: string(content)})
	}

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	p, err := svc.NewPipeline(
		pipeline.WithCache(c.Bool("cache")),
		pipeline.WithPoolSize(c.Int("pool-size")),
		pipeline.WithProgress(c.App.ErrWriter),
	)
	if err != nil {
		return err
	}
	defer p.Release()

	failed := 0
	for i, res := range p.FormatBatch(context.Background(), inputs) {
		if res.Err != nil {
			failed++
			fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", res.Input.Source, res.Err)
			continue
		}

		if c.Bool("stdout") {
			if i > 0 {
				fmt.Fprintln(c.App.Writer, "---")
			}
			fmt.Fprintln(c.App.Writer, res.Record.Output)
			continue
		}

		out := formattedPath(res.Input.Source)
		if err := os.WriteFile(out, []byte(res.Record.Output+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		fmt.Fprintf(c.App.ErrWriter, "%s -> %s\n", res.Input.Source, out)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(inputs))
	}
	return nil
}

func repairCommand(c *cli.Context) error {
	var (
		content []byte
		err     error
	)
	if path := c.Args().First(); path != "" && path != "-" {
		content, err = os.ReadFile(path)
	} else {
		content, err = io.ReadAll(c.App.Reader)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	svc, err := yamlmend.NewService(yamlmend.WithOracle(c.String("parser")))
	if err != nil {
		return err
	}
	defer svc.Close()

	fixed, err := svc.Repairer().Repair(string(content))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, fixed)
	return nil
}

func historyCommand(c *cli.Context) error {
	svc, err := yamlmend.NewService(yamlmend.WithDatabase(c.String("db")))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer svc.Close()

	records, err := svc.Records()
	if err != nil {
		return err
	}
	list, err := records.ListRecords(context.Background(), c.Int("limit"))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tREPAIRED\tUPDATED\tSOURCE\tMODEL")
	for _, r := range list {
		fmt.Fprintf(w, "%d\t%s\t%t\t%s\t%s\t%s\n",
			r.Id, r.Status, r.Repaired, r.UpdatedAt.Format(time.RFC3339), r.Source, r.Model)
	}
	return w.Flush()
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
