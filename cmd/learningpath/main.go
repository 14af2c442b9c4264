// Command learningpath runs the learning-path MCP server, or drives the
// generation pipeline directly from the command line for local testing.
//
// Optional environment variables:
//
//	LEARNINGPATH_LOG_LEVEL   - Log level: debug, info, warn, error (default: info)
//	LEARNINGPATH_CONFIG      - Path to a TOML config file
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kiet-ta/learning-path-repo/internal/config"
	"github.com/kiet-ta/learning-path-repo/internal/domain"
	"github.com/kiet-ta/learning-path-repo/internal/mcp"
	"github.com/kiet-ta/learning-path-repo/internal/pipeline"
	"github.com/kiet-ta/learning-path-repo/internal/store"
	"github.com/kiet-ta/learning-path-repo/internal/tools/path"
	"github.com/kiet-ta/learning-path-repo/internal/tools/repository"
)

// Version is set via ldflags at build time.
var Version = "dev"

var configPath string

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "learningpath: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "learningpath",
		Short: "Generate and serve personalized repository learning paths",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	root.AddCommand(newServeCommand(), newGenerateCommand(), newSeedCommand())
	return root
}

func loadConfigAndLogger() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	return cfg, logger, nil
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfigAndLogger()
			if err != nil {
				return err
			}

			version := cfg.Server.Version
			if Version != "dev" {
				version = Version
			}
			logger.Info("starting learningpath", "version", version)

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			repos := store.NewRepositoryStore()
			overrides := store.NewOverrideStore()
			paths := store.NewPathStore()
			generator := pipeline.NewGenerator(repos, overrides, logger)

			registry := mcp.NewRegistry()
			registry.Register(path.NewGenerate(generator, paths))
			registry.Register(path.NewApplyOverride(overrides))
			registry.Register(repository.NewList(repos))
			registry.Register(repository.NewAdd(repos))

			server := mcp.NewServer(registry, mcp.ServerInfo{
				Name:    cfg.Server.Name,
				Version: version,
			}, logger)
			return server.Run(ctx)
		},
	}
}

func newGenerateCommand() *cobra.Command {
	var learnerID, name, seedPath string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one learning path against a seed fixture and print the result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfigAndLogger()
			if err != nil {
				return err
			}

			repos := store.NewRepositoryStore()
			if seedPath != "" {
				if err := loadSeedFile(cmd.Context(), repos, seedPath); err != nil {
					return fmt.Errorf("loading seed file: %w", err)
				}
			}
			overrides := store.NewOverrideStore()
			generator := pipeline.NewGenerator(repos, overrides, logger)

			result, err := generator.Generate(cmd.Context(), pipeline.GenerateRequest{
				LearnerID:             learnerID,
				Name:                  name,
				AllowParallelLearning: cfg.Generation.AllowParallelLearning,
				MaxParallelNodes:      cfg.Generation.MaxParallelNodes,
			})
			if err != nil {
				return fmt.Errorf("generating path: %w", err)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	cmd.Flags().StringVar(&learnerID, "learner", "cli-learner", "learner id the path is generated for")
	cmd.Flags().StringVar(&name, "name", "Generated Path", "display name for the generated path")
	cmd.Flags().StringVar(&seedPath, "seed", "", "path to a JSON seed file of repositories")
	return cmd
}

func newSeedCommand() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a starter repository fixture that the generate command can load",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating seed file: %w", err)
			}
			defer f.Close()

			enc := json.NewEncoder(f)
			enc.SetIndent("", "  ")
			return enc.Encode(starterFixture())
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "seed.json", "output path for the seed fixture")
	return cmd
}

// seedRepository is the on-disk shape loaded by --seed and written by seed.
type seedRepository struct {
	Name                 string         `json:"name"`
	Path                 string         `json:"path"`
	PrimaryLanguage      string         `json:"primary_language"`
	Description          string         `json:"description,omitempty"`
	LinesOfCode          int            `json:"lines_of_code,omitempty"`
	FileCount            int            `json:"file_count,omitempty"`
	Dependencies         []string       `json:"dependencies,omitempty"`
	HasTests             bool           `json:"has_tests,omitempty"`
	HasCI                bool           `json:"has_ci,omitempty"`
	HasDocumentation     bool           `json:"has_documentation,omitempty"`
	LanguageDistribution map[string]int `json:"language_distribution,omitempty"`
	Skills               []struct {
		Type  string `json:"type"`
		Level string `json:"level"`
	} `json:"skills,omitempty"`
	Topics []struct {
		Name         string   `json:"name"`
		Category     string   `json:"category"`
		Difficulty   int      `json:"difficulty"`
		ParentTopics []string `json:"parent_topics,omitempty"`
	} `json:"topics,omitempty"`
}

func loadSeedFile(ctx context.Context, repos *store.RepositoryStore, seedPath string) error {
	b, err := os.ReadFile(seedPath)
	if err != nil {
		return err
	}
	var seeds []seedRepository
	if err := json.Unmarshal(b, &seeds); err != nil {
		return fmt.Errorf("parsing seed file: %w", err)
	}
	for _, s := range seeds {
		meta, err := domain.NewRepositoryMetadata(s.LinesOfCode, s.FileCount, s.Dependencies, s.HasTests, s.HasCI, s.HasDocumentation, s.LanguageDistribution)
		if err != nil {
			return err
		}
		skills := make([]domain.Skill, 0, len(s.Skills))
		for _, sk := range s.Skills {
			skill, err := domain.NewSkill(domain.SkillType(sk.Type), domain.SkillLevel(sk.Level))
			if err != nil {
				return err
			}
			skills = append(skills, skill)
		}
		topics := make([]domain.Topic, 0, len(s.Topics))
		for _, tp := range s.Topics {
			topic, err := domain.NewTopic(tp.Name, domain.TopicCategory(tp.Category), domain.TopicDifficulty(tp.Difficulty), tp.ParentTopics)
			if err != nil {
				return err
			}
			topics = append(topics, topic)
		}
		repo, err := domain.NewRepository(s.Name, s.Path, s.PrimaryLanguage, s.Description, meta, skills, topics)
		if err != nil {
			return err
		}
		if err := repos.Save(ctx, repo); err != nil {
			return err
		}
	}
	return nil
}

func starterFixture() []seedRepository {
	fixture := []seedRepository{
		{
			Name: "html-css-basics", Path: "example/html-css-basics", PrimaryLanguage: "HTML", LinesOfCode: 200,
		},
		{
			Name: "react-fundamentals", Path: "example/react-fundamentals", PrimaryLanguage: "TypeScript", LinesOfCode: 4000,
		},
		{
			Name: "go-rest-api", Path: "example/go-rest-api", PrimaryLanguage: "Go", LinesOfCode: 8000,
		},
	}
	fixture[0].Skills = append(fixture[0].Skills, struct {
		Type  string `json:"type"`
		Level string `json:"level"`
	}{Type: "frontend", Level: "basic"})
	fixture[1].Skills = append(fixture[1].Skills, struct {
		Type  string `json:"type"`
		Level string `json:"level"`
	}{Type: "frontend", Level: "intermediate"})
	fixture[2].Skills = append(fixture[2].Skills, struct {
		Type  string `json:"type"`
		Level string `json:"level"`
	}{Type: "backend", Level: "advanced"})
	return fixture
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
