package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agenthands/folio/internal/chat"
	"github.com/agenthands/folio/internal/config"
	"github.com/agenthands/folio/internal/driver"
	"github.com/agenthands/folio/internal/geo"
	"github.com/agenthands/folio/internal/logging"
	"github.com/agenthands/folio/internal/navigation"
	"github.com/agenthands/folio/internal/skills"
)

// Version is set at build time.
var Version = "dev"

func main() {
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	logLevel   string
}

func (o *options) load() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Server.Environment, o.logLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "folioctl",
		Short: "Operator tool for the folio portfolio service",
		Long: `folioctl talks to a running folio service and works with its data files.

It provides:
- an interactive chat terminal against the service
- free-text to page section mapping
- map outline projection for GeoJSON files
- skills graph rendering and seeding into Neo4j`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "config/config.toml", "Config file path (TOML)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		chatCmd(opts),
		navCmd(),
		mapCmd(),
		skillsCmd(),
		seedGraphCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "folioctl version %s\n", Version)
			},
		},
	)
	return cmd
}

func chatCmd(opts *options) *cobra.Command {
	var backendURL string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open an interactive chat terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if backendURL == "" {
				backendURL = cfg.Chat.BackendURL
			}
			backend := chat.NewHTTPBackend(backendURL, &http.Client{Timeout: 60 * time.Second}, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return newTerminal(chat.NewSession(backend), cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&backendURL, "url", "", "Chat backend base URL (defaults to chat.backend_url)")
	return cmd
}

func navCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nav <query>",
		Short: "Show which page section a query maps to",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			section, ok := navigation.MapQueryToSection(strings.Join(args, " "))
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "no matching section")
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), section)
		},
	}
}

func mapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "map <geojson>",
		Short: "Project a GeoJSON outline and its cities onto the map canvas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			fc, err := geo.ParseFeatureCollection(data)
			if err != nil {
				return err
			}
			proj, err := geo.NewProjector().Project(fc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "path: %s\n", proj.OutlinePath)
			names := make([]string, 0, len(proj.CityPoints))
			for name := range proj.CityPoints {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				pt := proj.CityPoints[name]
				fmt.Fprintf(out, "%s: %.1f,%.1f\n", name, pt.X, pt.Y)
			}
			return nil
		},
	}
}

func skillsCmd() *cobra.Command {
	var (
		search   string
		collapse []string
	)

	cmd := &cobra.Command{
		Use:   "skills <skills-graph.json>",
		Short: "Print a skills graph as an outline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state := skills.NewState(cmd.Context(), skills.FileSource{Path: args[0]})
			if err := state.Wait(cmd.Context()); err != nil {
				return err
			}
			for _, id := range collapse {
				state.ToggleCategory(id)
			}
			if search != "" {
				state.FilterNodes(search)
			}
			return state.Render(skills.TreeRenderer{W: cmd.OutOrStdout(), Collapsed: state.Collapsed()})
		},
	}
	cmd.Flags().StringVarP(&search, "search", "q", "", "Only show nodes matching the term")
	cmd.Flags().StringSliceVar(&collapse, "collapse", nil, "Category ids to collapse")
	return cmd
}

func seedGraphCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-graph <skills-graph.json>",
		Short: "Replace the skills graph stored in Neo4j",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			g, err := skills.FileSource{Path: args[0]}.Load(ctx)
			if err != nil {
				return err
			}

			d, err := driver.NewNeo4jDriver(ctx, cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password, logger)
			if err != nil {
				return err
			}
			defer d.Close(context.Background())

			if err := skills.Seed(ctx, d, g); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d nodes and %d edges\n", len(g.Nodes), len(g.Edges))
			return nil
		},
	}
}
