package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rpupo63/portfolio-site-backend/client"
	"github.com/rpupo63/portfolio-site-backend/localcache"
	"github.com/rpupo63/portfolio-site-backend/session"
	"github.com/rpupo63/portfolio-site-backend/syncer"
)

// app carries the wired client stack for one CLI invocation.
type app struct {
	cache     *localcache.Store
	api       *client.Client
	session   *session.Manager
	workspace *syncer.Workspace
}

var (
	apiURL    string
	cachePath string
	verbose   bool

	current *app
)

func defaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "portfolio-admin.db"
	}
	return filepath.Join(home, ".portfolio-admin.db")
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "portfolio-admin",
		Short: "Manage portfolio content against the API, with a local fallback when it is down",
		Long: `portfolio-admin edits projects, skill categories, skills and contact
messages through the portfolio API. When the API is unreachable, writes are
kept in a local cache and shown with a "(saved locally)" marker.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

			cache, err := localcache.Open(cachePath)
			if err != nil {
				return err
			}

			api := client.New(apiURL,
				client.WithTokenSource(func() string {
					token, err := cache.Token()
					if err != nil {
						return ""
					}
					return token
				}),
				client.WithAuthErrorHook(func() {
					if err := cache.ClearToken(); err != nil {
						log.Error().Err(err).Msg("failed to drop rejected token")
					}
				}),
			)

			current = &app{
				cache:     cache,
				api:       api,
				session:   session.NewManager(api, cache),
				workspace: syncer.NewWorkspace(api, cache),
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if current != nil {
				current.session.Close()
				current.cache.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:5000", "base URL of the portfolio API")
	root.PersistentFlags().StringVar(&cachePath, "cache", defaultCachePath(), "path of the local fallback cache")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newRegisterCmd(),
		newRefreshCmd(),
		newProjectsCmd(),
		newCategoriesCmd(),
		newSkillsCmd(),
		newMessagesCmd(),
		newThemeCmd(),
	)
	return root
}

// marker tags output rows served from the fallback cache.
func marker(src syncer.Source) string {
	if src == syncer.SourceFallback {
		return " (saved locally)"
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
