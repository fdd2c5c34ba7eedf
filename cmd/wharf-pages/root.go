package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/iver-wharf/wharf-core/v2/pkg/app"
	"github.com/iver-wharf/wharf-core/v2/pkg/logger"
	"github.com/iver-wharf/wharf-core/v2/pkg/logger/consolepretty"
	"github.com/iver-wharf/wharf-pages/internal/flagtypes"
	"github.com/iver-wharf/wharf-pages/internal/ghactions"
	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"
)

var log = logger.NewScoped("WHARF-PAGES")

var isLoggingInitialized bool

var rootFlags = struct {
	loglevel flagtypes.LogLevel
}{
	loglevel: flagtypes.LogLevel(logger.LevelInfo),
}

var rootCmd = &cobra.Command{
	SilenceErrors: true,
	SilenceUsage:  true,
	Use:           "wharf-pages",
	Short:         "Publishes a static build directory to a pages hosting service",
	Long: `Publishes a static build directory to a pages hosting service,
and mirrors the resulting deployment into GitHub's deployments API.

Meant to be run as a step in GitHub Actions, where inputs are read from
the INPUT_* environment variables and outputs are written to the file
pointed to by GITHUB_OUTPUT. Outside of GitHub Actions, use the flags
instead and the result is printed to STDOUT.`,
}

func execute(version app.Version) {
	rootCmd.Version = versionString(version)
	if err := rootCmd.Execute(); err != nil {
		initLoggingIfNeeded()
		log.Error().Messagef("Run failed: %s", err)
		action := githubactions.New()
		if ghactions.NewEnv(action).Actions {
			ghactions.NewRunner(action).Error(err.Error())
		}
		os.Exit(1)
	}
}

func versionString(v app.Version) string {
	var sb strings.Builder
	if v.Version != "" {
		sb.WriteString(v.Version)
	} else {
		sb.WriteString("v0.0.0")
	}
	if v.BuildRef != 0 {
		fmt.Fprintf(&sb, " #%d", v.BuildRef)
	}
	if v.BuildGitCommit != "" && v.BuildGitCommit != "HEAD" {
		fmt.Fprintf(&sb, " (%s)", v.BuildGitCommit)
	}
	if v.BuildDate != (time.Time{}) {
		sb.WriteString(" built ")
		sb.WriteString(v.BuildDate.Format(time.RFC1123))
	}
	return sb.String()
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.InitDefaultVersionFlag()
	rootCmd.PersistentFlags().VarP(&rootFlags.loglevel, "loglevel", "l", "Show debug information")
	rootCmd.RegisterFlagCompletionFunc("loglevel", flagtypes.CompleteLogLevel)
}

func initLoggingIfNeeded() {
	if !isLoggingInitialized {
		initLogging()
	}
}

func initLogging() {
	level := rootFlags.loglevel.Level()
	logConfig := consolepretty.DefaultConfig
	if level != logger.LevelDebug {
		logConfig.DisableCaller = true
		logConfig.DisableDate = true
		logConfig.ScopeMinLengthAuto = false
	}
	logger.AddOutput(level, consolepretty.New(logConfig))
	log.Debug().WithStringer("loglevel", &rootFlags.loglevel).Message("Setting log-level.")
	isLoggingInitialized = true
}
