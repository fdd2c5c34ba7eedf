package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/iver-wharf/wharf-pages/internal/flagtypes"
	"github.com/iver-wharf/wharf-pages/internal/ghactions"
	"github.com/iver-wharf/wharf-pages/internal/inputs"
	"github.com/iver-wharf/wharf-pages/pkg/ghdeploy"
	"github.com/iver-wharf/wharf-pages/pkg/pages"
	"github.com/iver-wharf/wharf-pages/pkg/pagesapi"
	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"
	"gopkg.in/typ.v4/slices"
)

// Input names, matching the action's inputs.
const (
	inputProjectName      = "projectName"
	inputDirectory        = "directory"
	inputWorkingDirectory = "workingDirectory"
	inputPagesToken       = "pagesToken"
	inputGitHubToken      = "gitHubToken"
	inputBranch           = "branch"
	inputDatabaseID       = "databaseId"
)

const inputEnvPrefix = "WHARF_PAGES_INPUT_"

var (
	colorResultSuccess    = color.New(color.FgGreen, color.Bold)
	colorResultFailed     = color.New(color.FgRed, color.Bold)
	colorResultInProgress = color.New(color.FgYellow, color.Bold)
	colorResultURL        = color.New(color.FgCyan)
)

var deployFlags = struct {
	projectName      string
	workingDirectory string
	pagesToken       string
	gitHubToken      string
	branch           string
	databaseID       string
	backend          flagtypes.Backend
	ignoreFile       string
}{}

var deployCmd = &cobra.Command{
	Use:   "deploy [directory]",
	Short: "Packages a directory and deploys it to the pages hosting service",
	Long: `Packages the directory into a zip archive and uploads it to the pages
hosting service, then waits for the deployment info and reports it.

Each input is read from the first of the following that is set:

1. Command-line flag, or the "directory" argument.

2. GitHub Actions input, from the INPUT_<NAME> environment variable.

3. Environment variable WHARF_PAGES_INPUT_<NAME>.

If a GitHub token is given, a GitHub deployment is created for the ref and
is marked as successful once the hosting service has returned the deployment.

The branch used to tell production from preview deployments is read from the
"branch" input, then GITHUB_HEAD_REF, then GITHUB_REF_NAME, and finally from
the local Git repository.`,
	Args: cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveFilterDirs
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("backend") {
			cfg.Deploy.Backend = pages.Backend(deployFlags.backend)
		}
		if cmd.Flags().Changed("ignore-file") {
			cfg.Deploy.IgnoreFile = deployFlags.ignoreFile
		}

		action := githubactions.New()
		r := inputs.NewReader(
			flagInputSource(cmd, slices.SafeGet(args, 0)),
			inputs.NewActionsSource(action),
			inputs.NewOSEnvSource(inputEnvPrefix))
		in := deployInputs{
			projectName:      r.Required(inputProjectName),
			directory:        r.Required(inputDirectory),
			pagesToken:       r.Required(inputPagesToken),
			workingDirectory: r.OptionalOr(inputWorkingDirectory, ""),
			gitHubToken:      r.Optional(inputGitHubToken).ValueOrZero(),
			branch:           r.Optional(inputBranch).ValueOrZero(),
			databaseID:       r.Optional(inputDatabaseID).ValueOrZero(),
		}
		if errs := r.Errs(); len(errs) > 0 {
			for _, err := range errs {
				log.Error().WithError(err).Message("Invalid input.")
			}
			return errs.ErrOrNil()
		}
		return runDeploy(cfg, action, in)
	},
}

type deployInputs struct {
	projectName      string
	directory        string
	pagesToken       string
	workingDirectory string
	gitHubToken      string
	branch           string
	databaseID       string
}

func runDeploy(cfg Config, action *githubactions.Action, in deployInputs) error {
	workDir, err := filepath.Abs(in.workingDirectory)
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	dir := filepath.Join(workDir, in.directory)

	env := ghactions.NewEnv(action)
	git := newGitLookup(workDir)
	branch := resolveBranch(in.branch, env, git)
	ref := resolveRef(branch, env, git)
	log.Debug().
		WithString("dir", dir).
		WithString("branch", branch).
		WithString("ref", ref).
		Message("Resolved inputs.")

	client, err := pagesapi.NewClient(cfg.Pages, in.pagesToken)
	if err != nil {
		return err
	}
	runner := ghactions.NewRunner(action)
	deployer := pages.Deployer{
		Config:  cfg.Deploy,
		API:     client,
		Outputs: runner,
		Summary: runner,
	}
	if tracker := newTracker(cfg.GitHub, in.gitHubToken, env, git); tracker != nil {
		deployer.Tracker = tracker
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	result, err := deployer.Deploy(ctx, pages.Request{
		ProjectName: in.projectName,
		DatabaseID:  in.databaseID,
		Directory:   dir,
		Branch:      branch,
		Ref:         ref,
	})
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}

func newTracker(cfg ghdeploy.Config, token string, env ghactions.Env, git *gitLookup) *ghdeploy.Tracker {
	if token == "" {
		return nil
	}
	repo, err := resolveRepository(env, git)
	if err != nil {
		log.Warn().WithError(err).Message("Unable to tell GitHub repository, skipping GitHub deployment.")
		return nil
	}
	tracker, err := ghdeploy.NewTracker(cfg, token, repo)
	if err != nil {
		log.Warn().WithError(err).Message("Failed to create GitHub client, skipping GitHub deployment.")
		return nil
	}
	log.Debug().WithStringer("repo", repo).Message("Using GitHub deployments.")
	return tracker
}

func flagInputSource(cmd *cobra.Command, dirArg string) inputs.Source {
	values := map[string]string{}
	if dirArg != "" {
		values[inputDirectory] = dirArg
	}
	flags := []struct {
		flag  string
		input string
		value string
	}{
		{"project-name", inputProjectName, deployFlags.projectName},
		{"working-directory", inputWorkingDirectory, deployFlags.workingDirectory},
		{"pages-token", inputPagesToken, deployFlags.pagesToken},
		{"github-token", inputGitHubToken, deployFlags.gitHubToken},
		{"branch", inputBranch, deployFlags.branch},
		{"database-id", inputDatabaseID, deployFlags.databaseID},
	}
	for _, f := range flags {
		if cmd.Flags().Changed(f.flag) {
			values[f.input] = f.value
		}
	}
	return inputs.SourceMap{Values: values, Label: "command-line flags"}
}

func printResult(result pages.Result) {
	var statusColor *color.Color
	switch result.Status {
	case pages.StatusSuccess:
		statusColor = colorResultSuccess
	case pages.StatusFailed:
		statusColor = colorResultFailed
	default:
		statusColor = colorResultInProgress
	}
	fmt.Printf("%s %s %s\n",
		statusColor.Sprint(result.Status.String()+":"),
		result.Environment.Label,
		colorResultURL.Sprint(result.Deployment.URL))
	if result.Alias != "" && result.Alias != result.Deployment.URL {
		fmt.Printf("  Branch preview: %s\n", colorResultURL.Sprint(result.Alias))
	}
}

func init() {
	rootCmd.AddCommand(deployCmd)

	flags := deployCmd.Flags()
	flags.StringVarP(&deployFlags.projectName, "project-name", "p", "", "Name of the pages project")
	flags.StringVarP(&deployFlags.workingDirectory, "working-directory", "w", "", "Directory that the directory argument is relative to")
	flags.StringVar(&deployFlags.pagesToken, "pages-token", "", "Token for the pages hosting API")
	flags.StringVar(&deployFlags.gitHubToken, "github-token", "", "Token for GitHub. Enables GitHub deployments")
	flags.StringVarP(&deployFlags.branch, "branch", "b", "", "Branch to deploy as, overriding the detected branch")
	flags.StringVar(&deployFlags.databaseID, "database-id", "", "Database ID to scope the project to")
	flags.Var(&deployFlags.backend, "backend", `Hosting backend variant, "managed" or "direct" (default from config)`)
	flags.StringVar(&deployFlags.ignoreFile, "ignore-file", "", "File in .gitignore syntax of paths to leave out of the archive (default from config)")
	deployCmd.RegisterFlagCompletionFunc("backend", flagtypes.CompleteBackend)
	deployCmd.RegisterFlagCompletionFunc("working-directory", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveFilterDirs
	})
}
