package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"ollamastub/internal/config"
	"ollamastub/internal/server"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeConfigError indicates an unreadable or invalid configuration.
	ExitCodeConfigError = 2
	// ExitCodeBindError indicates the stub could not listen on any port.
	ExitCodeBindError = 3
)

// rootCmd represents the base command for the ollama-stub application.
// Run without subcommands it starts the stub server and the operator console.
var rootCmd = &cobra.Command{
	Use:   "ollama-stub",
	Short: "Local mock of the Ollama generate endpoint",
	Long: `ollama-stub answers POST /api/generate the way an Ollama server would,
but every response is scripted by an operator at the console.

Queue actions (move, stay, talk, ...), long-term goals and short-term plans,
then let the game bot request them. Nothing is sent to a real model.`,
	Args: cobra.NoArgs,
	RunE: runServe,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	// This is useful for providing cleaner error output to the user.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	// SetVersionTemplate defines a custom template for displaying the version.
	// This is used when the --version flag is invoked.
	rootCmd.SetVersionTemplate(`{{printf "ollama-stub version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	var configErr config.ConfigurationError
	if errors.As(err, &configErr) {
		return ExitCodeConfigError
	}

	var configErrs config.ConfigurationErrorCollection
	if errors.As(err, &configErrs) {
		return ExitCodeConfigError
	}

	var bindErr *server.BindError
	if errors.As(err, &bindErr) {
		return ExitCodeBindError
	}

	// Default to general error
	return ExitCodeError
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	serveOpts.addFlags(rootCmd.Flags())
}
