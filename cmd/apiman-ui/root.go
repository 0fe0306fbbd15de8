package main

import (
	"sync"

	"github.com/spf13/cobra"

	"github.com/apiman/apiman-ui/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:               logging.AppName,
	Short:             "apiman-ui serves the API Manager organization console.",
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: bootstrapCommand,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, versionCmd)
}

// commandExecutionContext describes the running command for the fatal error path.
type commandExecutionContext struct {
	CommandPath       string
	UsesStructuredLog bool
}

var (
	executionMu  sync.RWMutex
	executionCtx commandExecutionContext
)

func setCommandExecutionContext(ctx commandExecutionContext) {
	executionMu.Lock()
	executionCtx = ctx
	executionMu.Unlock()
}

func resetCommandExecutionContext() {
	setCommandExecutionContext(commandExecutionContext{})
}

func currentCommandExecutionContext() commandExecutionContext {
	executionMu.RLock()
	defer executionMu.RUnlock()
	return executionCtx
}

// commandUsesStructuredLogging reports commands that run long enough to log.
// Short informational commands print plain text.
func commandUsesStructuredLogging(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "serve", "migrate":
		return true
	default:
		return false
	}
}

func bootstrapCommand(cmd *cobra.Command, _ []string) error {
	ctx := commandExecutionContext{
		CommandPath:       cmd.CommandPath(),
		UsesStructuredLog: commandUsesStructuredLogging(cmd),
	}
	setCommandExecutionContext(ctx)
	if !ctx.UsesStructuredLog {
		return nil
	}
	if _, err := logging.Bootstrap(ctx.CommandPath, cmd.ErrOrStderr()); err != nil {
		return configError(err)
	}
	return nil
}
