// Package cli provides the command-line interface for the pricefinder application.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/ezinulo/pricefinder/internal/app"
)

// Global reference shared by all commands for the lifetime of one invocation.
var globalApp *app.Application

// SetApp stores the Application for commands to access.
func SetApp(cmd *cobra.Command, a *app.Application) {
	globalApp = a
}

// GetAppFromCmd retrieves the Application for the running command.
func GetAppFromCmd(cmd *cobra.Command) *app.Application {
	return globalApp
}
