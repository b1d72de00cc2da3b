// @title Sonjutoktok Backend API
// @version 1.0
// @description Phone-number keyed profile API for the Sonjutoktok mobile app. Identity is verified with AWS Cognito tokens.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Cognito ID or access token, as "Bearer <token>"

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "SONJUTOKTOK_BACK-END/docs" // This is required for swagger
)

func main() {
	root := &cobra.Command{
		Use:           "sonjutoktok",
		Short:         "Sonjutoktok profile backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serve := newServeCmd()
	root.AddCommand(serve, newMigrateCmd(), newDevTokenCmd())
	// Running the binary without a subcommand starts the server
	root.RunE = serve.RunE

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
