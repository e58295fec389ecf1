package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/curl-logger/internal/app"
)

var (
	//nolint:gochecknoglobals // Filled by Cobra while parsing the format command line.
	formatRequestFlags app.RequestFlags

	//nolint:gochecknoglobals // Filled by Cobra while parsing the send command line.
	sendRequestFlags app.RequestFlags

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	formatCmd = &cobra.Command{
		Use:   "format METHOD URI",
		Short: "Print the curl command for an HTTP request",
		Long: `Print the curl command for an HTTP request without sending it.

METHOD is one of GET, POST, PUT, PATCH, DELETE (case-insensitive).
A URI without a scheme is resolved against base_uri.

Example:
curl-logger format POST /users -H 'Content-Type: application/json' -d '{"name":"Ann"}'`,
		Args: cobra.ExactArgs(2), //nolint:mnd // METHOD and URI.
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.ExecuteFormatCommand(cmd.Context(), appConfig, cmd.OutOrStdout(), args[0], args[1], formatRequestFlags)
		},
	}

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	sendCmd = &cobra.Command{
		Use:   "send METHOD URI",
		Short: "Send an HTTP request, logging it as a curl command",
		Long: `Send an HTTP request and print the response status and body.

The request is logged as a curl command when curl logging is enabled.

Example:
curl-logger send GET https://httpbin.org/get -q page=2 --environment development`,
		Args: cobra.ExactArgs(2), //nolint:mnd // METHOD and URI.
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.ExecuteSendCommand(cmd.Context(), appConfig, cmd.OutOrStdout(), args[0], args[1], sendRequestFlags)
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	addRequestFlags(formatCmd, &formatRequestFlags)
	addRequestFlags(sendCmd, &sendRequestFlags)

	rootCmd.AddCommand(formatCmd, sendCmd)
}

func addRequestFlags(cmd *cobra.Command, rf *app.RequestFlags) {
	flags := cmd.Flags()

	flags.StringArrayVarP(&rf.Headers, "header", "H", nil, "request header 'Name: value' (repeatable).")
	flags.StringArrayVarP(&rf.Query, "query", "q", nil, "query parameter 'key=value' (repeatable).")
	flags.StringVarP(&rf.Data, "data", "d", "", "raw request body.")
	flags.StringArrayVarP(&rf.Fields, "field", "F", nil, "form field 'key=value', 'key=@path' uploads a file (repeatable).")
	flags.StringVarP(&rf.User, "user", "u", "", "credentials 'user:password'.")
	flags.BoolVar(&rf.Digest, "digest", false, "use digest authentication for --user.")
	flags.StringVar(&rf.Proxy, "proxy", "", "proxy '[user:password@]host:port'.")
}
