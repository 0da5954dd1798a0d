package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"task-planner/pkg/gcalendar"
)

func authCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize external calendars",
	}
	cmd.AddCommand(authGoogleCmd(opts))
	return cmd
}

func authGoogleCmd(opts *options) *cobra.Command {
	var credentialsPath, tokenPath string

	cmd := &cobra.Command{
		Use:   "google",
		Short: "Authorize read access to Google Calendar and save the token",
		Long: `Run this once with OAuth Desktop App credentials. Open the printed URL,
sign in, paste the authorization code back and the token is written to
google_calendar.token_path, where the API server picks it up on restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.build()
			if err != nil {
				return err
			}
			if credentialsPath == "" {
				credentialsPath = a.cfg.GoogleCalendar.CredentialsPath
			}
			if tokenPath == "" {
				tokenPath = a.cfg.GoogleCalendar.TokenPath
			}
			if credentialsPath == "" {
				return fmt.Errorf("--credentials or google_calendar.credentials_path is required")
			}

			data, err := os.ReadFile(credentialsPath)
			if err != nil {
				return fmt.Errorf("failed to read credentials file %q: %w", credentialsPath, err)
			}
			auth, err := gcalendar.NewAuthorizer(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "1. Open this URL in a browser and sign in:")
			fmt.Fprintln(out)
			fmt.Fprintln(out, auth.AuthCodeURL("planner"))
			fmt.Fprintln(out)
			fmt.Fprint(out, "2. Paste the authorization code here: ")

			code, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("no authorization code entered: %v", err)
			}

			tok, err := auth.Exchange(cmd.Context(), code)
			if err != nil {
				return err
			}
			if err := gcalendar.SaveToken(tokenPath, tok); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nToken saved to %s\n", tokenPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&credentialsPath, "credentials", "", "OAuth Desktop App credentials (default: google_calendar.credentials_path)")
	cmd.Flags().StringVar(&tokenPath, "token", "", "Where to write the token (default: google_calendar.token_path)")

	return cmd
}
