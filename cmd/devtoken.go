package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"SONJUTOKTOK_BACK-END/internal/auth"
	"SONJUTOKTOK_BACK-END/internal/config"
)

func newDevTokenCmd() *cobra.Command {
	var (
		subject string
		phone   string
	)

	cmd := &cobra.Command{
		Use:   "devtoken",
		Short: "Print a bearer token accepted with AUTH_MODE=dev",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Auth.Mode != config.AuthModeDev {
				return fmt.Errorf("devtoken needs AUTH_MODE=%s", config.AuthModeDev)
			}

			extra := map[string]any{"token_use": "id"}
			if phone != "" {
				extra["phone_number"] = phone
			}
			token, err := auth.GenerateDevToken(subject, cfg.Auth.Dev, extra)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "sub", "", "subject (Cognito sub) to put in the token")
	cmd.Flags().StringVar(&phone, "phone", "", "optional phone_number claim")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}
