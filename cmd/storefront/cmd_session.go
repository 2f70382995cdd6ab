package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(st *cliState) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and move the guest cart into the account cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := st.app.storefront.Login(cmd.Context(), email, password)
			if err != nil {
				return st.finish(cmd.OutOrStdout(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "session: %s (pending local lines: %d)\n", out.Session, out.PendingLines)
			return st.finish(cmd.OutOrStdout(), nil)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newVerifyOTPCmd(st *cliState) *cobra.Command {
	var phone, code string
	cmd := &cobra.Command{
		Use:   "verify-otp",
		Short: "Log in with a one-time code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := st.app.storefront.VerifyOTP(cmd.Context(), phone, code)
			if err != nil {
				return st.finish(cmd.OutOrStdout(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "session: %s (pending local lines: %d)\n", out.Session, out.PendingLines)
			return st.finish(cmd.OutOrStdout(), nil)
		},
	}
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&code, "code", "", "One-time code")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}

func newLogoutCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out (the account cart stays on the server)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := st.app.storefront.Logout(cmd.Context())
			if err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			}
			return st.finish(cmd.OutOrStdout(), err)
		},
	}
}
