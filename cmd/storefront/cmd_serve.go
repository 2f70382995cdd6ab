package main

import (
	"strings"

	"storefront/internal/server"

	"github.com/spf13/cobra"
)

func newServeCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the cart over local HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := server.New(st.app.storefront, st.app.notices, st.logger)
			err := srv.Start(cmd.Context(), listenAddr(st.cfg.Port))
			return st.finish(cmd.OutOrStdout(), err)
		},
	}
}

// "8080" も ":8080" も受け付ける
func listenAddr(port string) string {
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}
