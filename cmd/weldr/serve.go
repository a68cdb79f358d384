package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/weldworks/weldr/internal/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP conversion service",
	Long: `Starts a stateless HTTP server that accepts drawings on POST /convert
and returns the generated instruction stream or animation. Prometheus
metrics are exposed on /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")
		addr, _ := cmd.Flags().GetString("addr")

		err := cli.Serve(cli.ServeOptions{
			Addr:       addr,
			ConfigPath: configPath,
			Debug:      debug,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
}
