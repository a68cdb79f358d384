package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/weldworks/weldr/internal/cli"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the welding device version and current job",
	Run: func(cmd *cobra.Command, args []string) {
		host, _ := cmd.Flags().GetString("host")
		apiKey, _ := cmd.Flags().GetString("api-key")
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		err := cli.Status(cli.StatusOptions{
			Host:     host,
			APIKey:   apiKey,
			Username: username,
			Password: password,
			Timeout:  timeout,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().String("host", "", "Device hostname or IP, e.g. 192.168.1.50")
	statusCmd.Flags().String("api-key", "", "Device API key")
	statusCmd.Flags().String("username", "", "Digest auth username")
	statusCmd.Flags().String("password", "", "Digest auth password")
	statusCmd.Flags().Duration("timeout", 30*time.Second, "HTTP request timeout")
	_ = statusCmd.MarkFlagRequired("host")
}
