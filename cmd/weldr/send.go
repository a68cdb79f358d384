package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/weldworks/weldr/internal/cli"
)

var sendCmd = &cobra.Command{
	Use:   "send <file.gcode>",
	Short: "Upload an instruction stream to the welding device",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		host, _ := cmd.Flags().GetString("host")
		apiKey, _ := cmd.Flags().GetString("api-key")
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		autostart, _ := cmd.Flags().GetBool("autostart")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		err := cli.Send(cli.SendOptions{
			FilePath:  args[0],
			Host:      host,
			APIKey:    apiKey,
			Username:  username,
			Password:  password,
			Autostart: autostart,
			Timeout:   timeout,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().String("host", "", "Device hostname or IP, e.g. 192.168.1.50")
	sendCmd.Flags().String("api-key", "", "Device API key")
	sendCmd.Flags().String("username", "", "Digest auth username")
	sendCmd.Flags().String("password", "", "Digest auth password")
	sendCmd.Flags().Bool("autostart", false, "Start the job immediately after upload")
	sendCmd.Flags().Duration("timeout", 30*time.Second, "HTTP request timeout")
	_ = sendCmd.MarkFlagRequired("host")
}
