package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/weldworks/weldr"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of weldr",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("weldr version %s\n", weldr.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
