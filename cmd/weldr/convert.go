package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/weldworks/weldr/internal/cli"
)

var convertCmd = &cobra.Command{
	Use:   "convert <drawing>",
	Short: "Convert a drawing into a weld instruction stream",
	Long: `Parses an SVG or DXF drawing, samples each path into weld points,
sequences them under the selected thermal strategy, and writes the
resulting instruction stream. Optional SMIL and GIF animations of the
run can be written alongside it.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")
		output, _ := cmd.Flags().GetString("output")
		animation, _ := cmd.Flags().GetString("animation")
		gifPath, _ := cmd.Flags().GetString("gif")
		strategy, _ := cmd.Flags().GetString("strategy")
		skip, _ := cmd.Flags().GetInt("skip")
		spacing, _ := cmd.Flags().GetFloat64("spacing")

		err := cli.Convert(cli.ConvertOptions{
			InputPath:     args[0],
			OutputPath:    output,
			AnimationPath: animation,
			GIFPath:       gifPath,
			ConfigPath:    configPath,
			Strategy:      strategy,
			Skip:          skip,
			Spacing:       spacing,
			Debug:         debug,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringP("output", "o", "", "Output file (defaults to the input name with a .gcode extension)")
	convertCmd.Flags().String("animation", "", "Write an SMIL animation of the run to this file")
	convertCmd.Flags().String("gif", "", "Write an animated GIF of the run to this file")
	convertCmd.Flags().String("strategy", "", "Sequencing strategy: linear, skip, binary, or farthest")
	convertCmd.Flags().Int("skip", 0, "Number of interleaved passes for the skip strategy")
	convertCmd.Flags().Float64("spacing", 0, "Weld point spacing in mm (overrides per-class defaults)")
}
