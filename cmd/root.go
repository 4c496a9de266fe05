package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/xll-gen/finch/internal/ui"
)

// rootCmd compiles an asset directory into a C header.
var rootCmd = &cobra.Command{
	Use:   "finch <directory> [output]",
	Short: "Compile an asset directory into a C header file",
	Long: `finch walks an asset directory and emits a C header embedding every file
as constant data, with nested structs mirroring the directory layout.

By default the definition is appended to the header behind {OUTPUT}_IMPLEMENTATION.
With --c-file it is written to a separate {output}.c instead.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := resolveOptions(cmd.Flags(), &flags, args)
		if err == nil {
			err = runGenerate(opts)
		}
		if err != nil {
			ui.PrintError(err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	bindFlags(rootCmd.Flags(), &flags)
}
