// Command csvreader prints statistics, previews and chart PNGs for CSV files
// without opening a window.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/melanieyorbovay/data-analyzer-app/src/config"
	"github.com/melanieyorbovay/data-analyzer-app/src/dataset"
	"github.com/melanieyorbovay/data-analyzer-app/src/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// settings carries the resolved config from the root pre-run to subcommands.
type settings struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		st      = &settings{}
	)
	root := &cobra.Command{
		Use:           "csvreader",
		Short:         "Inspect CSV files from the command line",
		Long:          "csvreader loads a CSV file and prints its statistics, a preview grid, or renders the histogram and boxplot charts to PNG.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			logging.SetOutput(cmd.ErrOrStderr())
			logging.SetLogLevel(c.Log.Level)
			st.cfg = c
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./csvanalyzer.yaml or user config dir)")
	pf.String("engine", dataset.EngineNative, "CSV engine (native|duckdb)")
	pf.String("delimiter", "", "field delimiter (default: sniffed from the header line)")
	pf.Int("max-rows", 0, "stop reading after this many data rows (0 = all)")
	pf.String("log-level", "info", "log level (debug|info|warn|error)")

	root.AddCommand(newSummaryCmd(st), newRenderCmd(st), newPreviewCmd(st))
	return root
}
