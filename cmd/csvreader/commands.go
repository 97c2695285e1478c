package main

import (
	"errors"
	"fmt"
	"image/png"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/melanieyorbovay/data-analyzer-app/src/analysis"
	"github.com/melanieyorbovay/data-analyzer-app/src/charts"
	"github.com/melanieyorbovay/data-analyzer-app/src/dataset"
	"github.com/melanieyorbovay/data-analyzer-app/src/inspect"
	"github.com/melanieyorbovay/data-analyzer-app/src/logging"
)

func loadTable(cmd *cobra.Command, st *settings, path string) (*dataset.Table, error) {
	t, err := dataset.Load(cmd.Context(), path, st.cfg.LoadOptions())
	if err != nil {
		return nil, fmt.Errorf("could not load %s: %w", path, err)
	}
	return t, nil
}

func newSummaryCmd(st *settings) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "summary <file.csv>",
		Short: "Print dimensions, column names and numeric statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTable(cmd, st, args[0])
			if err != nil {
				return err
			}
			return analysis.NewReport(t).Write(cmd.OutOrStdout(), strings.ToLower(format))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text|yaml|json)")
	return cmd
}

func newRenderCmd(st *settings) *cobra.Command {
	var (
		kindName string
		out      string
		column   string
	)
	cmd := &cobra.Command{
		Use:   "render <file.csv>",
		Short: "Render the histogram or boxplot chart to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := charts.ParseKind(kindName)
			if err != nil {
				return err
			}
			t, err := loadTable(cmd, st, args[0])
			if err != nil {
				return err
			}
			opt := st.cfg.ChartOptions()
			opt.Column = column
			img, err := charts.Render(kind, t, opt)
			if err != nil {
				if inspect.IsWarning(err) {
					return errors.New(inspect.WarningText(err))
				}
				return err
			}
			if out == "" {
				out = string(kind) + ".png"
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := png.Encode(f, img); err != nil {
				_ = f.Close()
				return fmt.Errorf("encode %s: %w", out, err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			logging.Infof("wrote %s", out)
			fmt.Fprintf(cmd.OutOrStdout(), "Chart '%s' generated: %s\n", kind, out)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&kindName, "chart", "c", string(charts.KindHistogram), "chart kind (hist|box)")
	f.StringVarP(&out, "out", "o", "", "output PNG path (default <chart>.png)")
	f.StringVar(&column, "column", "", "histogram column (default: first numeric column)")
	f.Int("bins", 10, "histogram bins")
	f.Int("width", 800, "chart width in pixels")
	f.Int("height", 400, "chart height in pixels")
	return cmd
}

func newPreviewCmd(st *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <file.csv>",
		Short: "Print the first rows and columns with truncated cells",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTable(cmd, st, args[0])
			if err != nil {
				return err
			}
			pc := st.cfg.Preview
			p := t.Preview(pc.Rows, pc.Cols, pc.CellWidth)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, strings.Join(p.Header, "\t"))
			for _, row := range p.Rows {
				fmt.Fprintln(tw, strings.Join(row, "\t"))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), inspect.LoadSummary(t))
			return nil
		},
	}
	cmd.Flags().Int("rows", 10, "preview rows")
	cmd.Flags().Int("cols", 4, "preview columns")
	return cmd
}
