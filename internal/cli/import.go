package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/frfole/inverse-zastavky/internal/repository/sqldb"
)

type baseLayer int

const (
	baseStations baseLayer = iota
	baseCities
)

func newImportNetexCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "netex <archive.zip|document.xml>",
		Short: "Replace all chains with the ones extracted from a NeTEx archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load()
			if err != nil {
				return err
			}
			defer e.close()

			ctx := cmd.Context()
			if err := e.openStore(ctx); err != nil {
				return err
			}

			bar := newProgress("Extracting chains")
			result, err := e.importUseCase().ImportNetex(ctx, args[0], bar.update)
			bar.finish()
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result)
		},
	}
}

func newImportBaseCommand(opts *options, use, short string, layer baseLayer) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <file.geojson>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load()
			if err != nil {
				return err
			}
			defer e.close()

			ctx := cmd.Context()
			if err := e.openStore(ctx); err != nil {
				return err
			}

			uc := e.importUseCase()
			run := uc.ImportBaseStations
			if layer == baseCities {
				run = uc.ImportBaseCities
			}
			result, err := run(ctx, args[0])
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result)
		},
	}
}

func newExportCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export [out.geojson]",
		Short: "Export located stations as a GeoJSON FeatureCollection (stdout by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load()
			if err != nil {
				return err
			}
			defer e.close()

			ctx := cmd.Context()
			if err := e.openStore(ctx); err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if len(args) == 1 {
				f, err := os.Create(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			n, err := e.importUseCase().ExportStations(ctx, w)
			if err != nil {
				return err
			}
			e.log.Info("Stations exported", zap.Int("stations", n))
			return nil
		},
	}
}

func newStatsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print table counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.load()
			if err != nil {
				return err
			}
			defer e.close()

			ctx := cmd.Context()
			if err := e.openStore(ctx); err != nil {
				return err
			}

			stats, err := sqldb.NewStatsRepository(e.db, e.log).GetStatistics(ctx)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), stats)
		},
	}
}

func printResult(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// progress рисует полосу только в терминале
type progress struct {
	desc string
	bar  *progressbar.ProgressBar
}

func newProgress(desc string) *progress {
	return &progress{desc: desc}
}

func (p *progress) update(done, total int) {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return
	}
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription(p.desc),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = p.bar.Set(done)
}

func (p *progress) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
