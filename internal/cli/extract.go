package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/frfole/inverse-zastavky/internal/domain"
	"github.com/frfole/inverse-zastavky/internal/netex"
)

func newExtractCommand(opts *options) *cobra.Command {
	var show int

	cmd := &cobra.Command{
		Use:   "extract <archive.zip|document.xml>",
		Short: "Extract chains without touching the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load()
			if err != nil {
				return err
			}
			defer e.close()

			bar := newProgress("Extracting chains")
			res, err := netex.ExtractFile(cmd.Context(), args[0], netex.WithProgress(bar.update))
			bar.finish()
			if err != nil {
				return err
			}

			for _, f := range res.Failed {
				e.log.Warn("Member skipped", zap.String("member", f.Name), zap.Error(f.Err))
			}
			for _, hash := range res.Collisions {
				e.log.Warn("Chain identity collision", zap.String("chain_hash", hash))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "members: %d, failed: %d, chains: %d, stops: %d\n",
				res.Members, len(res.Failed), len(res.Chains), res.Chains.StopCount())
			for _, c := range firstChains(res.Chains, show) {
				fmt.Fprintf(out, "%s  %s\n", c.Hash, strings.Join(c.Stops, " > "))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&show, "show", "n", 10, "number of chains to print")
	return cmd
}

// firstChains возвращает n цепочек в порядке хеша, чтобы вывод был стабильным
func firstChains(chains domain.Chains, n int) []domain.Chain {
	hashes := make([]string, 0, len(chains))
	for h := range chains {
		hashes = append(hashes, h)
	}
	sort.Strings(hashes)
	if n >= 0 && n < len(hashes) {
		hashes = hashes[:n]
	}

	out := make([]domain.Chain, len(hashes))
	for i, h := range hashes {
		out[i] = domain.Chain{Hash: h, Stops: chains[h]}
	}
	return out
}
