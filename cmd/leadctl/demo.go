package main

import (
	"github.com/spf13/cobra"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/discovery"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
)

type demoOutput struct {
	Companies []dto.Lead      `json:"companies"`
	VCs       []dto.VCContact `json:"vcs"`
}

func newDemoCmd() *cobra.Command {
	var (
		companies int
		vcs       int
		seed      uint64
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Print generated demo companies and investors",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := discovery.NewGenerator(seed, nil)
			return writeJSON(cmd.OutOrStdout(), demoOutput{
				Companies: gen.Companies(companies),
				VCs:       gen.VCs(vcs),
			})
		},
	}

	f := cmd.Flags()
	f.IntVar(&companies, "companies", 10, "number of companies (max 25)")
	f.IntVar(&vcs, "vcs", 10, "number of investors (max 50)")
	f.Uint64Var(&seed, "seed", 0, "generator seed")
	return cmd
}
