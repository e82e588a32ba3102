package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/app"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/discovery"
)

func newDiscoverCmd() *cobra.Command {
	var (
		criteria discovery.Criteria
		save     bool
	)

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Run one discovery search and print the results as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			a, err := app.New(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			resp, err := a.Discovery.Search(cmd.Context(), criteria)
			if err != nil {
				return fmt.Errorf("discovery failed: %w", err)
			}

			if save {
				summary, err := a.Leads.SaveLeads(cmd.Context(), resp.Results, nil)
				if err != nil {
					return err
				}
				log.Info("leads saved",
					zap.String("storage", a.Storage),
					zap.Int("companies", summary.Companies),
					zap.Int("contacts", summary.Contacts),
					zap.Int("skipped", summary.Skipped),
				)
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&criteria.Industries, "industry", nil, "industries to search (repeatable)")
	f.StringSliceVar(&criteria.FundingStages, "stage", nil, "funding stages, e.g. \"Series A\"")
	f.StringSliceVar(&criteria.Locations, "location", nil, "locations to search")
	f.IntVar(&criteria.MaxResults, "max", discovery.DefaultMaxResults, "maximum number of companies")
	f.BoolVar(&criteria.IncludeVCs, "vcs", false, "also discover venture investors")
	f.IntVar(&criteria.MaxVCs, "max-vcs", 0, "maximum number of investors")
	f.BoolVar(&criteria.ExcludeExisting, "exclude-existing", false, "skip companies and contacts already stored")
	f.BoolVar(&criteria.SortByScore, "sort", false, "sort results by score")
	f.BoolVar(&criteria.AIScoring, "ai", false, "score leads with the language model")
	f.BoolVar(&criteria.IncludeSupplemental, "supplemental", false, "query crunchbase, news and scraped directories")
	f.BoolVar(&save, "save", false, "persist the results")
	return cmd
}
