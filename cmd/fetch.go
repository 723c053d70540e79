package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vzahanych/cwa-forecast/internal/forecast"
	"go.uber.org/zap"
)

func fetchCmd() *cobra.Command {
	var (
		region   string
		insecure bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the forecast for one region and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc := cfg.Forecast
			if cmd.Flags().Changed("insecure") {
				fc.InsecureSkipVerify = insecure
			}

			normalizer := forecast.NewNormalizer(fc, log.Logger, tele)

			req := forecast.ForecastRequest{RegionName: region, Credential: fc.APIKey}
			if err := normalizer.Regions().Validate(req); err != nil {
				return fmt.Errorf("cannot fetch forecast: %w", err)
			}

			result, err := normalizer.Fetch(cmd.Context(), req)
			if err != nil {
				return err
			}

			log.Debug("Forecast printed", zap.String("region", region))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVarP(&region, "region", "r", "", "region name, see `forecast regions`")
	cmd.Flags().BoolVar(&insecure, "insecure", false, "skip TLS certificate verification (discouraged)")
	_ = cmd.MarkFlagRequired("region")

	return cmd
}

func regionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List the regions the forecast API accepts",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range forecast.NewRegions(cfg.Forecast.Regions).Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
