package cmd

import (
	"fmt"

	"media-sync/core/runner"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkCmd probes the configured services.
var checkCmd = &cobra.Command{
	Use:   "check [radarr|sonarr|plex]...",
	Short: "Test connections to Radarr, Sonarr and Plex",
	Long:  `Probes each service with the effective settings. Without arguments every service is probed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer d.close()

		services := args
		if len(services) == 0 {
			services = []string{runner.ServiceRadarr, runner.ServiceSonarr, runner.ServicePlex}
		}

		failed := 0
		for _, name := range services {
			status, err := d.runner.Probe(ctx, name)
			if err != nil {
				return err
			}
			fields := []zap.Field{zap.String("service", name), zap.String("detail", status.Detail)}
			if status.Version != "" {
				fields = append(fields, zap.String("version", status.Version))
			}
			if status.OK {
				d.log.Info("Connection OK", fields...)
				continue
			}
			failed++
			d.log.Warn("Connection failed", fields...)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d services unreachable", failed, len(services))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
}
