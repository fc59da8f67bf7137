package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/container-registry/devicekey/internal/logger"
	"github.com/container-registry/devicekey/internal/metrics"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newKeyCommand(a *app) *cobra.Command {
	var asUUID bool
	var metricsFile string

	keyCmd := &cobra.Command{
		Use:   "key",
		Short: "Print the device key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := a.resolver.CryptKey(cmd.Context())
			source := a.resolver.Source()

			logger.FromContext(cmd.Context()).Debug().
				Str("platform", a.resolver.Platform().String()).
				Str("source", source).
				Msg("Device key resolved")
			logger.LogAuditEvent(logger.AuditKeyResolved, map[string]interface{}{
				"platform": a.resolver.Platform().String(),
				"source":   source,
			})

			if asUUID {
				fmt.Fprintln(cmd.OutOrStdout(), uuid.UUID(key).String())
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(key[:]))
			}

			if metricsFile == "" {
				metricsFile = a.cfg.MetricsFile
			}
			if metricsFile != "" {
				if err := metrics.WriteTextfile(metricsFile); err != nil {
					return fmt.Errorf("write metrics to %s: %w", metricsFile, err)
				}
			}
			return nil
		},
	}

	keyCmd.Flags().BoolVar(&asUUID, "uuid", false, "Print the key in canonical UUID form instead of hex")
	keyCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write resolution metrics in node exporter textfile format")
	return keyCmd
}
