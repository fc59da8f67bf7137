package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/container-registry/devicekey/internal/crypto"
	"github.com/container-registry/devicekey/internal/logger"
	"github.com/container-registry/devicekey/internal/secure"
	"github.com/spf13/cobra"
)

func newSealCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seal <input> <output>",
		Short: "Encrypt a file with a key bound to this device",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]

			plaintext, err := os.ReadFile(filepath.Clean(in))
			if err != nil {
				return fmt.Errorf("read %s: %w", in, err)
			}

			sealer := secure.NewSealer(crypto.NewAESProvider(), a.resolver)
			if err := sealer.SealToFile(cmd.Context(), out, plaintext); err != nil {
				return fmt.Errorf("seal %s: %w", in, err)
			}

			logger.FromContext(cmd.Context()).Info().Str("input", in).Str("output", out).Msg("File sealed")
			logger.LogAuditEvent(logger.AuditFileSealed, map[string]interface{}{"path": out})
			return nil
		},
	}
}

func newUnsealCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unseal <input> <output>",
		Short: "Decrypt a file sealed on this device",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]

			sealer := secure.NewSealer(crypto.NewAESProvider(), a.resolver)
			plaintext, err := sealer.OpenFile(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("unseal %s: %w", in, err)
			}

			if err := os.WriteFile(out, plaintext, 0o600); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			logger.FromContext(cmd.Context()).Info().Str("input", in).Str("output", out).Msg("File unsealed")
			logger.LogAuditEvent(logger.AuditFileUnsealed, map[string]interface{}{"path": in})
			return nil
		},
	}
}
