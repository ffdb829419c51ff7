package command

import (
	"fmt"
	"strings"

	"github.com/frantjc/cpm"
	"github.com/frantjc/cpm/cordova"
	"github.com/go-logr/logr"
	"github.com/opencontainers/go-digest"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newSave(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save PATH FIELD=VALUE...",
		Short: "Update fields of config.xml of the Cordova project at PATH",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				ctx = cmd.Context()
				log = logr.FromContextOrDiscard(ctx)
			)

			updates, err := parseUpdates(args[1:])
			if err != nil {
				return err
			}

			var ifMatch digest.Digest
			if s := v.GetString("if-match"); s != "" {
				if ifMatch, err = digest.Parse(s); err != nil {
					return err
				}
			}

			cli, err := newClient(v)
			if err != nil {
				return err
			}

			if cli != nil {
				if _, err = cli.LoadProject(ctx, args[0]); err != nil {
					return err
				}

				err = cli.SaveConfig(ctx, updates, ifMatch)
			} else {
				opts := []cpm.SaveOpt{}
				if ifMatch != "" {
					opts = append(opts, cpm.WithIfMatch(ifMatch))
				}

				err = cpm.Save(ctx, args[0], updates, opts...)
			}
			if err != nil {
				return err
			}

			log.Info("saved " + cordova.ConfigXMLName)

			return nil
		},
	}

	cmd.Flags().String("if-match", "", "Only save if config.xml still has this digest.")

	return cmd
}

func parseUpdates(args []string) (map[string]string, error) {
	updates := make(map[string]string, len(args))

	for _, arg := range args {
		field, value, ok := strings.Cut(arg, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("expected FIELD=VALUE, got %q", arg)
		}

		updates[field] = value
	}

	return updates, nil
}
