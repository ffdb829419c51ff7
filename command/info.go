package command

import (
	"github.com/frantjc/cpm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newInfo(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info PATH",
		Short: "Print whether PATH looks like a Cordova project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				ctx  = cmd.Context()
				info *cpm.ProjectInfo
			)

			cli, err := newClient(v)
			if err != nil {
				return err
			}

			if cli != nil {
				if _, err = cli.LoadProject(ctx, args[0]); err != nil {
					return err
				}

				info, err = cli.GetProjectInfo(ctx)
			} else {
				info, err = cpm.Info(ctx, args[0])
			}
			if err != nil {
				return err
			}

			return write(cmd.OutOrStdout(), v.GetString("output"), info, v.GetBool("pretty"))
		},
	}

	cmd.Flags().StringP("output", "o", OutputJSON, "Output format, one of json, yaml or text.")

	return cmd
}
