package command

import (
	"github.com/frantjc/cpm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newLoad(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load PATH",
		Short: "Print the configuration of the Cordova project at PATH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				ctx     = cmd.Context()
				project *cpm.ProjectDescriptorSet
			)

			cli, err := newClient(v)
			if err != nil {
				return err
			}

			if cli != nil {
				project, err = cli.LoadProject(ctx, args[0])
			} else {
				project, err = cpm.Load(ctx, args[0])
			}
			if err != nil {
				return err
			}

			return write(cmd.OutOrStdout(), v.GetString("output"), project, v.GetBool("pretty"))
		},
	}

	cmd.Flags().StringP("output", "o", OutputJSON, "Output format, one of json, yaml or text.")

	return cmd
}
