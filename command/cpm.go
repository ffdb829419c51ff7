package command

import (
	"net/url"

	"github.com/frantjc/cpm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewCPM returns the root command for
// cpm which acts as its CLI entrypoint.
func NewCPM() *cobra.Command {
	var (
		v   = newViper()
		cmd = &cobra.Command{Use: "cpm"}
	)

	cmd.PersistentFlags().String("url", "", "Base URL of a cpm server to use instead of the local filesystem.")
	cmd.PersistentFlags().Bool("pretty", false, "Indent JSON output.")

	cmd.AddCommand(
		newServe(v),
		newLoad(v),
		newSave(v),
		newInfo(v),
	)

	return SetCommon(cmd, v, cpm.SemVer())
}

// newClient returns a client for the server at --url,
// or nil if cpm should work on the local filesystem.
func newClient(v *viper.Viper) (*cpm.Client, error) {
	urlstr := v.GetString("url")
	if urlstr == "" {
		return nil, nil
	}

	base, err := url.Parse(urlstr)
	if err != nil {
		return nil, err
	}

	return &cpm.Client{Base: base}, nil
}
