package command

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/frantjc/cpm/internal/api"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newServe(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the cpm HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				ctx     = cmd.Context()
				log     = logr.FromContextOrDiscard(ctx)
				address = v.GetString("addr")
				srv     = &http.Server{
					ReadHeaderTimeout: time.Second * 5,
					BaseContext: func(_ net.Listener) context.Context {
						return ctx
					},
					Handler: api.NewHandler(&api.Opts{
						Path:           v.GetString("path"),
						AllowedOrigins: v.GetStringSlice("allowed-origin"),
					}),
				}
				errC = make(chan error, 1)
			)
			defer srv.Close()

			lis, err := net.Listen("tcp", address)
			if err != nil {
				return err
			}
			defer lis.Close()

			go func() {
				log.Info("listening on " + lis.Addr().String())
				errC <- srv.Serve(lis)
			}()

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second*10)
				defer cancel()

				if err := srv.Shutdown(shutdownCtx); err != nil {
					return err
				}

				return ctx.Err()
			case err := <-errC:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}

				return err
			}
		},
	}

	cmd.Flags().String("addr", ":5000", "Listen address for cpm.")
	cmd.Flags().String("path", "/", "Path to serve the API under.")
	cmd.Flags().StringSlice("allowed-origin", []string{"*"}, "Origins allowed to make cross-origin requests.")

	return cmd
}
