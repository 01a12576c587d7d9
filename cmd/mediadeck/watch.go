package main

import (
	"fmt"

	"mediadeck/cmd/mediadeck/cli"
	"mediadeck/internal/errors"
	"mediadeck/internal/watch"
	"mediadeck/pkg/types"

	"github.com/spf13/cobra"
)

// newWatchCmd uploads files as they land in the drop directory, without a UI
func newWatchCmd(o *rootOptions) *cobra.Command {
	var (
		dir    string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Upload files dropped into a directory",
		Long:  `Watch a drop directory and upload every file that settles there. Defaults to upload.drop_dir from the configuration.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = o.cfg.Upload.DropDir
			}
			if dir == "" {
				return errors.New("no drop directory: pass --dir or set upload.drop_dir")
			}

			rules, err := o.rules()
			if err != nil {
				return err
			}
			daemon, err := watch.NewDaemon(o.client(), rules, watch.DefaultSettle)
			if err != nil {
				return err
			}
			if err := daemon.AddWatchDirectory(dir); err != nil {
				return err
			}
			daemon.SetDryRun(dryRun)

			out := cmd.OutOrStdout()
			daemon.SetCallback(func(path string, res types.UploadResult, err error) {
				switch {
				case err != nil:
					fmt.Fprintln(out, cli.Error(err.Error()))
				case dryRun:
					fmt.Fprintln(out, cli.Info("Would upload "+path))
				default:
					fmt.Fprintln(out, cli.Success("Uploaded "+path))
				}
			})

			ctx := cmd.Context()
			if err := daemon.Start(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, cli.Info(fmt.Sprintf("Watching %s. Press Ctrl+C to stop.", dir)))
			if dryRun {
				fmt.Fprintln(out, cli.Info("Running in dry-run mode"))
			}

			<-ctx.Done()
			daemon.Stop()
			status := daemon.Status()
			fmt.Fprintln(out, cli.Success(fmt.Sprintf("Stopped: %d uploaded, %d failed", status.FilesUploaded, status.FilesFailed)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "drop directory (default is upload.drop_dir)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "check drops without uploading them")
	return cmd
}
