package main

import (
	"fmt"
	"io"
	"strings"

	"mediadeck/cmd/mediadeck/cli"
	"mediadeck/internal/api"
	"mediadeck/internal/errors"
	"mediadeck/internal/log"
	"mediadeck/internal/upload"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// newUploadCmd sends local files in one multipart request
func newUploadCmd(o *rootOptions) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload files to the backend",
		Long:  `Upload files in a single request. Files rejected by upload.accept or upload.max_size_mb are skipped with a warning.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := o.rules()
			if err != nil {
				return err
			}

			sel := upload.NewSelection(rules)
			_, refused := sel.AddAll(args)
			for _, err := range refused {
				fmt.Fprintln(cmd.ErrOrStderr(), cli.Warning(err.Error()))
			}
			if sel.Empty() {
				if accepted := rules.Patterns(); len(accepted) > 0 {
					return errors.Newf("no files to upload (accepted: %s)", strings.Join(accepted, " "))
				}
				return errors.New("no files to upload")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.Info(fmt.Sprintf("Uploading %d file(s), %s", sel.Len(), humanize.Bytes(uint64(sel.TotalSize())))))

			bar := newUploadBar(cmd.ErrOrStderr(), sel.TotalSize(), !quiet && cli.IsTerminal())
			client := o.client(api.WithReaderWrapper(func(f api.UploadFile) io.Reader {
				return io.TeeReader(f.Body, bar)
			}))

			res, err := sel.Send(cmd.Context(), client)
			_ = bar.Finish()
			if err != nil {
				log.LogWithError(err).Error("upload failed")
				return err
			}

			msg := res.Message
			if msg == "" {
				msg = fmt.Sprintf("Uploaded %d file(s)", sel.Len())
			}
			fmt.Fprintln(out, cli.Success(msg))
			for _, saved := range res.Saved() {
				where := saved.OnlineURL
				if where == "" {
					where = saved.LocalPath
				}
				fmt.Fprintf(out, "  %s  %s\n", saved.Filename, where)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")
	return cmd
}

func newUploadBar(w io.Writer, total int64, visible bool) *progressbar.ProgressBar {
	return progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Uploading"),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetVisibility(visible),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionFullWidth(),
	)
}
