package cli

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"prompt-gallery/internal/intake"
)

type uploadResult struct {
	ImageURL string `json:"imageUrl"`
	Name     string `json:"name"`
	MIME     string `json:"mime"`
	Size     int64  `json:"size"`
}

func (r uploadResult) TableHeaders() []string { return []string{"IMAGE URL", "FILE", "TYPE", "SIZE"} }

func (r uploadResult) TableRows() [][]string {
	return [][]string{{r.ImageURL, r.Name, r.MIME, humanize.Bytes(uint64(r.Size))}}
}

func newUploadCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an image and print its hosted URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAdmin(); err != nil {
				return writeErr(cmd, err)
			}
			coord, err := app.coordinator(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, err := intake.Stage(cmd.Context(), intake.NormalizeDroppedPath(args[0]))
			if err != nil {
				return writeErr(cmd, err)
			}
			url, err := coord.UploadImage(cmd.Context(), st.DataURL, intake.UploadFilename(time.Now()))
			if err != nil {
				return err
			}
			return writeOut(cmd, app, uploadResult{ImageURL: url, Name: st.Name, MIME: st.MIME, Size: st.Size})
		},
	}
	addPasswordFlag(cmd, app)
	return cmd
}
