package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"prompt-gallery/internal/devbackend"
)

func newDevBackendCmd(app *App) *cobra.Command {
	var addr string
	var dbPath string
	var publicURL string
	var s3 devbackend.S3Config

	cmd := &cobra.Command{
		Use:   "dev-backend",
		Short: "Run a local stand-in for the hosted backend (SQLite, optional S3 images)",
		Long: strings.TrimSpace(`
Serves the same single-endpoint protocol the gallery talks to: GET ?action=... for
queries and POST {"action": ...} for commands. Uploaded images are stored in the
SQLite database, or in an S3-compatible bucket when --s3-endpoint is set, and served
under /images/.`),
		Example: strings.TrimSpace(`
  gallery dev-backend --addr 127.0.0.1:8787 --db ./gallery.db
  gallery --endpoint http://127.0.0.1:8787/ items list --format text`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := app.logger()
			ctx := cmd.Context()

			db, err := devbackend.OpenDB(ctx, dbPath)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("open db: %w", err))
			}
			defer db.Close()

			opts := []devbackend.Option{
				devbackend.WithLogger(log),
				devbackend.WithPublicURL(publicURL),
			}
			if strings.TrimSpace(s3.Endpoint) != "" {
				images, err := devbackend.NewS3Images(s3)
				if err != nil {
					return writeErr(cmd, err)
				}
				opts = append(opts, devbackend.WithImageStore(images))
			}

			srv := devbackend.NewServer(db, opts...)
			log.Info("dev backend starting",
				zap.String("addr", addr),
				zap.String("db", dbPathLabel(dbPath)),
				zap.Bool("s3", s3.Endpoint != ""),
			)
			if err := srv.ListenAndServe(ctx, addr); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", envOr("GALLERY_DEV_ADDR", "127.0.0.1:8787"), "Listen address")
	cmd.Flags().StringVar(&dbPath, "db", envOr("GALLERY_DEV_DB", ""), "SQLite database path (default: in-memory)")
	cmd.Flags().StringVar(&publicURL, "public-url", "", "Base URL for returned image links (default: request host)")
	cmd.Flags().StringVar(&s3.Endpoint, "s3-endpoint", envOr("GALLERY_S3_ENDPOINT", ""), "S3-compatible endpoint host:port for image storage")
	cmd.Flags().StringVar(&s3.AccessKey, "s3-access-key", envOr("GALLERY_S3_ACCESS_KEY", ""), "S3 access key")
	cmd.Flags().StringVar(&s3.SecretKey, "s3-secret-key", envOr("GALLERY_S3_SECRET_KEY", ""), "S3 secret key")
	cmd.Flags().StringVar(&s3.Bucket, "s3-bucket", envOr("GALLERY_S3_BUCKET", "gallery-images"), "S3 bucket")
	cmd.Flags().StringVar(&s3.Region, "s3-region", envOr("GALLERY_S3_REGION", ""), "S3 region")
	cmd.Flags().BoolVar(&s3.UseSSL, "s3-ssl", false, "Use TLS for the S3 endpoint")
	return cmd
}

func dbPathLabel(p string) string {
	if strings.TrimSpace(p) == "" {
		return ":memory:"
	}
	return p
}
