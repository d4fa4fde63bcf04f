package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/config"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/hotel"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/media"
)

// newUploader is swapped out in tests.
var newUploader = func(ctx context.Context) (media.Uploader, error) {
	return media.NewS3(ctx, media.ConfigFromEnv())
}

// MediaCmd returns the `elvira media` command group.
func MediaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Manage record attachments in object storage",
	}
	cmd.AddCommand(mediaPutCmd())
	return cmd
}

func mediaPutCmd() *cobra.Command {
	var table, hotelID string
	cmd := &cobra.Command{
		Use:   "put <path>",
		Short: "Upload a file and print its URL",
		Long:  "Upload a file to the ELVIRA_S3_BUCKET bucket under <hotel>/<table>/ and print the URL to store on a record.",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if !hotel.IsTable(table) {
				return fmt.Errorf("unknown table %q (want one of %s)", table, strings.Join(hotel.Tables, ", "))
			}
			if hotelID == "" {
				if cfg, err := config.Load(); err == nil {
					hotelID = cfg.HotelID
				}
			}

			up, err := newUploader(c.Context())
			if err != nil {
				return fmt.Errorf("media storage: %w", err)
			}
			url, err := media.UploadFile(c.Context(), up, hotelID, table, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), url)
			return nil
		},
	}
	cmd.Flags().StringVarP(&table, "table", "t", hotel.TableAmenities, "table the file belongs to")
	cmd.Flags().StringVar(&hotelID, "hotel", "", "hotel id (defaults to the logged-in hotel)")
	return cmd
}
