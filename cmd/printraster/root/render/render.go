// Package render implements the "render" subcommand, which decodes a single
// page of a CUPS raster stream into a PNG image.
package render

import (
	"fmt"
	"image/png"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/go-raster/printraster/imaging"
	"github.com/go-raster/printraster/raster"
)

// NewCmd builds the render subcommand.
func NewCmd() *cobra.Command {
	var in, out string
	var pageNum int

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one page of a CUPS raster stream to a PNG image",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.Open(in)
			if err != nil {
				return err
			}
			defer src.Close()

			limits := raster.Limits{
				BytesPerLineMax: viper.GetUint64("bytes_per_line_max"),
				BytesPerPageMax: viper.GetUint64("bytes_per_page_max"),
			}

			rd, err := raster.NewReader(src, limits)
			if err != nil {
				return fmt.Errorf("reading CUPS sync word: %w", err)
			}

			var page *raster.Page
			for n := 1; n <= pageNum; n++ {
				page, err = rd.NextPage()
				if err != nil {
					return fmt.Errorf("seeking to page %d: %w", pageNum, err)
				}
			}

			img, err := imaging.FromCUPSPage(page)
			if err != nil {
				return fmt.Errorf("decoding page %d: %w", pageNum, err)
			}

			dst, err := os.Create(out)
			if err != nil {
				return err
			}
			defer dst.Close()

			if err := png.Encode(dst, img); err != nil {
				return err
			}
			log.Info("rendered", "page", pageNum, "file", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "", "source CUPS raster file")
	cmd.Flags().StringVarP(&out, "out", "o", "", "destination PNG file")
	cmd.Flags().IntVarP(&pageNum, "page", "p", 1, "1-indexed page number to render")
	cmd.MarkFlagRequired("in")
	cmd.MarkFlagRequired("out")

	return cmd
}
