// Package inspect implements the "inspect" subcommand, which prints a
// CUPS or URF raster stream's page headers to stdout.
package inspect

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/go-raster/printraster/internal/streamio"
	"github.com/go-raster/printraster/raster"
	"github.com/go-raster/printraster/urf"
)

// NewCmd builds the inspect subcommand.
func NewCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print page headers from a CUPS or URF raster stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			limits := raster.Limits{
				BytesPerLineMax: viper.GetUint64("bytes_per_line_max"),
				BytesPerPageMax: viper.GetUint64("bytes_per_page_max"),
			}

			rd, err := streamio.Open(f, limits)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			log.Info("opened stream", "format", rd.Format().String(), "file", path)

			n := 0
			for {
				page, err := rd.NextPage()
				if err == io.EOF {
					break
				}
				if err != nil {
					return fmt.Errorf("reading page %d: %w", n+1, err)
				}
				n++
				printHeader(cmd, n, page.Header)
			}
			log.Info("done", "pages", n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "path to a CUPS or URF raster file")
	cmd.MarkFlagRequired("file")

	return cmd
}

func printHeader(cmd *cobra.Command, n int, h any) {
	switch v := h.(type) {
	case *raster.PageHeader:
		fmt.Fprintf(cmd.OutOrStdout(), "page %d: %dx%d, %d bpp, color space %d, color order %d\n",
			n, v.Width, v.Height, v.BitsPerPixel, v.ColorSpace, v.ColorOrder)
	case *urf.PageHeader:
		fmt.Fprintf(cmd.OutOrStdout(), "page %d: %dx%d, %d bpp, color space %d, %d dpi\n",
			n, v.Width, v.Height, v.BitsPerPixel, v.ColorSpace, v.DotsPerInch)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "page %d: unrecognized header type\n", n)
	}
}
