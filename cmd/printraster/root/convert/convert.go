// Package convert implements the "convert" subcommand, which transcodes a
// CUPS V2 raster stream into an Apple URF stream.
package convert

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/go-raster/printraster/raster"
	"github.com/go-raster/printraster/urf"
)

// mediaProfile overrides the URF duplex and quality fields a CUPS header
// cannot supply. Its zero value reproduces the simplex, normal-quality
// defaults convert uses absent a --profile file. MediaPosition and MediaType
// are parsed but not applied: convert always writes MediaPositionAuto and
// MediaTypeAuto.
type mediaProfile struct {
	Duplex        string `yaml:"duplex"`
	Quality       string `yaml:"quality"`
	MediaPosition string `yaml:"mediaPosition"`
	MediaType     string `yaml:"mediaType"`
}

func loadProfile(path string) (mediaProfile, error) {
	var p mediaProfile
	if path == "" {
		return p, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return p, nil
}

var duplexNames = map[string]urf.Duplex{
	"":          urf.DuplexNoDuplex,
	"none":      urf.DuplexNoDuplex,
	"shortSide": urf.DuplexShortSide,
	"longSide":  urf.DuplexLongSide,
}

var qualityNames = map[string]urf.Quality{
	"":        urf.QualityNormal,
	"draft":   urf.QualityDraft,
	"normal":  urf.QualityNormal,
	"high":    urf.QualityHigh,
	"default": urf.QualityDefault,
}

// NewCmd builds the convert subcommand.
func NewCmd() *cobra.Command {
	var in, out, profilePath string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a CUPS V2 raster stream into Apple URF",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.Open(in)
			if err != nil {
				return err
			}
			defer src.Close()

			dst, err := os.Create(out)
			if err != nil {
				return err
			}
			defer dst.Close()

			limits := raster.Limits{
				BytesPerLineMax: viper.GetUint64("bytes_per_line_max"),
				BytesPerPageMax: viper.GetUint64("bytes_per_page_max"),
			}

			profile, err := loadProfile(profilePath)
			if err != nil {
				return err
			}

			return convert(src, dst, limits, profile)
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "", "source CUPS raster file")
	cmd.Flags().StringVarP(&out, "out", "o", "", "destination URF file")
	cmd.Flags().StringVar(&profilePath, "profile", "", "YAML file overriding duplex/quality metadata")
	cmd.MarkFlagRequired("in")
	cmd.MarkFlagRequired("out")

	return cmd
}

func convert(src io.Reader, dst io.Writer, limits raster.Limits, profile mediaProfile) error {
	rd, err := raster.NewReader(src, limits)
	if err != nil {
		return fmt.Errorf("reading CUPS sync word: %w", err)
	}
	if rd.Version() != 2 {
		return fmt.Errorf("convert only supports CUPS V2 streams, got V%d", rd.Version())
	}

	duplex, ok := duplexNames[profile.Duplex]
	if !ok {
		return fmt.Errorf("unknown duplex profile value %q", profile.Duplex)
	}
	quality, ok := qualityNames[profile.Quality]
	if !ok {
		return fmt.Errorf("unknown quality profile value %q", profile.Quality)
	}

	wr, err := urf.NewWriter(dst, urf.Header{PageCount: 0})
	if err != nil {
		return err
	}

	n := 0
	for {
		page, err := rd.NextPage()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading CUPS page %d: %w", n+1, err)
		}

		uh, err := cupsToURFHeader(page.Header, duplex, quality)
		if err != nil {
			return fmt.Errorf("mapping page %d header: %w", n+1, err)
		}

		enc, err := wr.WritePage(uh)
		if err != nil {
			return fmt.Errorf("writing URF page %d: %w", n+1, err)
		}
		if _, err := io.Copy(enc, page.Decoder); err != nil {
			return fmt.Errorf("copying page %d body: %w", n+1, err)
		}
		n++
	}

	if err := wr.Finish(); err != nil {
		return err
	}
	log.Info("converted", "pages", n)
	return nil
}

// colorSpaceTable maps CUPS color spaces to their URF equivalents, following
// the subset both formats share.
var colorSpaceTable = map[uint32]urf.ColorSpace{
	raster.ColorSpaceSGray:    urf.ColorSpaceSGray,
	raster.ColorSpaceSRGB:     urf.ColorSpaceSRGB,
	raster.ColorSpaceCIELab:   urf.ColorSpaceCIELab,
	raster.ColorSpaceAdobeRGB: urf.ColorSpaceAdobeRGB,
	raster.ColorSpaceGray:     urf.ColorSpaceGray,
	raster.ColorSpaceRGB:      urf.ColorSpaceRGB,
	raster.ColorSpaceCMYK:     urf.ColorSpaceCMYK,
}

// cupsToURFHeader maps a CUPS V2 page header to its URF equivalent. URF
// carries duplex/quality/media metadata CUPS headers don't: duplex and
// quality are taken from the caller, and media position and type are always
// set to auto.
func cupsToURFHeader(h any, duplex urf.Duplex, quality urf.Quality) (*urf.PageHeader, error) {
	ch, ok := h.(*raster.PageHeader)
	if !ok {
		return nil, fmt.Errorf("expected a CUPS page header")
	}

	cs, ok := colorSpaceTable[ch.ColorSpace]
	if !ok {
		return nil, fmt.Errorf("color space %d has no URF equivalent", ch.ColorSpace)
	}

	if ch.ResolutionCross != ch.ResolutionFeed {
		return nil, fmt.Errorf("URF requires equal cross-feed and feed resolution, got %d/%d",
			ch.ResolutionCross, ch.ResolutionFeed)
	}

	return &urf.PageHeader{
		BitsPerPixel:  uint8(ch.BitsPerPixel),
		ColorSpace:    cs,
		Duplex:        duplex,
		Quality:       quality,
		MediaPosition: urf.MediaPositionAuto,
		MediaType:     urf.MediaTypeAuto,
		Width:         ch.Width,
		Height:        ch.Height,
		DotsPerInch:   ch.ResolutionCross,
	}, nil
}
