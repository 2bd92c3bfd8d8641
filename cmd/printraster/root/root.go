// Package root assembles the printraster command tree.
package root

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/go-raster/printraster/cmd/printraster/root/convert"
	"github.com/go-raster/printraster/cmd/printraster/root/inspect"
	"github.com/go-raster/printraster/cmd/printraster/root/render"
)

// NewRootCmd builds the printraster root command, wiring global flags into
// viper and stamping a run ID onto every invocation's logs.
func NewRootCmd() *cobra.Command {
	var cfgFile string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "printraster",
		Short: "Inspect, convert, and render CUPS and Apple URF raster streams",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
			if cfgFile != "" {
				viper.SetConfigFile(cfgFile)
				if err := viper.ReadInConfig(); err != nil {
					return err
				}
			}
			runID := uuid.New()
			log.SetPrefix(runID.String()[:8])
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML config file (limits, defaults)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("PRINTRASTER")
	viper.AutomaticEnv()
	viper.SetDefault("bytes_per_line_max", uint64(math.MaxUint64))
	viper.SetDefault("bytes_per_page_max", uint64(math.MaxUint64))

	cmd.AddCommand(inspect.NewCmd())
	cmd.AddCommand(convert.NewCmd())
	cmd.AddCommand(render.NewCmd())

	return cmd
}
