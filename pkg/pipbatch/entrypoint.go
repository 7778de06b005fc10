package pipbatch

import (
	"fmt"
	"os"
	"time"

	"github.com/function61/gokit/logex"
	"github.com/function61/gokit/osutil"
	"github.com/spf13/cobra"
)

func Entrypoints() []*cobra.Command {
	return []*cobra.Command{
		runEntrypoint(),
		planEntrypoint(),
	}
}

func runEntrypoint() *cobra.Command {
	skipInvalid := false
	configPath := ""

	cmd := &cobra.Command{
		Use:   "run [runDate] [inputDir] [outputDir]",
		Short: "Formats each image in inputDir onto a story canvas in outputDir",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(func() error {
				runDate, err := time.Parse(RunDateFormat, args[0])
				if err != nil {
					return fmt.Errorf("runDate: not a valid datetime: %s (use format YYYYMMDD_HHMM)", args[0])
				}

				conf, err := resolveConfig(configPath)
				if err != nil {
					return err
				}

				processor := NewProcessor(*conf, skipInvalid, logex.StandardLogger())

				return processor.Run(runDate, args[1], args[2])
			}())
		},
	}

	cmd.Flags().BoolVarP(&skipInvalid, "skip-invalid", "", skipInvalid, "Skip images whose upscale factor exceeds the tolerance")
	cmd.Flags().StringVarP(&configPath, "config", "", configPath, "JSON file overriding frame/factor/tolerance defaults")

	return cmd
}

func planEntrypoint() *cobra.Command {
	configPath := ""

	cmd := &cobra.Command{
		Use:   "plan [inputDir]",
		Short: "Dry run: shows how each image would be fitted, without writing anything",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(func() error {
				conf, err := resolveConfig(configPath)
				if err != nil {
					return err
				}

				processor := NewProcessor(*conf, false, logex.StandardLogger())

				filePlans, err := processor.ComputePlans(args[0])
				if err != nil {
					return err
				}

				explainPlans(filePlans, os.Stdout)

				return nil
			}())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "", configPath, "JSON file overriding frame/factor/tolerance defaults")

	return cmd
}
