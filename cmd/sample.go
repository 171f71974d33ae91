package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/adas-hsim/adas-hsim/hsim/gen"
)

var (
	sampleHierarchical bool   // --hierarchical: emit the two-level sample instead
	sampleFormat       string // --format: json or yaml
)

// sampleCmd emits a small deterministic generated model, for trying the
// other subcommands without hand-writing a model file.
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print a generated sample system model",
	Run: func(cmd *cobra.Command, args []string) {
		setUpLogging()

		model := gen.Sample()
		if sampleHierarchical {
			model = gen.SampleHierarchical()
		}

		switch sampleFormat {
		case "yaml":
			out, err := gen.YAML(model)
			if err != nil {
				logrus.Fatalf("marshaling sample model: %v", err)
			}
			fmt.Print(string(out))
		case "json", "":
			out, err := json.MarshalIndent(model, "", "  ")
			if err != nil {
				logrus.Fatalf("marshaling sample model: %v", err)
			}
			fmt.Println(string(out))
		default:
			logrus.Fatalf("unknown --format %q (want json or yaml)", sampleFormat)
		}
	},
}

func init() {
	sampleCmd.Flags().BoolVar(&sampleHierarchical, "hierarchical", false, "Emit the two-level hierarchical sample instead of the flat one")
	sampleCmd.Flags().StringVar(&sampleFormat, "format", "json", "Output format: json or yaml")
}
