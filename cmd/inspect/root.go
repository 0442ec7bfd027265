package inspect

import (
	"fmt"
	"os"

	"github.com/carton-io/carton/cmd/util"
	"github.com/carton-io/carton/lib/container"
	"github.com/carton-io/carton/lib/messaging"
	libutil "github.com/carton-io/carton/lib/util"
	"github.com/carton-io/carton/lib/value"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// InspectCmd decodes a fixture file and prints its contents
	InspectCmd = &cobra.Command{
		Use:     "inspect [file]",
		Short:   "Decodes a fixture file and prints its contents",
		Args:    cobra.ExactArgs(1),
		RunE:    runInspect,
		PreRunE: processInspectConfig,
	}

	inspectHeaderOnly = false
)

func init() {
	key := "header-only"
	InspectCmd.Flags().Bool(key, false, util.WrapString("Only decode and print the container header"))
}

func processInspectConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}
	inspectHeaderOnly = viper.GetBool("header-only")
	return nil
}

func runInspect(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	policy, err := util.GetPolicy()
	if err != nil {
		return err
	}

	opts := container.DefaultOptions()
	opts.Policy = policy

	var c *container.Container
	switch {
	case messaging.IsFramed(data):
		c, err = messaging.DeserializeFromMessaging(data, opts)
	case inspectHeaderOnly:
		c, err = container.DecodeHeader(data, opts)
	default:
		c, err = container.Decode(data, opts)
	}
	if err != nil {
		return err
	}

	printHeader(c)
	if inspectHeaderOnly {
		return nil
	}

	hist := libutil.NewPayloadHistogram()
	fmt.Println()
	fmt.Println("Values:")
	c.Range(func(v value.Value) bool {
		hist.Observe(value.EncodedSize(v))
		fmt.Printf("  %-16s%-12s%s\n", v.Name(), v.Kind(), v)
		return true
	})

	fmt.Println()
	fmt.Printf("Count: %d, mean encoded size: %dB, median: %dB, p95: %dB\n",
		hist.Count(), hist.Mean(), hist.Median(), hist.Percentile(95))

	boundaries, percentages := hist.Distribution()
	for i, pct := range percentages {
		if pct == 0 {
			continue
		}
		if i < len(boundaries) {
			fmt.Printf("  <= %-10d%5.1f%%\n", boundaries[i], pct)
		} else {
			fmt.Printf("  >  %-10d%5.1f%%\n", boundaries[len(boundaries)-1], pct)
		}
	}
	return nil
}

func printHeader(c *container.Container) {
	fmt.Printf("Source:       %s/%s\n", c.SourceID(), c.SourceSubID())
	fmt.Printf("Target:       %s/%s\n", c.TargetID(), c.TargetSubID())
	fmt.Printf("MessageType:  %s\n", c.MessageType())
	fmt.Printf("Version:      %s\n", c.Version())
}
