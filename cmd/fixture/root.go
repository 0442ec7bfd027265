package fixture

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/carton-io/carton/cmd/util"
	"github.com/carton-io/carton/lib/messaging"
	libutil "github.com/carton-io/carton/lib/util"
	"github.com/carton-io/carton/lib/value"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// FixtureCommands represents the fixture command group
	FixtureCommands = &cobra.Command{
		Use:   "fixture",
		Short: "Write container and value fixture files",
	}

	writeCmd = &cobra.Command{
		Use:     "write [path]",
		Short:   "Writes a framed container message to a file",
		Args:    cobra.ExactArgs(1),
		RunE:    runWrite,
		PreRunE: processFixtureConfig,
	}

	valuesCmd = &cobra.Command{
		Use:     "values [dir]",
		Short:   "Writes standalone binary value files to a directory",
		Args:    cobra.ExactArgs(1),
		RunE:    runValues,
		PreRunE: processFixtureConfig,
	}

	fixtureCount   = 16
	fixtureSource  = "fixture"
	fixtureTarget  = "inspector"
	fixtureMsgType = "data_container"
)

func init() {
	// add flags
	key := "count"
	FixtureCommands.PersistentFlags().Int(key, 16, util.WrapString("Number of values to generate"))
	key = "source"
	FixtureCommands.PersistentFlags().String(key, "fixture", util.WrapString("Source id to stamp into the container header"))
	key = "target"
	FixtureCommands.PersistentFlags().String(key, "inspector", util.WrapString("Target id to stamp into the container header"))
	key = "message-type"
	FixtureCommands.PersistentFlags().String(key, "data_container", util.WrapString("Message type to stamp into the container header"))

	// Add subcommands
	FixtureCommands.AddCommand(writeCmd)
	FixtureCommands.AddCommand(valuesCmd)
}

func processFixtureConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	fixtureCount = viper.GetInt("count")
	fixtureSource = viper.GetString("source")
	fixtureTarget = viper.GetString("target")
	fixtureMsgType = viper.GetString("message-type")

	return nil
}

func runWrite(_ *cobra.Command, args []string) error {
	policy, err := util.GetPolicy()
	if err != nil {
		return err
	}

	b := messaging.NewBuilder().
		Policy(policy).
		Source(fixtureSource, "").
		Target(fixtureTarget, "").
		MessageType(fixtureMsgType)
	for _, v := range sampleValues(fixtureCount) {
		b.Set(v)
	}

	c, err := b.Build()
	if err != nil {
		return err
	}

	framed, err := messaging.SerializeForMessaging(c)
	if err != nil {
		return err
	}

	if err := os.WriteFile(args[0], framed, 0644); err != nil {
		return err
	}

	fmt.Printf("wrote %d values (%d bytes) to %s\n", c.Size(), len(framed), args[0])
	return nil
}

func runValues(_ *cobra.Command, args []string) error {
	dir := args[0]
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// scratch buffers for encoding are recycled across files
	pool := libutil.NewBlockPool(4096, 32)

	total := 0
	for i, v := range sampleValues(fixtureCount) {
		buf := pool.Get(value.EncodedSize(v))
		buf = value.AppendEncode(buf[:0], v)

		path := filepath.Join(dir, fmt.Sprintf("%03d-%s.val", i, v.Kind()))
		err := os.WriteFile(path, buf, 0644)
		pool.Put(buf)
		if err != nil {
			return err
		}
		total += len(buf)
	}

	fmt.Printf("wrote %d value files (%d bytes) to %s\n", fixtureCount, total, dir)
	return nil
}

// sampleValues generates count values cycling through representative kinds.
func sampleValues(count int) []value.Value {
	vals := make([]value.Value, 0, count)
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("v%03d", i)
		switch i % 6 {
		case 0:
			vals = append(vals, value.NewString(name, fmt.Sprintf("payload-%d", i)))
		case 1:
			vals = append(vals, value.NewInt(name, int32(i)))
		case 2:
			vals = append(vals, value.NewDouble(name, float64(i)*1.5))
		case 3:
			vals = append(vals, value.NewBool(name, i%2 == 0))
		case 4:
			vals = append(vals, value.NewBytes(name, []byte{byte(i), byte(i >> 8)}))
		default:
			vals = append(vals, value.NewLLong(name, int64(i)*1_000_000))
		}
	}
	return vals
}
