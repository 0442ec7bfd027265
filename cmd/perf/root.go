package perf

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/carton-io/carton/cmd/util"
	"github.com/carton-io/carton/lib/container"
	"github.com/carton-io/carton/lib/container/safe"
	"github.com/carton-io/carton/lib/value"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// PerfCmd benchmarks the codec and the container layer
	PerfCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for the carton codec and containers",
		Long:    "",
		RunE:    run,
		PreRunE: processPerfConfig,
	}
	perfValueCount  = 100
	perfNumThreads  = 10
	perfLargeSizeKB = 100
	perfSkip        = make([]string, 0)
	perfOpsMeter    = gometrics.NewMeter()
	perfEncodeTimer = gometrics.NewTimer()
	perfRegistry    = gometrics.NewRegistry()
)

func init() {
	// add flags
	key := "skip"
	PerfCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. encode,get)"))
	key = "threads"
	PerfCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the benchmarks"))
	key = "values"
	PerfCmd.Flags().Int(key, 100, util.WrapString("How many values to store per container"))
	key = "large-value-size"
	PerfCmd.Flags().Int(key, 100, util.WrapString("How large the payload for the encode-large test should be (in KB)"))
	key = "csv"
	PerfCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))

	// register the shared meters once
	_ = perfRegistry.Register("carton.ops", perfOpsMeter)
	_ = perfRegistry.Register("carton.encode.latency", perfEncodeTimer)
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfValueCount = viper.GetInt("values")
	perfNumThreads = viper.GetInt("threads")
	perfLargeSizeKB = viper.GetInt("large-value-size")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func run(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for the carton codec and containers")

	policy, err := util.GetPolicy()
	if err != nil {
		return err
	}

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Printf("Policy: %s\n", viper.GetString("policy"))
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Printf("Values per container: %d\n", perfValueCount)
	fmt.Println()

	fmt.Println("starting benchmarks...")

	// Create results map
	results := make(map[string]testing.BenchmarkResult)

	vals := benchValues(perfValueCount)

	encodeResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("encode") {
			return
		}

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				start := time.Now()
				_ = value.Encode(vals[counter%len(vals)])
				perfEncodeTimer.UpdateSince(start)
				perfOpsMeter.Mark(1)
				counter++
			}
		})
	})

	results["encode"] = encodeResult
	printResult("encode", encodeResult)

	encodeLargeResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("encode-large") {
			return
		}

		large := value.NewBytes("blob", make([]byte, perfLargeSizeKB*1024))

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				start := time.Now()
				_ = value.Encode(large)
				perfEncodeTimer.UpdateSince(start)
				perfOpsMeter.Mark(1)
			}
		})
	})

	results["encode-large"] = encodeLargeResult
	printResult("encode-large", encodeLargeResult)

	decodeResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("decode") {
			return
		}

		encoded := make([][]byte, len(vals))
		for i, v := range vals {
			encoded[i] = value.Encode(v)
		}

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				if _, err := value.Decode(encoded[counter%len(encoded)]); err != nil {
					b.Errorf("(decode) - error decoding value: %v", err)
				}
				perfOpsMeter.Mark(1)
				counter++
			}
		})
	})

	results["decode"] = decodeResult
	printResult("decode", decodeResult)

	setResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("set") {
			return
		}

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			// one container per goroutine, overwriting the same key set
			opts := container.DefaultOptions()
			opts.Policy = policy.Clone()
			c := container.New(opts)
			counter := 0
			for pb.Next() {
				c.Set(vals[counter%len(vals)])
				perfOpsMeter.Mark(1)
				counter++
			}
		})
	})

	results["set"] = setResult
	printResult("set", setResult)

	getResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("get") {
			return
		}

		opts := container.DefaultOptions()
		opts.Policy = policy.Clone()
		c := safe.NewConcurrent(opts)
		if err := c.SetAllResult(vals); err != nil {
			b.Errorf("(get) - error seeding container: %v", err)
			return
		}

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				name := vals[counter%len(vals)].Name()
				if _, ok := c.Get(name); !ok {
					b.Errorf("(get) - missing key: %s", name)
				}
				perfOpsMeter.Mark(1)
				counter++
			}
		})
	})

	results["get"] = getResult
	printResult("get", getResult)

	roundtripResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("roundtrip") {
			return
		}

		opts := container.DefaultOptions()
		opts.Policy = policy.Clone()
		src := container.New(opts)
		src.SetAll(vals)
		wire := src.Serialize()

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				dst := container.DefaultOptions()
				dst.Policy = policy.Clone()
				if _, err := container.Decode(wire, dst); err != nil {
					b.Errorf("(roundtrip) - error decoding container: %v", err)
				}
				perfOpsMeter.Mark(1)
			}
		})
	})

	results["roundtrip"] = roundtripResult
	printResult("roundtrip", roundtripResult)

	// dump the collected meters and timers
	fmt.Println()
	gometrics.WriteOnce(perfRegistry, os.Stdout)

	// Optionally write results to CSV
	if csvPath := viper.GetString("csv"); csvPath != "" {
		if err := writeResultsToCSV(csvPath, results); err != nil {
			return err
		}
		fmt.Printf("\nresults written to %s\n", csvPath)
	}

	return nil
}

// shouldSkip checks if a test should be skipped based on the skip flag
func shouldSkip(test string) bool {
	for _, s := range perfSkip {
		if strings.TrimSpace(s) == test {
			fmt.Printf("%-20sskipping...\n", test)
			return true
		}
	}
	return false
}

// benchValues creates the working set for the benchmarks
func benchValues(count int) []value.Value {
	vals := make([]value.Value, count)
	for i := 0; i < count; i++ {
		vals[i] = value.NewString(fmt.Sprintf("bench-%d", i), strings.Repeat("x", 64))
	}
	return vals
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, result testing.BenchmarkResult) {
	if result.NsPerOp() == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	nsPerOp := math.Max(float64(result.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)

	// Print the formatted result
	fmt.Printf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec\n", test, nsPerOp, time.Duration(nsPerOp), opsPerSec)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]testing.BenchmarkResult) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "Skipped",
		"Policy", "Threads", "ValueCount", "LargeValueSizeKB",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results
	for test, result := range results {
		var nsPerOp float64
		var opsPerSec float64
		var skipped string

		if result.NsPerOp() == 0 {
			skipped = "true"
			nsPerOp = 0
			opsPerSec = 0
		} else {
			skipped = "false"
			nsPerOp = math.Max(float64(result.NsPerOp()), 1)
			opsPerSec = 1.0 / (nsPerOp / 1e9)
		}

		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			skipped,
			viper.GetString("policy"),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfValueCount),
			strconv.Itoa(perfLargeSizeKB),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return nil
}
