package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/spikelab/neurotics/datarecording"
)

var exportCmd = &cobra.Command{
	Use:   "export <recording.sqlite3>",
	Short: "Export the timestep summaries of a recorded run as CSV.",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		exportRecording(args[0])
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func exportRecording(path string) {
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(os.Stderr, "cannot open recording %s: %v\n", path, err)
		atexit.Exit(1)
	}

	reader := datarecording.NewReader(path)
	defer reader.Close()

	reader.MapTable(datarecording.TimestepTable, datarecording.TimestepEntry{})

	results, _, err := reader.Query(
		context.Background(),
		datarecording.TimestepTable,
		datarecording.QueryParams{OrderBy: "Time ASC"},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	mustWrite(w.Write([]string{"time", "u_mean", "spikesum"}))

	for _, r := range results {
		entry := r.(datarecording.TimestepEntry)

		mustWrite(w.Write([]string{
			strconv.Itoa(entry.Time),
			strconv.FormatFloat(entry.MeanPotential, 'f', 2, 64),
			strconv.Itoa(entry.SpikeCount),
		}))
	}
}

func mustWrite(err error) {
	if err != nil {
		panic(err)
	}
}
