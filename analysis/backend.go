package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/spikelab/neurotics/datarecording"

	"github.com/tebeka/atexit"
)

// Backend is the interface that provides the service that can store
// per-timestep analyzer entries.
type Backend interface {
	AddDataEntry(entry SpikeAnalyzerEntry)
	Flush()
}

// CSVBackend is a Backend that writes entries to a CSV file in the reference
// time,u_mean,spikesum layout.
type CSVBackend struct {
	csvFile   *os.File
	csvWriter *csv.Writer
}

// NewCSVBackend creates a CSVBackend writing to filename.csv.
func NewCSVBackend(filename string) *CSVBackend {
	f, err := os.OpenFile(filename+".csv",
		os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		panic(err)
	}

	b := &CSVBackend{
		csvFile:   f,
		csvWriter: csv.NewWriter(f),
	}

	b.writeHeader()

	atexit.Register(func() { b.Flush() })

	return b
}

// NewCSVBackendWithWriter creates a CSVBackend writing to the given writer.
// It is mainly useful for streaming the CSV to stdout and in tests.
func NewCSVBackendWithWriter(w io.Writer) *CSVBackend {
	b := &CSVBackend{
		csvWriter: csv.NewWriter(w),
	}

	b.writeHeader()

	return b
}

func (b *CSVBackend) writeHeader() {
	err := b.csvWriter.Write([]string{"time", "u_mean", "spikesum"})
	if err != nil {
		panic(err)
	}
}

// AddDataEntry appends one entry to the CSV file.
func (b *CSVBackend) AddDataEntry(entry SpikeAnalyzerEntry) {
	err := b.csvWriter.Write([]string{
		fmt.Sprintf("%d", entry.Time),
		fmt.Sprintf("%.2f", entry.MeanPotential),
		fmt.Sprintf("%d", entry.SpikeSum),
	})
	if err != nil {
		panic(err)
	}
}

// Flush flushes the CSV writer.
func (b *CSVBackend) Flush() {
	b.csvWriter.Flush()
}

// SQLiteBackend is a Backend that writes entries to a SQLite database through
// the datarecording layer.
type SQLiteBackend struct {
	recorder datarecording.DataRecorder
}

// The table that holds analyzer entries.
const analyzerTable = "spike_rate"

// NewSQLiteBackend creates a SQLiteBackend writing to filename.sqlite3.
func NewSQLiteBackend(filename string) *SQLiteBackend {
	recorder := datarecording.New(filename)
	recorder.CreateTable(analyzerTable, SpikeAnalyzerEntry{})

	return &SQLiteBackend{recorder: recorder}
}

// NewSQLiteBackendWithRecorder reuses an already-open recorder.
func NewSQLiteBackendWithRecorder(
	recorder datarecording.DataRecorder,
) *SQLiteBackend {
	recorder.CreateTable(analyzerTable, SpikeAnalyzerEntry{})

	return &SQLiteBackend{recorder: recorder}
}

// AddDataEntry buffers one entry.
func (b *SQLiteBackend) AddDataEntry(entry SpikeAnalyzerEntry) {
	b.recorder.InsertData(analyzerTable, entry)
}

// Flush writes all the buffered entries.
func (b *SQLiteBackend) Flush() {
	b.recorder.Flush()
}
