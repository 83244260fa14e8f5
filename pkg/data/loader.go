// Package data resolves dataset paths into in-memory handles. Each dataset
// is a pre-ingested CSV with one raw text column and one binary label
// column; everything else in the file is ignored.
package data

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cheggaaa/pb/v3"
)

// Sample represents a single review with its label.
type Sample struct {
	Text  string
	Label float64
}

// Dataset is a fully loaded train or test split.
type Dataset struct {
	Path   string
	Texts  []string
	Labels []float64
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.Texts) }

// parseLabel accepts the numeric and the textual encodings seen in the
// IMDB exports: "0"/"1" and "negative"/"positive".
func parseLabel(s string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive", "pos":
		return 1, nil
	case "negative", "neg":
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if v != 0 && v != 1 {
		return 0, fmt.Errorf("data: label %q is not binary", s)
	}
	return v, nil
}

// columnIndex resolves a column name against the header row.
func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("data: column %q not found in header %v", name, header)
}

// Load reads the whole CSV at path into a Dataset. The text and label
// columns are resolved by header name. An unreadable path or a missing
// column is returned as an error; callers treat it as fatal, there is no
// retry. Malformed rows are skipped. A progress bar tracks bytes read when
// showProgress is set.
func Load(path, textCol, labelCol string, showProgress bool) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("data: open dataset: %w", err)
	}
	defer file.Close()

	var src io.Reader = file
	if showProgress {
		info, err := file.Stat()
		if err == nil {
			bar := pb.Full.Start64(info.Size())
			src = bar.NewProxyReader(file)
			defer bar.Finish()
		}
	}

	reader := csv.NewReader(bufio.NewReader(src))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("data: read header of %s: %w", path, err)
	}
	ti, err := columnIndex(header, textCol)
	if err != nil {
		return nil, err
	}
	li, err := columnIndex(header, labelCol)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Path: path}
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip malformed records, same policy as the streaming reader.
			continue
		}
		if ti >= len(rec) || li >= len(rec) {
			continue
		}
		label, err := parseLabel(rec[li])
		if err != nil {
			continue
		}
		ds.Texts = append(ds.Texts, rec[ti])
		ds.Labels = append(ds.Labels, label)
	}
	if ds.Len() == 0 {
		return nil, fmt.Errorf("data: %s contains no usable rows", path)
	}
	return ds, nil
}

// StreamCSV streams rows as Samples through a channel. Columns are resolved
// by header name before the goroutine starts. Close the returned done chan
// to stop early.
func StreamCSV(path, textCol, labelCol string, out chan<- Sample) (done chan struct{}, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("data: open dataset: %w", err)
	}

	reader := csv.NewReader(bufio.NewReader(file))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("data: read header of %s: %w", path, err)
	}
	ti, err := columnIndex(header, textCol)
	if err != nil {
		file.Close()
		return nil, err
	}
	li, err := columnIndex(header, labelCol)
	if err != nil {
		file.Close()
		return nil, err
	}

	done = make(chan struct{})
	go func() {
		// Close the file when the goroutine finishes, either by EOF or
		// early termination.
		defer file.Close()
		// Close the output channel to signal that no more samples will be sent.
		defer close(out)
		for {
			select {
			case <-done:
				return
			default:
				rec, err := reader.Read()
				if err == io.EOF {
					return
				}
				if err != nil {
					continue // skip malformed records
				}
				if ti >= len(rec) || li >= len(rec) {
					continue
				}
				label, err := parseLabel(rec[li])
				if err != nil {
					continue
				}
				out <- Sample{Text: rec[ti], Label: label}
			}
		}
	}()
	return done, nil
}
