package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// A Report describes one reduction.
type Report struct {
	Operation string        `json:"operation" yaml:"operation"`
	N         int           `json:"n" yaml:"n"`
	Grainsize int           `json:"grainsize" yaml:"grainsize"`
	Workers   int           `json:"workers" yaml:"workers"`
	Slices    int64         `json:"slices" yaml:"slices"`
	Result    float64       `json:"result" yaml:"result"`
	Duration  time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

func writeReports(w io.Writer, format string, reports []Report) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		label := color.New(color.FgCyan)
		for _, r := range reports {
			fmt.Fprintf(w, "%s %v\n", label.Sprintf("%-14s", r.Operation), r.Result)
			fmt.Fprintf(w, "  n=%v grainsize=%v workers=%v slices=%v duration=%v\n",
				r.N, r.Grainsize, r.Workers, r.Slices, r.Duration)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (one of text, json, yaml)", format)
	}
}
