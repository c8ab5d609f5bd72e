package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdxor/pkg/analysis"
	"github.com/yaklabco/mdxor/pkg/config"
)

// JSONRenderer formats the report as JSON.
type JSONRenderer struct {
	opts Options
}

// NewJSONRenderer creates a new JSON renderer.
func NewJSONRenderer(opts Options) *JSONRenderer {
	return &JSONRenderer{opts: opts}
}

// Render implements Renderer.
func (r *JSONRenderer) Render(_ context.Context, report *analysis.Report) error {
	return writeJSON(r.opts, report)
}

// YAMLRenderer formats the report as YAML.
type YAMLRenderer struct {
	opts Options
}

// NewYAMLRenderer creates a new YAML renderer.
func NewYAMLRenderer(opts Options) *YAMLRenderer {
	return &YAMLRenderer{opts: opts}
}

// Render implements Renderer.
func (r *YAMLRenderer) Render(_ context.Context, report *analysis.Report) error {
	return writeYAML(r.opts, report)
}

func writeJSON(opts Options, value any) error {
	bw := bufio.NewWriterSize(opts.Writer, bufWriterSize)

	encoder := json.NewEncoder(bw)
	if !opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	return bw.Flush()
}

func writeYAML(opts Options, value any) error {
	bw := bufio.NewWriterSize(opts.Writer, bufWriterSize)

	encoder := yaml.NewEncoder(bw)
	encoder.SetIndent(config.YAMLIndent)
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}

	return bw.Flush()
}
