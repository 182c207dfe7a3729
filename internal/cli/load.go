package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/svgtint/internal/recolour"
)

type loadOptions struct {
	prefix  string
	format  *formatValue
	output  string
	preview bool
}

func newLoadCmd(global *globalOptions) *cobra.Command {
	opts := &loadOptions{format: newFormatValue(formatSVG, formatSVG, formatJSON, formatHex, formatTable)}

	cmd := &cobra.Command{
		Use:   "load <url|path>",
		Short: "Namespace a document and list its colours",
		Long: `Load fetches an SVG document, normalises its colours to #RRGGBB, prefixes its
generated classes, ids and url(#id) references, and reports the palette it uses.

Formats:
  svg    the rewritten document (default)
  json   the palette as original/current pairs
  hex    one colour per line
  table  a numbered table of colours`,
		Example: `  svgtint load logo.svg --prefix logo
  svgtint load https://example.com/badge.svg --format table --preview`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd, global, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.prefix, "prefix", "p", "", "namespace for classes and ids (default: derived from the file name)")
	cmd.Flags().VarP(opts.format, "format", "f", "output format (svg, json, hex, table)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write output to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "show colour previews even when not writing to a terminal")

	return cmd
}

func runLoad(cmd *cobra.Command, global *globalOptions, opts *loadOptions, location string) error {
	env, err := newRuntimeEnv(cmd, global)
	if err != nil {
		return err
	}

	prefix := opts.prefix
	if prefix == "" {
		prefix = defaultPrefix(location)
	}

	res, err := loadDocument(cmd.Context(), env, location, prefix)
	if err != nil {
		return err
	}

	if opts.format.value == formatSVG {
		return writeOutput(cmd, opts.output, []byte(res.Text))
	}

	var buf bytes.Buffer
	preview := opts.output == "" && wantPreview(cmd, opts.preview)
	if err := renderSwatches(&buf, opts.format.value, prefix, location, res.Mapping().Swatches(), preview); err != nil {
		return err
	}
	return writeOutput(cmd, opts.output, buf.Bytes())
}

// loadDocument fetches location and runs the pipeline over it.
func loadDocument(ctx context.Context, env *runtimeEnv, location, prefix string) (*recolour.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	raw, err := env.fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}

	res, err := env.pipeline.Load(raw, prefix)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}

	env.logger.Info("document loaded", "source", location, "prefix", prefix, "colours", res.Palette.Len())
	return res, nil
}
