package cli

import (
	"bytes"

	"github.com/spf13/cobra"
)

type recolourOptions struct {
	prefix  string
	edits   colourEditsValue
	format  *formatValue
	output  string
	preview bool
}

func newRecolourCmd(global *globalOptions) *cobra.Command {
	opts := &recolourOptions{format: newFormatValue(formatSVG, formatSVG, formatJSON, formatTable)}

	cmd := &cobra.Command{
		Use:     "recolour <url|path>",
		Aliases: []string{"recolor"},
		Short:   "Replace colours in a document",
		Long: `Recolour loads a document as the load command does and replaces each colour given
with --set. Originals may be written as #RGB or #RRGGBB in any case; replacements are
used verbatim. Every replacement is applied to the loaded document in one pass, so a
replacement is never itself replaced.`,
		Example: `  svgtint recolour logo.svg --set '#FF0000=#00AA55' --set '#000=#222222'
  svgtint recolour logo.svg --set '#f00=rebeccapurple' --format table`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecolour(cmd, global, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.prefix, "prefix", "p", "", "namespace for classes and ids (default: derived from the file name)")
	cmd.Flags().VarP(&opts.edits, "set", "s", "replace a colour, as old=new (repeatable)")
	cmd.Flags().VarP(opts.format, "format", "f", "output format (svg, json, table)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write output to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "show colour previews even when not writing to a terminal")
	_ = cmd.MarkFlagRequired("set")

	return cmd
}

func runRecolour(cmd *cobra.Command, global *globalOptions, opts *recolourOptions, location string) error {
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

	text, mapping := res.Text, res.Mapping()
	for _, edit := range opts.edits.edits {
		text, mapping, err = env.pipeline.SetColor(res.Text, mapping, edit.Original, edit.New)
		if err != nil {
			return err
		}
		env.logger.Debug("colour replaced", "original", edit.Original, "current", edit.New)
	}

	if opts.format.value == formatSVG {
		return writeOutput(cmd, opts.output, []byte(text))
	}

	var buf bytes.Buffer
	preview := opts.output == "" && wantPreview(cmd, opts.preview)
	if err := renderSwatches(&buf, opts.format.value, prefix, location, mapping.Swatches(), preview); err != nil {
		return err
	}
	return writeOutput(cmd, opts.output, buf.Bytes())
}
