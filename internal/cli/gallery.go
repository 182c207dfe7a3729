package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/svgtint/internal/gallery"
	"github.com/jmylchreest/svgtint/internal/security"
)

type galleryOptions struct {
	format      *formatValue
	outputDir   string
	concurrency int
}

func newGalleryCmd(global *globalOptions) *cobra.Command {
	opts := &galleryOptions{format: newFormatValue(formatTable, formatTable, formatJSON)}

	cmd := &cobra.Command{
		Use:   "gallery <manifest.json>",
		Short: "Load every document listed in a manifest",
		Long: `Gallery loads each entry of a JSON manifest as an independent document whose
prefix is the entry id:

  [{"id": "vector01", "type": "shape", "details": {"src": "https://…/a.svg"}, "preview": "…"}]

A document that fails to load is reported without stopping the others. Relative
sources are resolved against the manifest's directory.`,
		Example: `  svgtint gallery shapes.json
  svgtint gallery shapes.json --format json --output-dir ./out`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGallery(cmd, global, opts, args[0])
		},
	}

	cmd.Flags().VarP(opts.format, "format", "f", "output format (table, json)")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "d", "", "write each loaded document to <dir>/<id>.svg")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", gallery.DefaultConcurrency, "number of documents loaded at once")

	return cmd
}

func runGallery(cmd *cobra.Command, global *globalOptions, opts *galleryOptions, manifest string) error {
	env, err := newRuntimeEnv(cmd, global)
	if err != nil {
		return err
	}

	entries, err := gallery.ReadManifest(manifest)
	if err != nil {
		return err
	}

	g, err := gallery.New(entries, gallery.Options{
		Fetcher:     env.fetcher,
		Loader:      env.pipeline,
		Concurrency: opts.concurrency,
		Logger:      env.logger,
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	failed := g.LoadAll(ctx)

	if opts.outputDir != "" {
		if err := writeGallery(cmd, g, opts.outputDir); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	switch opts.format.value {
	case formatJSON:
		snapshots := make([]gallery.Snapshot, 0, len(g.Instances()))
		for _, inst := range g.Instances() {
			snapshots = append(snapshots, inst.Snapshot())
		}
		if err := writeJSON(&buf, snapshots); err != nil {
			return err
		}
	default:
		buf.WriteString(renderGalleryTable(g))
	}
	if err := writeOutput(cmd, "", buf.Bytes()); err != nil {
		return err
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d documents failed to load", len(failed), len(entries))
	}
	return nil
}

func renderGalleryTable(g *gallery.Gallery) string {
	table := newTable("ID", "State", "Colours", "Palette")
	table.wrapColumn(3, 64)
	for _, inst := range g.Instances() {
		snap := inst.Snapshot()
		detail := snap.Error
		if detail == "" {
			hexes := make([]string, len(snap.Colours))
			for i, s := range snap.Colours {
				hexes[i] = s.Current
			}
			detail = strings.Join(hexes, " ")
		}
		table.addRow(snap.Prefix, snap.State.String(), strconv.Itoa(len(snap.Colours)), detail)
	}
	return table.String()
}

// writeGallery writes every loaded document to dir as <id>.svg.
func writeGallery(cmd *cobra.Command, g *gallery.Gallery, dir string) error {
	for _, inst := range g.Instances() {
		if state, _ := inst.State(); state != gallery.StateReady {
			continue
		}
		name := inst.Prefix() + ".svg"
		if err := security.ValidateOutputName(name, dir); err != nil {
			return err
		}
		if err := writeOutput(cmd, filepath.Join(dir, name), []byte(inst.Text())); err != nil {
			return err
		}
	}
	return nil
}
