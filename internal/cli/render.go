package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/connector"
	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/render"
	"github.com/matzehuels/kintree/pkg/render/diagram"
	"github.com/matzehuels/kintree/pkg/render/nodelink"
)

const (
	vizDiagram  = "diagram"  // card diagram with curved connectors
	vizNodelink = "nodelink" // Graphviz node-link graph
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path (several)
	vizType  string   // diagram or nodelink
	formats  []string // svg, dot, pdf, png
	scale    float64  // PNG scale factor
	detailed bool     // lifespans in nodelink labels
	selected string   // member to highlight in the diagram
	title    string   // SVG <title>
	noCache  bool     // skip the conversion cache
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{vizType: vizDiagram, scale: 2}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the family tree to SVG, DOT, PDF or PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateRenderOpts(&opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.vizType, "type", "t", opts.vizType, "visualization type: diagram, nodelink")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, pdf, png (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show lifespans in nodelink labels")
	cmd.Flags().StringVar(&opts.selected, "select", "", "member id to highlight")
	cmd.Flags().StringVar(&opts.title, "title", "", "diagram title")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "always run the PDF/PNG converter")
	return cmd
}

// parseFormats parses the --format flag. If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{render.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

func validateRenderOpts(opts *renderOpts) error {
	if opts.vizType != vizDiagram && opts.vizType != vizNodelink {
		return errors.New(errors.ErrCodeInvalidInput, "invalid type: %s (must be 'diagram' or 'nodelink')", opts.vizType)
	}
	for _, f := range opts.formats {
		if !slices.Contains(render.Formats, f) {
			return errors.New(errors.ErrCodeInvalidInput, "invalid format: %s (must be one of %s)", f, strings.Join(render.Formats, ", "))
		}
		if f == render.FormatDOT && opts.vizType != vizNodelink {
			return errors.New(errors.ErrCodeInvalidInput, "dot output requires --type nodelink")
		}
	}
	return nil
}

func (c *CLI) runRender(ctx context.Context, opts *renderOpts) error {
	s, err := c.openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	selected := ""
	if opts.selected != "" {
		m, err := s.tree.Find(opts.selected)
		if err != nil {
			return err
		}
		selected = m.ID
	}

	members := s.tree.Members()
	forest, frame := layout.Compute(ctx, members, s.cfg.Layout)
	if len(forest.Unplaced) > 0 {
		logger.Warn("members not reachable from any root are left out", "count", len(forest.Unplaced))
	}

	var (
		svg []byte
		dot string
	)
	if opts.vizType == vizNodelink {
		dot = nodelink.ToDOT(members, forest, nodelink.Options{Detailed: opts.detailed})
	} else {
		res := connector.Compute(members, frame.Anchor, connector.Canvas{Origin: frame.Bounds(), LogicalWidth: frame.Width})
		svg = diagram.RenderSVG(frame, members, res.Links,
			diagram.WithSelected(selected), diagram.WithTitle(opts.title))
	}

	conv := converter{cache: cache.NullCache{}, logger: logger}
	if slices.Contains(opts.formats, render.FormatPDF) || slices.Contains(opts.formats, render.FormatPNG) {
		conv.cache = openCache(s.cfg.Cache, opts.noCache, logger)
		conv.ttl = s.cfg.Cache.TTL
		defer conv.cache.Close()
	}

	var paths []string
	for _, format := range opts.formats {
		data, err := conv.render(ctx, format, svg, dot, opts.scale)
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		path := outputPath(opts, format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	prog.done("rendered", "members", len(forest.Placed()), "files", len(paths))
	printSuccess("Rendered %s", familyName(members))
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// converter produces output formats, caching PDF and PNG conversions.
type converter struct {
	cache  cache.Cache
	ttl    time.Duration
	logger *log.Logger
}

// render produces one output format. For nodelink renders svg is nil and is
// produced from dot on demand.
func (cv *converter) render(ctx context.Context, format string, svg []byte, dot string, scale float64) ([]byte, error) {
	if format == render.FormatDOT {
		return []byte(dot), nil
	}
	if svg == nil {
		var err error
		if svg, err = nodelink.RenderSVG(ctx, dot); err != nil {
			return nil, err
		}
	}
	if format != render.FormatPDF && format != render.FormatPNG {
		return svg, nil
	}

	key := cache.Key(format, cache.Hash(svg), scale)
	if data, ok, err := cv.cache.Get(ctx, key); err != nil {
		cv.logger.Warn("cache read failed", "err", err)
	} else if ok {
		cv.logger.Debug("conversion cache hit", "format", format)
		return data, nil
	}

	if !render.Available() {
		return nil, errors.New(errors.ErrCodeUnsupported, "%s output needs rsvg-convert on PATH (install librsvg, or render --format svg)", format)
	}

	spin := newSpinner(ctx, "Converting to "+strings.ToUpper(format)+"...")
	spin.Start()
	var (
		data []byte
		err  error
	)
	if format == render.FormatPDF {
		data, err = render.ToPDF(ctx, svg)
	} else {
		data, err = render.ToPNG(ctx, svg, scale)
	}
	spin.Stop()
	if err != nil {
		return nil, err
	}
	if err := cv.cache.Set(ctx, key, data, cv.ttl); err != nil {
		cv.logger.Warn("cache write failed", "err", err)
	}
	return data, nil
}

// outputPath returns the file for format. With several formats the output
// flag is a base path and each format adds its own extension.
func outputPath(opts *renderOpts, format string) string {
	if opts.output == "" {
		return opts.vizType + "." + format
	}
	if len(opts.formats) == 1 {
		return opts.output
	}
	base := strings.TrimSuffix(opts.output, filepath.Ext(opts.output))
	return base + "." + format
}

// familyName returns "the <Surname> family" from the most common last name.
func familyName(members []family.Member) string {
	counts := make(map[string]int)
	best := ""
	for _, m := range members {
		if m.LastName == "" {
			continue
		}
		counts[m.LastName]++
		if counts[m.LastName] > counts[best] {
			best = m.LastName
		}
	}
	if best == "" {
		return fmt.Sprintf("%d members", len(members))
	}
	return "the " + best + " family"
}
