package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/treepage/pkg/hierarchy"
	pkgio "github.com/matzehuels/treepage/pkg/io"
	"github.com/matzehuels/treepage/pkg/observability"
	"github.com/matzehuels/treepage/pkg/render"
	"github.com/matzehuels/treepage/pkg/render/nodelink"
	"github.com/matzehuels/treepage/pkg/render/text"
)

// Render encodes a sorted page in the format named by opts.
func Render(ctx context.Context, p hierarchy.Page, opts Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	format := string(opts.format)

	observability.Pager().OnRenderStart(ctx, format)
	start := time.Now()
	data, err := renderPage(ctx, p, opts)
	observability.Pager().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}

func renderPage(ctx context.Context, p hierarchy.Page, opts Options) ([]byte, error) {
	switch opts.format {
	case render.FormatText:
		return text.Render(p, text.Options{Color: opts.Color, Footer: opts.Footer}), nil
	case render.FormatJSON:
		var buf bytes.Buffer
		err := pkgio.WritePage(p, &buf)
		return buf.Bytes(), err
	case render.FormatChoices:
		var buf bytes.Buffer
		err := pkgio.WriteChoices(hierarchy.Choices(p.Nodes), &buf)
		return buf.Bytes(), err
	case render.FormatDOT:
		return []byte(toDOT(p, opts)), nil
	case render.FormatSVG:
		return nodelink.RenderSVG(ctx, toDOT(p, opts))
	case render.FormatPNG:
		svg, err := nodelink.RenderSVG(ctx, toDOT(p, opts))
		if err != nil {
			return nil, err
		}
		return render.ToPNG(ctx, svg, DefaultPNGScale)
	case render.FormatPDF:
		svg, err := nodelink.RenderSVG(ctx, toDOT(p, opts))
		if err != nil {
			return nil, err
		}
		return render.ToPDF(ctx, svg)
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.format)
	}
}

func toDOT(p hierarchy.Page, opts Options) string {
	return nodelink.ToDOT(p, nodelink.Options{Detailed: opts.Detailed})
}
