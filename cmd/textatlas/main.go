// Command textatlas renders text into a glyph atlas and writes the atlas
// as a PNG image.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/textatlas"
	"github.com/gogpu/textatlas/text"
	"golang.org/x/image/font/gofont/goregular"
)

// builtinFont names the embedded Go Regular face.
const builtinFont = "goregular"

func main() {
	var (
		fontPath = flag.String("font", builtinFont, "font file, or goregular for the built-in face")
		size     = flag.Int("size", 32, "font size in pixels")
		width    = flag.Float64("width", 0, "line width in pixels, 0 for unbounded")
		atlasW   = flag.Int("atlas", 512, "atlas width and height in pixels")
		output   = flag.String("output", "atlas.png", "output file")
		verbose  = flag.Bool("v", false, "log glyph rasterization")
	)
	flag.Parse()

	contents := "Hello, world!"
	if flag.NArg() > 0 {
		contents = flag.Arg(0)
	}
	if *verbose {
		textatlas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := run(contents, *fontPath, *size, float32(*width), *atlasW, *output); err != nil {
		log.Fatal(err)
	}
}

func run(contents, fontPath string, size int, width float32, atlasSize int, output string) error {
	r, err := textatlas.NewRenderer(nil,
		textatlas.WithAtlasSize(atlasSize, atlasSize),
		textatlas.WithFontLoader(fontLoader()),
	)
	if err != nil {
		return err
	}
	defer r.Close()

	block, err := r.RenderText(context.Background(),
		textatlas.Text{Contents: contents, Size: size, Font: fontPath, Color: [4]float32{1, 1, 1, 1}},
		textatlas.Rect{Width: width})
	if err != nil {
		return err
	}

	pix, w, h := r.Atlas()
	if err := writePNG(output, pix, w, h); err != nil {
		return err
	}

	s := r.Stats()
	log.Printf("%d vertices, %.0fx%.0f px, %d glyphs, atlas %.1f%% used, saved to %s",
		block.VertexCount, block.Size.Width, block.Size.Height, s.Glyphs, s.AtlasUtilization*100, output)
	return nil
}

// fontLoader serves the built-in face and falls back to font files.
func fontLoader() textatlas.FontLoader {
	files := textatlas.FileFontLoader()
	var builtin *text.Source
	return func(path string, size int) (text.Font, error) {
		if path != builtinFont {
			return files(path, size)
		}
		if builtin == nil {
			src, err := text.ParseSource(builtinFont, goregular.TTF)
			if err != nil {
				return nil, err
			}
			builtin = src
		}
		f, err := text.NewFace(builtin, size)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}

func writePNG(path string, pix []byte, w, h int) error {
	img := &image.Gray{Pix: pix, Stride: w, Rect: image.Rect(0, 0, w, h)}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
