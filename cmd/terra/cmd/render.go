package cmd

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"strings"

	"github.com/terramach/terramach/pkg/graphics"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render the demo app to a PNG",
		Long: `Render the demo counter app with the software display and write the
presented frame as a PNG.

Taps are applied in order before the final frame is written. Each tap hovers
the location, presses and releases one finger there.

Flags:
  --out PATH     Output file (default: terra.png)
  --tap X,Y      Tap at logical coordinates; repeatable`,
		Usage: "terra render [--out PATH] [--tap X,Y ...]",
		Run:   runRender,
	})
}

type renderOptions struct {
	out  string
	taps []graphics.Point
}

func parseRenderArgs(args []string) (renderOptions, error) {
	opts := renderOptions{out: "terra.png"}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, value, hasValue := strings.Cut(arg, "=")
		switch name {
		case "--out", "--tap":
		default:
			return opts, fmt.Errorf("unknown flag %q", arg)
		}
		if !hasValue {
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%s requires a value", name)
			}
			value = args[i+1]
			i++
		}
		switch name {
		case "--out":
			opts.out = value
		case "--tap":
			point, err := parsePoint(value)
			if err != nil {
				return opts, err
			}
			opts.taps = append(opts.taps, point)
		}
	}
	return opts, nil
}

func runRender(args []string) error {
	opts, err := parseRenderArgs(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s := newSession(cfg)
	err = s.run(context.Background(), func(ctx context.Context) error {
		for _, location := range opts.taps {
			if err := s.tap(ctx, location); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	img := s.display.Front()
	if img == nil {
		return fmt.Errorf("render failed: no frame was presented")
	}
	f, err := os.Create(opts.out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", opts.out, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", opts.out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	bounds := img.Bounds()
	fmt.Printf("Wrote %s (%dx%d, %d taps, %d frames)\n", opts.out, bounds.Dx(), bounds.Dy(), len(opts.taps), s.app.Pipeline().FramesDrawn())
	return nil
}
