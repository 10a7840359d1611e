package chart

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/parentevalerio/infovis-trees/pkg/errors"
)

const converterBinary = "rsvg-convert"

// ToPNG converts SVG bytes to PNG at the given zoom factor using
// rsvg-convert. A scale of 2.0 produces a 2x resolution image suitable
// for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install
// librsvg2-bin (Linux).
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return convert(svg, "png", fmt.Sprintf("--zoom=%g", scale))
}

// ToPDF converts SVG bytes to PDF using rsvg-convert.
//
// Requires librsvg: brew install librsvg (macOS), apt install
// librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "pdf")
}

func convert(svg []byte, format string, args ...string) ([]byte, error) {
	if _, err := exec.LookPath(converterBinary); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err,
			"%s not found: install librsvg for %s output", converterBinary, format)
	}

	cmd := exec.Command(converterBinary, append([]string{"--format=" + format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err,
			"%s failed: %s", converterBinary, stderr.String())
	}
	return out.Bytes(), nil
}
