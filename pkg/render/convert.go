package render

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/matzehuels/viewstack/pkg/errors"
)

// converter is the librsvg command line tool.
const converter = "rsvg-convert"

// ToPDF converts SVG to PDF with rsvg-convert.
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "-f", "pdf")
}

// ToPNG converts SVG to PNG with rsvg-convert at the given zoom factor.
// A scale of 2 suits high-DPI displays; scale <= 0 means 1.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return convert(svg, "-f", "png", "-z", strconv.FormatFloat(scale, 'f', -1, 64))
}

// Available reports whether rsvg-convert is on PATH.
func Available() bool {
	_, err := exec.LookPath(converter)
	return err == nil
}

func convert(svg []byte, args ...string) ([]byte, error) {
	path, err := exec.LookPath(converter)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err,
			"%s not found (install librsvg: brew install librsvg, apt install librsvg2-bin)", converter)
	}
	var out, stderr bytes.Buffer
	cmd := exec.Command(path, args...)
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", converter, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return out.Bytes(), nil
}
