package main

import (
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/sw3d/pkg/raster"
)

// terminalRenderer owns a terminal-sized screen and flushes a framebuffer to
// it every frame. Each terminal row packs two framebuffer rows (half-block
// characters), so the backing framebuffer is always twice the terminal's
// row count.
type terminalRenderer struct {
	term *uv.Terminal
	cols int
	rows int
}

func newTerminalRenderer(term *uv.Terminal, cols, rows int) *terminalRenderer {
	return &terminalRenderer{term: term, cols: cols, rows: rows}
}

func (t *terminalRenderer) framebufferSize() (int, int) {
	return t.cols, t.rows * 2
}

func (t *terminalRenderer) render(fb *raster.Framebuffer) {
	area := uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: t.cols, Y: t.rows},
	}
	fb.Draw(t.term, area)
}

func (t *terminalRenderer) flush() error {
	return t.term.Render()
}
