package raster

import (
	stdcolor "image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen using half-block characters (▀), doubling vertical resolution:
// each terminal row packs two framebuffer rows, one into the foreground
// and one into the background color of the cell.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			topColor := fb.GetPixel(col, topY)
			botColor := fb.GetPixel(col, botY)

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToStdColor(topColor),
					Bg: rgbaToStdColor(botColor),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

func rgbaToStdColor(c Color) stdcolor.Color {
	if c.A == 0 {
		return nil
	}
	return stdcolor.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
