// main.go - a terminal preview host for chart-go: feeds synthetic candles
// through the Engine facade and prints the resulting frame as a character
// grid, sized from the real terminal via golang.org/x/term. Lives outside
// the core package so the core never pulls in a rasterizer.
package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	chartgo "github.com/lucasmanoguerra/chart-go"
	"github.com/lucasmanoguerra/chart-go/core"
	"github.com/lucasmanoguerra/chart-go/render"
)

const (
	glyphWidth  = 8
	glyphHeight = 16
	barCount    = 120
)

// syntheticCandles produces a deterministic random-walk OHLC series so the
// demo output is reproducible across runs.
func syntheticCandles(n int) []core.OhlcBar {
	bars := make([]core.OhlcBar, n)
	state := uint64(0x2545F4914F6CDD1D)
	next := func() float64 {
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17
		return (float64(state%2000) - 1000) / 1000
	}

	price := 100.0
	for i := 0; i < n; i++ {
		open := price
		price += next() * 2
		close := price
		high := open
		if close > high {
			high = close
		}
		high += next()*0.5 + 0.25
		low := open
		if close < low {
			low = close
		}
		low -= next()*0.5 + 0.25
		bars[i] = core.OhlcBar{Time: float64(i), Open: open, High: high, Low: low, Close: close}
	}
	return bars
}

// terminalCells returns the usable (cols, rows) for the preview, falling
// back to a fixed size when stdout isn't a real terminal.
func terminalCells() (int, int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80, 24
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil || cols <= 0 || rows <= 0 {
		return 80, 24
	}
	return cols, rows
}

func buildEngine(widthPx, heightPx uint32) (*chartgo.Engine, error) {
	e := chartgo.NewEngine()
	if err := e.SetViewport(widthPx, heightPx); err != nil {
		return nil, fmt.Errorf("set viewport: %w", err)
	}

	bars := syntheticCandles(barCount)
	e.SetCandles(bars, chartgo.MainPaneID)

	scale, err := core.NewPriceScale(bars[0].Low, bars[0].High, 0.05, 0.05, false, core.PriceScaleModeLinear, 0)
	if err != nil {
		return nil, fmt.Errorf("seed price scale: %w", err)
	}
	e.SetPriceScale(chartgo.MainPaneID, scale)

	if err := e.AutoscaleFromCandles(chartgo.MainPaneID); err != nil {
		return nil, fmt.Errorf("autoscale: %w", err)
	}
	if err := e.FitToData(); err != nil {
		return nil, fmt.Errorf("fit to data: %w", err)
	}
	return e, nil
}

// renderGrid flattens frame into a cols x rows rune grid: filled rects
// (candle bodies) become '+', '-' or '#' by fill colour, vertical lines
// (wicks) become a bar; lines spanning more than one column are skipped.
func renderGrid(frame render.RenderFrame, cols, rows int) [][]rune {
	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = make([]rune, cols)
		for c := range grid[r] {
			grid[r][c] = ' '
		}
	}

	plot := func(x, y float64) (int, int, bool) {
		c := int(x) / glyphWidth
		r := int(y) / glyphHeight
		if c < 0 || c >= cols || r < 0 || r >= rows {
			return 0, 0, false
		}
		return c, r, true
	}

	for _, rect := range frame.Rects {
		glyph := rune('#')
		if rect.FillColor.G > rect.FillColor.R {
			glyph = '+'
		} else if rect.FillColor.R > rect.FillColor.G {
			glyph = '-'
		}
		c, rTop, ok := plot(rect.X, rect.Y)
		if !ok {
			continue
		}
		_, rBot, ok2 := plot(rect.X, rect.Y+rect.Height)
		if !ok2 {
			rBot = rTop
		}
		for row := rTop; row <= rBot && row < rows; row++ {
			grid[row][c] = glyph
		}
	}

	for _, line := range frame.Lines {
		c1, r1, ok1 := plot(line.X1, line.Y1)
		c2, r2, ok2 := plot(line.X2, line.Y2)
		if !ok1 || !ok2 || c1 != c2 {
			continue
		}
		if r1 > r2 {
			r1, r2 = r2, r1
		}
		for row := r1; row <= r2 && row < rows; row++ {
			if grid[row][c1] == ' ' {
				grid[row][c1] = '|'
			}
		}
	}

	return grid
}

func main() {
	cols, rows := terminalCells()
	widthPx := uint32(cols * glyphWidth)
	heightPx := uint32(rows * glyphHeight)

	e, err := buildEngine(widthPx, heightPx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chartdemo: %v\n", err)
		os.Exit(1)
	}

	layered, err := e.BuildRenderFrame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chartdemo: build render frame: %v\n", err)
		os.Exit(1)
	}

	grid := renderGrid(layered.Flatten(), cols, rows)
	for _, row := range grid {
		fmt.Println(string(row))
	}
}
