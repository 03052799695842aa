package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/battlesnakeio/snake/rules"
	"github.com/mattn/go-runewidth"
	termbox "github.com/nsf/termbox-go"
)

const (
	defaultColor = termbox.ColorDefault
	bgColor      = termbox.ColorDefault
	snakeColor   = termbox.ColorGreen
	headColor    = termbox.ColorYellow
	appleColor   = termbox.ColorRed

	// Terminal cells are about twice as tall as they are wide.
	cellWidth = 2
	left      = 2
	top       = 2
)

// screen draws every frame to the terminal.
type screen struct{}

func (*screen) Observe(ctx context.Context, f *rules.Frame) error {
	return render(f)
}

func render(frame *rules.Frame) error {
	if frame == nil {
		return errors.New("received nil frame")
	}
	err := termbox.Clear(defaultColor, defaultColor)
	if err != nil {
		return err
	}

	renderTitle(frame)
	renderBoard(frame.Grid)
	renderApple(frame.Apple)
	renderSnake(frame.Snake)

	return termbox.Flush()
}

func renderTitle(f *rules.Frame) {
	text := fmt.Sprintf("Snake! - Turn %d  Length %d  Best %d  Resets %d", f.Turn, f.Length, f.Best, f.Resets)
	tbprint(left, top-1, defaultColor, defaultColor, text)
	tbprint(left, top+f.Grid.Height+2, defaultColor, defaultColor, "arrows/wasd to steer, esc to quit")
}

func renderSnake(body []rules.Point) {
	for i := len(body) - 1; i >= 0; i-- {
		color := snakeColor
		if i == 0 {
			color = headColor
		}
		setGridCell(body[i], ' ', color)
	}
}

func renderApple(p rules.Point) {
	setGridCell(p, ' ', appleColor)
}

func setGridCell(p rules.Point, ch rune, bg termbox.Attribute) {
	x, y := screenPos(p)
	for i := 0; i < cellWidth; i++ {
		termbox.SetCell(x+i, y, ch, defaultColor, bg)
	}
}

// screenPos maps a grid point to the terminal cell of its left half.
func screenPos(p rules.Point) (int, int) {
	return left + 1 + p.X*cellWidth, top + 1 + p.Y
}

func renderBoard(g rules.Grid) {
	var (
		right  = left + 1 + g.Width*cellWidth
		bottom = top + 1 + g.Height
	)
	for i := top + 1; i < bottom; i++ {
		termbox.SetCell(left, i, '│', defaultColor, bgColor)
		termbox.SetCell(right, i, '│', defaultColor, bgColor)
	}

	termbox.SetCell(left, top, '┌', defaultColor, bgColor)
	termbox.SetCell(left, bottom, '└', defaultColor, bgColor)
	termbox.SetCell(right, top, '┐', defaultColor, bgColor)
	termbox.SetCell(right, bottom, '┘', defaultColor, bgColor)

	fill(left+1, top, g.Width*cellWidth, 1, termbox.Cell{Ch: '─'})
	fill(left+1, bottom, g.Width*cellWidth, 1, termbox.Cell{Ch: '─'})
}

func fill(x, y, w, h int, cell termbox.Cell) {
	for ly := 0; ly < h; ly++ {
		for lx := 0; lx < w; lx++ {
			termbox.SetCell(x+lx, y+ly, cell.Ch, cell.Fg, cell.Bg)
		}
	}
}

func tbprint(x, y int, fg, bg termbox.Attribute, msg string) {
	for _, c := range msg {
		termbox.SetCell(x, y, c, fg, bg)
		x += runewidth.RuneWidth(c)
	}
}
