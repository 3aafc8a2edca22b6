package tui

import uv "github.com/charmbracelet/ultraviolet"

// Layout dimensions
const (
	// HeaderHeight is the height of the header in rows
	HeaderHeight = 2
	// FooterHeight is the height of the footer in rows
	FooterHeight = 1
	// ContentMaxWidth caps the catalog column on wide terminals
	ContentMaxWidth = 96
	// CompactWidthBreakpoint is the width under which descriptions are hidden
	CompactWidthBreakpoint = 60
)

// Layout defines the rectangular regions of the storefront screen
type Layout struct {
	Area    uv.Rectangle
	Header  uv.Rectangle
	Main    uv.Rectangle
	Footer  uv.Rectangle
	Compact bool
}

// CalculateLayout computes the layout rectangles based on terminal dimensions
func CalculateLayout(width, height int) Layout {
	area := uv.Rectangle{
		Max: uv.Position{X: width, Y: height},
	}

	// Split vertically: header | main | footer
	headerRect, rest := uv.SplitVertical(area, uv.Fixed(min(HeaderHeight, area.Dy())))
	mainRect, footerRect := uv.SplitVertical(rest, uv.Fixed(max(rest.Dy()-FooterHeight, 0)))

	// Center the main column when the terminal is wider than the content
	if mainRect.Dx() > ContentMaxWidth {
		pad := (mainRect.Dx() - ContentMaxWidth) / 2
		mainRect.Min.X += pad
		mainRect.Max.X = mainRect.Min.X + ContentMaxWidth
	}

	return Layout{
		Area:    area,
		Header:  headerRect,
		Main:    mainRect,
		Footer:  footerRect,
		Compact: width < CompactWidthBreakpoint,
	}
}
