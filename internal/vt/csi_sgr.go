package vt

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
)

// applySgr folds Select Graphic Rendition parameters into pen. Attributes are
// cumulative: only the parameters present change the pen.
func applySgr(params ansi.Params, pen *uv.Style) {
	if len(params) == 0 {
		*pen = uv.Style{}
		return
	}

	for i := 0; i < len(params); i++ {
		param, hasMore, _ := params.Param(i, 0)
		switch param {
		case 0:
			*pen = uv.Style{}
		case 1:
			setAttr(pen, uv.AttrBold, true)
		case 2:
			setAttr(pen, uv.AttrFaint, true)
		case 3:
			setAttr(pen, uv.AttrItalic, true)
		case 4:
			// 4:n selects an underline style.
			if next, _, ok := params.Param(i+1, 0); hasMore && ok && next <= 5 {
				i++
				pen.Underline = uv.Underline(next)
			} else {
				pen.Underline = uv.UnderlineSingle
			}
		case 5:
			setAttr(pen, uv.AttrBlink, true)
		case 6:
			setAttr(pen, uv.AttrRapidBlink, true)
		case 7:
			setAttr(pen, uv.AttrReverse, true)
		case 8:
			setAttr(pen, uv.AttrConceal, true)
		case 9:
			setAttr(pen, uv.AttrStrikethrough, true)
		case 21:
			pen.Underline = uv.UnderlineDouble
		case 22:
			setAttr(pen, uv.AttrBold|uv.AttrFaint, false)
		case 23:
			setAttr(pen, uv.AttrItalic, false)
		case 24:
			pen.Underline = uv.UnderlineNone
		case 25:
			setAttr(pen, uv.AttrBlink|uv.AttrRapidBlink, false)
		case 27:
			setAttr(pen, uv.AttrReverse, false)
		case 28:
			setAttr(pen, uv.AttrConceal, false)
		case 29:
			setAttr(pen, uv.AttrStrikethrough, false)
		case 30, 31, 32, 33, 34, 35, 36, 37:
			pen.Fg = ansi.BasicColor(param - 30) //nolint:gosec
		case 38, 48, 58:
			var c color.Color
			n := ansi.ReadStyleColor(params[i:], &c)
			if n == 0 {
				// Unreadable colour: the rest of the sequence is ambiguous.
				return
			}
			switch param {
			case 38:
				pen.Fg = c
			case 48:
				pen.Bg = c
			default:
				pen.UnderlineColor = c
			}
			i += n - 1
		case 39:
			pen.Fg = nil
		case 40, 41, 42, 43, 44, 45, 46, 47:
			pen.Bg = ansi.BasicColor(param - 40) //nolint:gosec
		case 49:
			pen.Bg = nil
		case 59:
			pen.UnderlineColor = nil
		case 90, 91, 92, 93, 94, 95, 96, 97:
			pen.Fg = ansi.BasicColor(param - 90 + 8) //nolint:gosec
		case 100, 101, 102, 103, 104, 105, 106, 107:
			pen.Bg = ansi.BasicColor(param - 100 + 8) //nolint:gosec
		}
	}
}

func setAttr(s *uv.Style, attr uint8, on bool) {
	if on {
		s.Attrs |= attr
	} else {
		s.Attrs &^= attr
	}
}
