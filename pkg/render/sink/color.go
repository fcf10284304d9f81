package sink

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var namedColors = map[string]color.NRGBA{
	"black": {0, 0, 0, 255},
	"white": {255, 255, 255, 255},
	"red":   {255, 0, 0, 255},
	"green": {0, 128, 0, 255},
	"blue":  {0, 0, 255, 255},
	"gray":  {128, 128, 128, 255},
	"grey":  {128, 128, 128, 255},
}

// parseColor reads #rgb, #rrggbb, #rrggbbaa, rgb(), rgba() and a few color
// names, scaling the alpha channel by opacity. ok is false for "", "none",
// "transparent" and anything it cannot read.
func parseColor(s string, opacity float64) (c color.NRGBA, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if named, found := namedColors[s]; found {
		c, ok = named, true
	} else if strings.HasPrefix(s, "#") {
		c, ok = parseHex(s)
	} else if strings.HasPrefix(s, "rgb") {
		c, ok = parseRGBFunc(s)
	}
	if !ok {
		return color.NRGBA{}, false
	}
	if opacity > 0 && opacity < 1 {
		c.A = uint8(float64(c.A)*opacity + 0.5)
	}
	return c, true
}

// parseHex reads #rgb and #rrggbb through colorful, and the alpha byte of
// #rrggbbaa.
func parseHex(s string) (color.NRGBA, bool) {
	alpha := uint8(255)
	switch len(s) {
	case 4, 7:
	case 9:
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, false
		}
		alpha, s = uint8(a), s[:7]
	default:
		return color.NRGBA{}, false
	}
	hc, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, false
	}
	r, g, b := hc.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, true
}

// parseRGBFunc reads rgb(r, g, b) and rgba(r, g, b, a) with 0-255 channels
// and a 0-1 alpha.
func parseRGBFunc(s string) (color.NRGBA, bool) {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return color.NRGBA{}, false
	}
	fn, parts := s[:open], strings.Split(s[open+1:end], ",")
	if !(fn == "rgb" && len(parts) == 3) && !(fn == "rgba" && len(parts) == 4) {
		return color.NRGBA{}, false
	}
	var ch [4]float64
	ch[3] = 1
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return color.NRGBA{}, false
		}
		ch[i] = v
	}
	clamp := func(v, hi float64) float64 { return min(max(v, 0), hi) }
	return color.NRGBA{
		R: uint8(clamp(ch[0], 255) + 0.5),
		G: uint8(clamp(ch[1], 255) + 0.5),
		B: uint8(clamp(ch[2], 255) + 0.5),
		A: uint8(clamp(ch[3], 1)*255 + 0.5),
	}, true
}
