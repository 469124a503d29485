package main

import "image/color"

var plotColors = []color.Color{
	color.NRGBA{R: 0xe5, G: 0x39, B: 0x35, A: 0xff},
	color.NRGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff},
	color.NRGBA{R: 0xff, G: 0x8f, B: 0x00, A: 0xff},
	color.NRGBA{R: 0x43, G: 0xa0, B: 0x47, A: 0xff},
}
