package tray

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"sync"
)

// TooltipStarting is shown until the first menu is installed.
const TooltipStarting = "oh-my-claude - starting"

const iconSize = 22

var (
	iconOnce  sync.Once
	iconBytes []byte
)

// iconData returns a monochrome template icon: a ring with a dot, drawn
// black on transparent so macOS can tint it for light and dark menu bars.
func iconData() []byte {
	iconOnce.Do(func() {
		iconBytes = renderIcon(iconSize)
	})
	return iconBytes
}

func renderIcon(size int) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	c := float64(size-1) / 2
	outer := c
	inner := c - 2.5
	dot := c / 3

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)-c, float64(y)-c
			d2 := dx*dx + dy*dy
			if (d2 <= outer*outer && d2 >= inner*inner) || d2 <= dot*dot {
				img.SetNRGBA(x, y, color.NRGBA{A: 0xff})
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

// wrapICO packs a single PNG image into an ICO container, which is what the
// Windows tray expects. ICO entries may hold PNG data directly.
func wrapICO(pngData []byte, size int) []byte {
	const headerLen, entryLen = 6, 16

	var buf bytes.Buffer
	buf.Grow(headerLen + entryLen + len(pngData))

	// ICONDIR: reserved, type 1 (icon), one image.
	_ = binary.Write(&buf, binary.LittleEndian, [3]uint16{0, 1, 1})

	// ICONDIRENTRY. A dimension of 0 means 256.
	dim := byte(size)
	if size >= 256 {
		dim = 0
	}
	buf.Write([]byte{dim, dim, 0, 0})
	_ = binary.Write(&buf, binary.LittleEndian, [2]uint16{1, 32})
	_ = binary.Write(&buf, binary.LittleEndian, [2]uint32{uint32(len(pngData)), headerLen + entryLen})

	buf.Write(pngData)
	return buf.Bytes()
}
