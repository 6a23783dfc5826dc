package emu

// The monitor is mounted on its side: video RAM holds 224 columns of 256
// pixels, one bit each, bottom pixel first.
const (
	Width  = 224
	Height = 256
)

type rgb struct{ r, g, b byte }

var (
	white = rgb{0xFF, 0xFF, 0xFF}
	red   = rgb{0xFF, 0x30, 0x30}
	green = rgb{0x30, 0xFF, 0x30}
)

// gel returns the color of a lit pixel under the cabinet overlay.
func gel(x, y int) rgb {
	switch {
	case y >= 32 && y < 64:
		return red
	case y >= 184 && y < 240:
		return green
	case y >= 240 && x >= 16 && x < 134:
		return green
	}
	return white
}

func (m *Machine) render() {
	vram := m.bus.Slice(vramStart, vramEnd)
	for i, v := range vram {
		col := i / 32
		base := (i % 32) * 8
		for bit := 0; bit < 8; bit++ {
			x := col
			y := Height - 1 - (base + bit)
			o := (y*Width + x) * 4
			c := rgb{}
			if v&(1<<bit) != 0 {
				c = white
				if m.cfg.Overlay {
					c = gel(x, y)
				}
			}
			m.fb[o+0], m.fb[o+1], m.fb[o+2], m.fb[o+3] = c.r, c.g, c.b, 0xFF
		}
	}
}

func (m *Machine) Framebuffer() []byte { return m.fb }
