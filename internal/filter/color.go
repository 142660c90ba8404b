package filter

// Luminance weights in thousandths (ITU-R BT.601).
const (
	lumaR     = 299
	lumaG     = 587
	lumaB     = 114
	lumaScale = lumaR + lumaG + lumaB
)

// Luma returns the BT.601 luminance of an RGB triple, rounded half-up.
// The result is always in [0, 255]; for r == g == b it equals r.
func Luma(r, g, b uint8) uint8 {
	y := (lumaR*int(r) + lumaG*int(g) + lumaB*int(b) + lumaScale/2) / lumaScale
	return clampByte(y)
}

// Grayscale replaces R, G and B of every pixel with its luminance.
// Alpha is unchanged. pix is modified in place.
func Grayscale(pix []uint8) {
	for i := 0; i+3 < len(pix); i += 4 {
		y := Luma(pix[i+0], pix[i+1], pix[i+2])
		pix[i+0] = y
		pix[i+1] = y
		pix[i+2] = y
	}
}

// Brightness adds delta to R, G and B of every pixel with saturation at
// 0 and 255. Alpha is unchanged. pix is modified in place.
func Brightness(pix []uint8, delta int) {
	if delta == 0 {
		return
	}
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = clampByte(int(pix[i+0]) + delta)
		pix[i+1] = clampByte(int(pix[i+1]) + delta)
		pix[i+2] = clampByte(int(pix[i+2]) + delta)
	}
}

// clampByte saturates v to [0, 255].
func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
