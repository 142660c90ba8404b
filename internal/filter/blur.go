package filter

// boxTaps is the number of samples in the 3x3 box kernel.
const boxTaps = 9

// BoxBlur applies a 3x3 mean filter to src and writes the result to dst.
//
// Neighbor coordinates outside the image are clamped to the nearest edge
// pixel. R, G and B are summed in an int accumulator and divided by 9 with
// truncation; alpha is copied from the center pixel.
//
// dst and src must both hold width*height*4 bytes and must not overlap.
func BoxBlur(dst, src []uint8, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	stride := width * 4

	for y := 0; y < height; y++ {
		// Clamp-to-edge row offsets.
		rowUp := clampIndex(y-1, height) * stride
		rowMid := y * stride
		rowDown := clampIndex(y+1, height) * stride

		for x := 0; x < width; x++ {
			colLeft := clampIndex(x-1, width) * 4
			colMid := x * 4
			colRight := clampIndex(x+1, width) * 4

			var r, g, b int
			for _, row := range [3]int{rowUp, rowMid, rowDown} {
				l := row + colLeft
				m := row + colMid
				rt := row + colRight
				r += int(src[l+0]) + int(src[m+0]) + int(src[rt+0])
				g += int(src[l+1]) + int(src[m+1]) + int(src[rt+1])
				b += int(src[l+2]) + int(src[m+2]) + int(src[rt+2])
			}

			ci := rowMid + colMid
			dst[ci+0] = clampByte(r / boxTaps)
			dst[ci+1] = clampByte(g / boxTaps)
			dst[ci+2] = clampByte(b / boxTaps)
			dst[ci+3] = src[ci+3]
		}
	}
}

// clampIndex clamps i to [0, n).
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
