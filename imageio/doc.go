// Package imageio converts between encoded image files and vortex pixel
// buffers.
//
// Decoding registers PNG, JPEG and GIF from the standard library and BMP,
// TIFF and WebP from golang.org/x/image. Every decoded image is converted
// to non-premultiplied RGBA. WithMaxWidth downscales wide images on load so
// interactive runs stay bounded.
package imageio
