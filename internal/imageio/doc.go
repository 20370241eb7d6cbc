// Package imageio handles the file-level concerns of mosaic generation:
// decoding reference and tile images, enumerating tile directories, and
// encoding the finished canvas.
//
// # Supported formats
//
// Decoding supports PNG, JPEG, GIF, and uncompressed 24-bit BMP (the format
// the mosaic tool was originally built around). Encoding picks the codec from
// the output path's extension: ".bmp", ".png", ".jpg"/".jpeg".
//
// # Caching
//
// Candidate tiles are opened at least twice per run (once for dimensions,
// once for pixels), and a tile placed in several cells is read once more per
// placement. Cache keeps decoded images keyed by path so repeated loads stay
// in memory. Cache is safe for concurrent use; a mosaic run shares one cache
// across all pipeline stages.
//
// # Directory enumeration
//
// ListImages returns the regular files of a directory with a supported image
// extension, in lexicographic order. Ordering matters: candidate ids are
// assigned by position, and a stable order keeps runs reproducible.
package imageio
