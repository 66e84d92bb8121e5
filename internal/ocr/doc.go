// Package ocr reads text out of detected ink regions using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2). Callers
// pass a rendering of the drawing and the rectangle of a region; the region
// is cropped, flattened onto white, enlarged and recognized in memory
// without temporary files.
//
// # Prerequisites
//
// Tesseract and its language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// The default language is English ("eng"); any installed Tesseract language
// code may be passed instead.
//
// # Coordinates
//
// Word boxes are returned in the coordinate space of the image passed in.
// The canvas package renders drawings with document-space bounds, so word
// boxes line up with element and region coordinates directly.
//
// # Error Handling
//
// If word-level bounding box extraction fails (e.g., Tesseract version
// mismatch), RecognizeRegion still returns the text with an empty Words
// slice.
package ocr
