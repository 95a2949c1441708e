// Package engine orchestrates batch scans: it walks a directory of images,
// funnels each through OCR (with a content-hash cache in front), and hands
// the extracted text to the detection engine, collecting one report per
// source in submission order.
package engine
