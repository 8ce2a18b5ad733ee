// Package pipeline contains the batch drivers for the two stitcher
// workflows: ordered concatenation of a directory of videos, and
// transcript-synchronized subtitle generation. Drivers process videos
// sequentially, record per-video outcomes in the run journal, and keep
// going when a single video fails.
package pipeline
