package port

import "context"

// MediaTool delegates heavy media work to an external tool. Both calls block
// until the tool exits; the context bounds how long that may take.
type MediaTool interface {
	// Probe returns the pixel dimensions of the first video stream.
	Probe(ctx context.Context, path string) (width, height int, err error)
	// FastStart rewrites the container so playback metadata precedes media
	// data, without re-encoding. It returns the path of the rewritten file.
	FastStart(ctx context.Context, path string) (outPath string, err error)
}
