package export

import (
	"errors"
	"image"
	"image/gif"
	"io"
)

// WriteGIF encodes frames as a looping animation with delay in 100ths of
// a second per frame.
func WriteGIF(w io.Writer, frames []*image.Paletted, delay int) error {
	if len(frames) == 0 {
		return errors.New("no frames to encode")
	}
	if delay < 1 {
		delay = 1
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, &anim)
}
