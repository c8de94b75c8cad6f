package overlay

import (
	"bytes"
	"hash/fnv"
	"image"

	// Formats accepted by the image builder. Senders typically ship PNG, but
	// anything the decoders recognize works.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultImageCacheSize bounds the decoded-image memo cache. Add-ons tend to
// resend the same sprites on every refresh, so a small content-keyed cache
// absorbs nearly all repeat decodes.
const DefaultImageCacheSize = 100

// decodeImage turns an encoded payload into a drawable image, memoized by
// raw byte content.
func (e *Engine) decodeImage(raw []byte) (image.Image, error) {
	h := fnv.New64a()
	_, _ = h.Write(raw) // fnv.Write never returns an error
	key := h.Sum64()

	if img, ok := e.images.Get(key); ok {
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	e.images.Put(key, img)
	return img, nil
}
