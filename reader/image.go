package reader

import (
	"fmt"
	"image"
	"image/jpeg"
	"io"

	"seehuhn.de/go/pdf"
)

// Image decodes the named image XObject from the page's resources.
// Supported encodings are DCTDecode (JPEG) and FlateDecode or raw
// streams carrying 8-bit DeviceGray or DeviceRGB samples. Anything else
// returns an error the caller reports as a skipped image.
func (p *Page) Image(name string) (image.Image, error) {
	r := p.doc.r

	res, err := pdf.GetDict(r, p.dict["Resources"])
	if err != nil {
		return nil, fmt.Errorf("failed to read page resources: %w", err)
	}
	xobjs, err := pdf.GetDict(r, res["XObject"])
	if err != nil {
		return nil, fmt.Errorf("failed to read XObject dictionary: %w", err)
	}
	stm, err := pdf.GetStream(r, xobjs[pdf.Name(name)])
	if err != nil {
		return nil, fmt.Errorf("failed to read XObject %q: %w", name, err)
	}
	if stm == nil {
		return nil, fmt.Errorf("no XObject named %q", name)
	}

	subtype, err := pdf.GetName(r, stm.Dict["Subtype"])
	if err != nil || subtype != "Image" {
		return nil, fmt.Errorf("XObject %q is not an image", name)
	}

	filters, err := filterNames(r, stm.Dict["Filter"])
	if err != nil {
		return nil, err
	}

	// DCT-compressed data is a complete JPEG; hand the raw stream to
	// the JPEG decoder instead of the PDF filter chain.
	if len(filters) > 0 && filters[len(filters)-1] == "DCTDecode" {
		img, err := jpeg.Decode(stm.R)
		if err != nil {
			return nil, fmt.Errorf("failed to decode JPEG image %q: %w", name, err)
		}
		return img, nil
	}
	for _, f := range filters {
		if f != "FlateDecode" {
			return nil, fmt.Errorf("unsupported image filter %s on %q", f, name)
		}
	}

	width, err := pdf.GetInteger(r, stm.Dict["Width"])
	if err != nil {
		return nil, fmt.Errorf("image %q has no width: %w", name, err)
	}
	height, err := pdf.GetInteger(r, stm.Dict["Height"])
	if err != nil {
		return nil, fmt.Errorf("image %q has no height: %w", name, err)
	}
	bpc, err := pdf.GetInteger(r, stm.Dict["BitsPerComponent"])
	if err != nil || bpc != 8 {
		return nil, fmt.Errorf("unsupported bit depth for image %q", name)
	}
	colorSpace, err := pdf.GetName(r, stm.Dict["ColorSpace"])
	if err != nil {
		return nil, fmt.Errorf("image %q has no color space: %w", name, err)
	}

	decoded, err := pdf.DecodeStream(r, stm, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image stream %q: %w", name, err)
	}
	samples, err := io.ReadAll(decoded)
	if err != nil {
		return nil, fmt.Errorf("failed to read image samples %q: %w", name, err)
	}

	return imageFromSamples(int(width), int(height), string(colorSpace), samples)
}

// filterNames resolves a /Filter entry to its filter name chain
func filterNames(r pdf.Getter, obj pdf.Object) ([]string, error) {
	resolved, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve filter: %w", err)
	}
	switch f := resolved.(type) {
	case nil:
		return nil, nil
	case pdf.Name:
		return []string{string(f)}, nil
	case pdf.Array:
		var names []string
		for _, el := range f {
			n, err := pdf.GetName(r, el)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve filter name: %w", err)
			}
			names = append(names, string(n))
		}
		return names, nil
	default:
		return nil, fmt.Errorf("unexpected filter type %T", resolved)
	}
}

// imageFromSamples builds an image from raw 8-bit samples in row-major
// order
func imageFromSamples(width, height int, colorSpace string, samples []byte) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}

	switch colorSpace {
	case "DeviceGray":
		need := width * height
		if len(samples) < need {
			return nil, fmt.Errorf("short image data: %d of %d bytes", len(samples), need)
		}
		img := image.NewGray(image.Rect(0, 0, width, height))
		for y := 0; y < height; y++ {
			copy(img.Pix[y*img.Stride:], samples[y*width:(y+1)*width])
		}
		return img, nil

	case "DeviceRGB":
		need := width * height * 3
		if len(samples) < need {
			return nil, fmt.Errorf("short image data: %d of %d bytes", len(samples), need)
		}
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		for i := 0; i < width*height; i++ {
			img.Pix[i*4] = samples[i*3]
			img.Pix[i*4+1] = samples[i*3+1]
			img.Pix[i*4+2] = samples[i*3+2]
			img.Pix[i*4+3] = 0xff
		}
		return img, nil

	default:
		return nil, fmt.Errorf("unsupported color space %s", colorSpace)
	}
}
