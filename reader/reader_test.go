package reader

import (
	"image"
	"testing"
)

func TestNormalizeRotation(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 0},
		{90, 90},
		{270, 270},
		{360, 0},
		{450, 90},
		{-90, 270},
		{-450, 270},
		{91, 90},
	}
	for _, tt := range tests {
		if got := normalizeRotation(tt.in); got != tt.want {
			t.Errorf("normalizeRotation(%d): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestImageFromSamplesGray(t *testing.T) {
	samples := make([]byte, 6)
	for i := range samples {
		samples[i] = byte(i * 40)
	}
	img, err := imageFromSamples(3, 2, "DeviceGray", samples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gray, ok := img.(*image.Gray)
	if !ok {
		t.Fatalf("expected *image.Gray, got %T", img)
	}
	if gray.GrayAt(2, 1).Y != 200 {
		t.Errorf("expected sample 200 at (2,1), got %d", gray.GrayAt(2, 1).Y)
	}
}

func TestImageFromSamplesRGB(t *testing.T) {
	samples := []byte{
		255, 0, 0, 0, 255, 0,
		0, 0, 255, 10, 20, 30,
	}
	img, err := imageFromSamples(2, 2, "DeviceRGB", samples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, g, b, a := img.At(1, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 || a>>8 != 255 {
		t.Errorf("unexpected pixel: %d %d %d %d", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestImageFromSamplesErrors(t *testing.T) {
	if _, err := imageFromSamples(3, 2, "DeviceGray", make([]byte, 5)); err == nil {
		t.Error("expected error for short data")
	}
	if _, err := imageFromSamples(2, 2, "DeviceCMYK", make([]byte, 16)); err == nil {
		t.Error("expected error for unsupported color space")
	}
	if _, err := imageFromSamples(0, 2, "DeviceGray", nil); err == nil {
		t.Error("expected error for zero width")
	}
}
