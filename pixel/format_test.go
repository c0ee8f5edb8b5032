package pixel

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestFormat_BytesPerPixel(t *testing.T) {
	if got := FormatRGBA8888.BytesPerPixel(); got != 4 {
		t.Errorf("RGBA8888 = %d, want 4", got)
	}
	if got := FormatRGBA4444.BytesPerPixel(); got != 2 {
		t.Errorf("RGBA4444 = %d, want 2", got)
	}
}

func TestFormat_StoreLoad(t *testing.T) {
	c := RGBA(0x12, 0x34, 0x56, 0x78)

	buf := make([]byte, 4)
	FormatRGBA8888.Store(buf, c)
	if buf[0] != 0x12 || buf[1] != 0x34 || buf[2] != 0x56 || buf[3] != 0x78 {
		t.Errorf("RGBA8888 memory order = % x, want 12 34 56 78", buf)
	}
	if got := FormatRGBA8888.Load(buf); got != c {
		t.Errorf("RGBA8888 Load = %+v, want %+v", got, c)
	}

	FormatRGBA4444.Store(buf, c)
	if buf[0] != 0x31 || buf[1] != 0x75 {
		t.Errorf("RGBA4444 memory = % x, want 31 75", buf[:2])
	}
	if got, want := FormatRGBA4444.Load(buf), c.Quantize4(); got != want {
		t.Errorf("RGBA4444 Load = %+v, want %+v", got, want)
	}
}

func TestFormat_PackUnpack(t *testing.T) {
	for _, f := range []Format{FormatRGBA8888, FormatRGBA4444} {
		for _, c := range []Color{White, Black, Transparent, RGBA(0xEE, 0x88, 0x11, 0xAA)} {
			if got := f.Unpack(f.Pack(c)); got != c {
				t.Errorf("%v: Unpack(Pack(%+v)) = %+v", f, c, got)
			}
		}
	}
}

func TestFormat_TextureFormat(t *testing.T) {
	if got := FormatRGBA8888.TextureFormat(); got != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("TextureFormat = %v, want RGBA8Unorm", got)
	}
	if got := FormatRGBA4444.TextureFormat(); got != gputypes.TextureFormatUndefined {
		t.Errorf("TextureFormat = %v, want Undefined", got)
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range []Format{FormatRGBA8888, FormatRGBA4444} {
		got, ok := ParseFormat(f.String())
		if !ok || got != f {
			t.Errorf("ParseFormat(%q) = %v, %v", f.String(), got, ok)
		}
	}
	if _, ok := ParseFormat("rgb565"); ok {
		t.Error("ParseFormat(rgb565) should fail")
	}
	if Format(9).Valid() {
		t.Error("Format(9) should be invalid")
	}
}
