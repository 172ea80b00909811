package morton

import "testing"

func TestEncode2DDecode2DRoundTrip(t *testing.T) {
	for x := uint64(0); x < 32; x++ {
		for y := uint64(0); y < 32; y++ {
			code := Encode2D(x, y)
			gotX, gotY := Decode2D(code)
			if gotX != x || gotY != y {
				t.Fatalf("round trip failed for (%d,%d): got (%d,%d) via code %d", x, y, gotX, gotY, code)
			}
		}
	}
}

func TestEncode3DDecode3DRoundTrip(t *testing.T) {
	for x := uint64(0); x < 16; x++ {
		for y := uint64(0); y < 16; y++ {
			for z := uint64(0); z < 16; z++ {
				code := Encode3D(x, y, z)
				gotX, gotY, gotZ := Decode3D(code)
				if gotX != x || gotY != y || gotZ != z {
					t.Fatalf("round trip failed for (%d,%d,%d): got (%d,%d,%d) via code %d",
						x, y, z, gotX, gotY, gotZ, code)
				}
			}
		}
	}
}

func TestEncode2DIsBijectiveOverRange(t *testing.T) {
	const k = 16
	seen := make(map[uint64]bool, k*k)
	for x := uint64(0); x < k; x++ {
		for y := uint64(0); y < k; y++ {
			code := Encode2D(x, y)
			if seen[code] {
				t.Fatalf("duplicate Morton code %d for (%d,%d)", code, x, y)
			}
			seen[code] = true
		}
	}
	if len(seen) != k*k {
		t.Fatalf("expected %d distinct codes, got %d", k*k, len(seen))
	}
}
