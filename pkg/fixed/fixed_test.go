package fixed

import (
	"math"
	"testing"

	xfixed "golang.org/x/image/math/fixed"
)

const ulp = 1.0 / 65536

func TestConstants(t *testing.T) {
	if One != 0x10000 {
		t.Errorf("One = %#x, want 0x10000", uint32(One))
	}
	if FracMask != 0xFFFF {
		t.Errorf("FracMask = %#x, want 0xFFFF", uint32(FracMask))
	}
	if IntMask != 0xFFFF0000 {
		t.Errorf("IntMask = %#x, want 0xFFFF0000", uint32(IntMask))
	}
	if One != FromFloat(1.0) {
		t.Errorf("FromFloat(1.0) = %v, want One", FromFloat(1.0))
	}
}

func TestFromFloat(t *testing.T) {
	for _, c := range []struct {
		in  float64
		out Fixed
	}{
		{0, 0},
		{1, 0x10000},
		{0.5, 0x8000},
		{0.25, 0x4000},
		{2.75, 0x2C000},
		{255, 0xFF0000},
		{65535, 0xFFFF0000},
		{1.0 / 65536, 1},
		{1.0 / 131072 * 0.9, 0}, // below half an ulp rounds down
	} {
		got := FromFloat(c.in)
		if got != c.out {
			t.Errorf("FromFloat(%v) = %#x, want: %#x", c.in, uint32(got), uint32(c.out))
		}
	}
}

func TestFloatFloat32(t *testing.T) {
	if got := Float[float32](0x18000); got != 1.5 {
		t.Errorf("Float[float32](0x18000) = %v, want 1.5", got)
	}
}

func TestRoundTripExact(t *testing.T) {
	// Every value with a 16 bit fraction survives the round trip.
	for _, whole := range []uint32{0, 1, 7, 255, 1000, 32767, 65535} {
		for frac := uint32(0); frac < 1<<16; frac += 251 {
			v := float64(whole) + float64(frac)/65536
			got := Float[float64](FromFloat(v))
			if math.Abs(got-v) > 1e-4 {
				t.Fatalf("round trip %v: got %v", v, got)
			}
			if got != v {
				t.Fatalf("round trip %v is not exact: got %v", v, got)
			}
		}
	}
}

func TestRoundTripArbitrary(t *testing.T) {
	for v := 0.0; v < 65536; v += 97.123457 {
		got := Float[float64](FromFloat(v))
		if math.Abs(got-v) > ulp {
			t.Errorf("round trip %v: got %v (err %g)", v, got, got-v)
		}
	}
}

func TestInRange(t *testing.T) {
	for _, c := range []struct {
		in   float64
		want bool
	}{
		{0, true},
		{1.5, true},
		{65535.9, true},
		{65536, false},
		{-0.1, false},
		{math.Inf(1), false},
		{math.NaN(), false},
	} {
		if got := InRange(c.in); got != c.want {
			t.Errorf("InRange(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFromInt(t *testing.T) {
	for _, n := range []int{0, 1, 2, 255, 4096, MaxWhole} {
		if got, want := FromInt(n), FromFloat(float64(n)); got != want {
			t.Errorf("FromInt(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestFloorFracInt(t *testing.T) {
	f := FromFloat(12.75)
	if got := f.Floor(); got != FromInt(12) {
		t.Errorf("Floor(%v) = %v, want 12", f, got)
	}
	if got := f.Frac(); got != 0xC000 {
		t.Errorf("Frac(%v) = %#x, want 0xC000", f, uint32(got))
	}
	if got := f.Int(); got != 12 {
		t.Errorf("Int(%v) = %d, want 12", f, got)
	}
	if f.Floor()+f.Frac() != f {
		t.Errorf("Floor+Frac != %v", f)
	}
}

func TestFromFloatWholeMatchesFromInt(t *testing.T) {
	for _, c := range []struct {
		f Fixed
		n int
	}{
		{FromFloat(0.0), 0},
		{FromFloat(255.0), 255},
		{FromFloat(float32(1000.0)), 1000},
		{FromFloat(65535.0), MaxWhole},
	} {
		if want := FromInt(c.n); c.f != want {
			t.Errorf("FromFloat(%d.0) = %#x, want: %#x", c.n, uint32(c.f), uint32(want))
		}
	}
}

func TestMulIdentity(t *testing.T) {
	for x := 0.0; x < 100; x += 0.37 {
		a := FromFloat(x)
		got := Float[float64](Mul(a, One))
		if math.Abs(got-x) > ulp {
			t.Errorf("Mul(%v, One) = %v, want %v", x, got, x)
		}
		if Mul(a, One) != a {
			t.Errorf("Mul(%v, One) = %v, not bit identical", a, Mul(a, One))
		}
	}
}

func TestMulCommutes(t *testing.T) {
	vals := []Fixed{0, 1, 0x8000, One, FromFloat(1.5), FromFloat(3.14159), FromFloat(127.25), FromFloat(255.0), 0x7FFF1234}
	for _, a := range vals {
		for _, b := range vals {
			if Mul(a, b) != Mul(b, a) {
				t.Errorf("Mul(%v, %v) = %v but Mul(%v, %v) = %v", a, b, Mul(a, b), b, a, Mul(b, a))
			}
		}
	}
}

func TestMul(t *testing.T) {
	for _, c := range []struct {
		a, b float64
		out  float64
	}{
		{0, 1, 0},
		{0.5, 0.5, 0.25},
		{2, 3, 6},
		{1.5, 1.5, 2.25},
		{0.5, 255, 127.5},
		{255, 255, 65025},
		{1.0 / 65536, 1.0 / 65536, 0}, // underflows to zero
	} {
		got := Float[float64](Mul(FromFloat(c.a), FromFloat(c.b)))
		if got != c.out {
			t.Errorf("Mul(%v, %v) = %v, want: %v", c.a, c.b, got, c.out)
		}
	}
}

func TestMulAccuracy(t *testing.T) {
	for x := 0.0; x < 180; x += 3.3 {
		for y := 0.0; y < 180; y += 2.9 {
			a, b := FromFloat(x), FromFloat(y)
			want := Float[float64](a) * Float[float64](b)
			got := Float[float64](a.Mul(b))
			if math.Abs(got-want) > 2*ulp {
				t.Errorf("%v * %v = %v, want %v", a, b, got, want)
			}
		}
	}
}

func TestRatio(t *testing.T) {
	if got := Ratio(2, 1); got != FromInt(2) {
		t.Errorf("Ratio(2, 1) = %v", got)
	}
	if got := Ratio(1, 2); got != 0x8000 {
		t.Errorf("Ratio(1, 2) = %v", got)
	}
	got := Float[float64](Ratio(640, 800))
	if math.Abs(got-0.8) > ulp {
		t.Errorf("Ratio(640, 800) = %v, want 0.8", got)
	}
}

func TestString(t *testing.T) {
	for _, c := range []struct {
		in   Fixed
		want string
	}{
		{0, "0.00000"},
		{One, "1.00000"},
		{0x8000, "0.50000"},
		{FromFloat(255.25), "255.25000"},
	} {
		if got := c.in.String(); got != c.want {
			t.Errorf("%#x.String() = %q, want %q", uint32(c.in), got, c.want)
		}
	}
}

func TestInt26_6(t *testing.T) {
	f := FromFloat(3.5)
	if got, want := f.Int26_6(), xfixed.I(3)+32; got != want {
		t.Errorf("Int26_6(%v) = %v, want %v", f, got, want)
	}
	if got := FromInt26_6(f.Int26_6()); got != f {
		t.Errorf("FromInt26_6 round trip: %v, want %v", got, f)
	}
	if got := FromInt26_6(-64); got != 0 {
		t.Errorf("FromInt26_6(-64) = %v, want 0", got)
	}
}
