package tilemap

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func mat3Approx(a, b Mat3, eps float64) bool {
	return a.Column(0).Approx(b.Column(0), eps) &&
		a.Column(1).Approx(b.Column(1), eps) &&
		a.Column(2).Approx(b.Column(2), eps)
}

func TestMat2_Inverse(t *testing.T) {
	tests := []struct {
		name string
		m    Mat2
		ok   bool
	}{
		{"identity", Mat2{A: 1, D: 1}, true},
		{"flip y", Mat2{A: 1, D: -1}, true},
		{"isometric", Mat2{A: 0.5, B: -0.5, C: 0.5, D: 0.5}, true},
		{"shear", Mat2{A: 1, B: 0.3, C: 0, D: 1}, true},
		{"zero", Mat2{}, false},
		{"rank one", Mat2{A: 1, B: 2, C: 2, D: 4}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := tt.m.Inverse()
			if ok != tt.ok {
				t.Fatalf("Inverse() ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			v := V2(3.25, -1.5)
			if got := inv.MulVec(tt.m.MulVec(v)); !got.Approx(v, epsilon) {
				t.Errorf("inv(m(v)) = %v, want %v", got, v)
			}
		})
	}
}

func TestMat3_MultiplyIdentity(t *testing.T) {
	m := Mat3{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6, G: 7, H: 8, I: 10}
	if got := m.Multiply(Identity3()); got != m {
		t.Errorf("m * I = %+v, want %+v", got, m)
	}
	if got := Identity3().Multiply(m); got != m {
		t.Errorf("I * m = %+v, want %+v", got, m)
	}
}

func TestMat3_Inverse(t *testing.T) {
	tests := []struct {
		name string
		m    Mat3
		ok   bool
	}{
		{"identity", Identity3(), true},
		{"scale", Scale3(2, 3, 4), true},
		{"rotate", RotateZ(math.Pi / 5), true},
		{"general", Mat3{A: 1, B: 2, C: 3, D: 0, E: 1, F: 4, G: 5, H: 6, I: 0}, true},
		{"singular", Mat3{A: 1, B: 2, C: 3, D: 2, E: 4, F: 6, G: 1, H: 1, I: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := tt.m.Inverse()
			if ok != tt.ok {
				t.Fatalf("Inverse() ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if got := tt.m.Multiply(inv); !mat3Approx(got, Identity3(), epsilon) {
				t.Errorf("m * inv(m) = %+v, want identity", got)
			}
		})
	}
}

func TestMat3_Linear2(t *testing.T) {
	m := Mat3{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6, G: 7, H: 8, I: 9}
	want := Mat2{A: 1, B: 2, C: 4, D: 5}
	if got := m.Linear2(); got != want {
		t.Errorf("Linear2() = %+v, want %+v", got, want)
	}
}

func TestAffine3_InverseRoundTrip(t *testing.T) {
	a := Affine3{
		Matrix:      RotateZ(0.7).Multiply(Scale3(2, 0.5, 1)),
		Translation: V3(10, -4, 2),
	}
	inv, ok := a.Inverse()
	if !ok {
		t.Fatal("Inverse() reported singular transform")
	}
	for _, p := range []Vec3{V3(0, 0, 0), V3(1, 2, 3), V3(-7.5, 4.25, 0)} {
		if got := inv.TransformPoint(a.TransformPoint(p)); !got.Approx(p, epsilon) {
			t.Errorf("inv(a(%v)) = %v", p, got)
		}
	}
}

func TestAffine3_Then(t *testing.T) {
	first := TranslateAffine(1, 2, 0)
	second := Affine3{Matrix: Scale3(2, 2, 1)}
	combined := first.Then(second)

	p := V3(3, 4, 0)
	want := second.TransformPoint(first.TransformPoint(p))
	if got := combined.TransformPoint(p); !got.Approx(want, epsilon) {
		t.Errorf("Then() = %v, want %v", got, want)
	}
}

func TestAffine3_SingularInverse(t *testing.T) {
	a := Affine3{Matrix: Scale3(1, 0, 1)}
	if _, ok := a.Inverse(); ok {
		t.Error("Inverse() of a flattening transform should fail")
	}
}
