package hashrand

import "testing"

func TestHash64Deterministic(t *testing.T) {
	a := Hash64(1, 42)
	b := Hash64(1, 42)
	if a != b {
		t.Fatalf("Hash64 not deterministic: %d != %d", a, b)
	}
}

func TestHash64Avalanche(t *testing.T) {
	a := Hash64(1, 42)
	b := Hash64(1, 43)
	if a == b {
		t.Fatalf("Hash64(1,42) == Hash64(1,43); expected different digests")
	}
}

func TestBinomialConservesRange(t *testing.T) {
	for _, hashSample := range []bool{false, true} {
		cfg := Config{HashSample: hashSample}
		for trial := uint64(0); trial < 64; trial++ {
			digest := Hash64(7, trial)
			k, err := Binomial(digest, 1000, 0.37, cfg)
			if err != nil {
				t.Fatalf("Binomial returned error: %v", err)
			}
			if k < 0 || k > 1000 {
				t.Fatalf("Binomial(%d, 1000, 0.37) = %d, out of [0,1000]", digest, k)
			}
		}
	}
}

func TestBinomialDeterministic(t *testing.T) {
	digest := Hash64(7, 99)
	cfg := Config{HashSample: true}
	a, err := Binomial(digest, 500, 0.2, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Binomial(digest, 500, 0.2, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Fatalf("exact Binomial not deterministic: %d != %d", a, b)
	}
}

func TestBinomialEdgeProbabilities(t *testing.T) {
	digest := Hash64(1, 1)
	cfg := Config{HashSample: true}

	if k, err := Binomial(digest, 100, 0, cfg); err != nil || k != 0 {
		t.Fatalf("Binomial(n, 0) = (%d, %v); want (0, nil)", k, err)
	}
	if k, err := Binomial(digest, 100, 1, cfg); err != nil || k != 100 {
		t.Fatalf("Binomial(n, 1) = (%d, %v); want (100, nil)", k, err)
	}
	if k, err := Binomial(digest, 0, 0.5, cfg); err != nil || k != 0 {
		t.Fatalf("Binomial(0, p) = (%d, %v); want (0, nil)", k, err)
	}
}

func TestBinomialRejectsInvalidInputs(t *testing.T) {
	if _, err := Binomial(0, -1, 0.5, Config{}); err != ErrNegativeTrials {
		t.Fatalf("expected ErrNegativeTrials, got %v", err)
	}
	if _, err := Binomial(0, 10, 1.5, Config{}); err != ErrInvalidProbability {
		t.Fatalf("expected ErrInvalidProbability, got %v", err)
	}
	if _, err := Binomial(0, 10, -0.1, Config{}); err != ErrInvalidProbability {
		t.Fatalf("expected ErrInvalidProbability, got %v", err)
	}
}

func TestUniformStreamDeterministicAndBounded(t *testing.T) {
	digest := Hash64(3, 17)
	s1 := NewUniformStream(digest)
	s2 := NewUniformStream(digest)

	for i := 0; i < 10; i++ {
		a := s1.Float64()
		b := s2.Float64()
		if a != b {
			t.Fatalf("UniformStream draw %d diverged: %v != %v", i, a, b)
		}
		if a < 0 || a >= 1 {
			t.Fatalf("Float64() = %v, out of [0,1)", a)
		}
	}
}

func TestUniformStreamIn(t *testing.T) {
	s := NewUniformStream(Hash64(9, 9))
	for i := 0; i < 100; i++ {
		v := s.In(5, 10)
		if v < 5 || v >= 10 {
			t.Fatalf("In(5,10) = %v, out of range", v)
		}
	}
}
