package core

import (
	"math"
	"testing"
)

func TestProfile_NumericColumn(t *testing.T) {
	profiles := Profile(MustTable(Floats("values", 1, 2, 2, 3, 3, 4, 4, 5, 100)))
	if len(profiles) != 1 {
		t.Fatalf("len(Profile()) = %d, want 1", len(profiles))
	}
	p := profiles[0]

	if p.Kind != "numeric" || p.Rows != 9 || p.Missing != 0 {
		t.Errorf("unexpected header fields: %+v", p)
	}
	if p.Min != 1 || p.Max != 100 {
		t.Errorf("Min/Max = %v/%v, want 1/100", p.Min, p.Max)
	}
	if math.Abs(p.Mean-124.0/9) > 1e-9 {
		t.Errorf("Mean = %v, want %v", p.Mean, 124.0/9)
	}
	if p.StdDev <= 0 {
		t.Errorf("StdDev = %v, want > 0", p.StdDev)
	}
	if p.Q1 != 2 || p.Q3 != 4 || p.Lower != -1 || p.Upper != 7 {
		t.Errorf("fence = %v %v %v %v, want 2 4 -1 7", p.Q1, p.Q3, p.Lower, p.Upper)
	}
	if p.Outliers != 1 {
		t.Errorf("Outliers = %d, want 1", p.Outliers)
	}
	if !p.HasStats() {
		t.Error("HasStats() = false")
	}
}

func TestProfile_Counts(t *testing.T) {
	p := Profile(MustTable(NumericColumn("sparse", ptr(-2), nil, ptr(0), ptr(2))))[0]

	if p.Missing != 1 || p.Zeros != 1 || p.Negative != 1 {
		t.Errorf("Missing/Zeros/Negative = %d/%d/%d, want 1/1/1", p.Missing, p.Zeros, p.Negative)
	}
}

func TestProfile_TextColumn(t *testing.T) {
	p := Profile(MustTable(Strings("label", "a", "", "0")))[0]

	if p.Kind != "text" || p.Missing != 1 || p.Zeros != 0 {
		t.Errorf("unexpected text profile: %+v", p)
	}
	if p.HasStats() {
		t.Error("text column should not have stats")
	}
}

func TestProfile_SingleValue(t *testing.T) {
	p := Profile(MustTable(Floats("one", 7)))[0]
	if p.Mean != 7 || p.StdDev != 0 {
		t.Errorf("Mean/StdDev = %v/%v, want 7/0", p.Mean, p.StdDev)
	}
}
