package backend

import "testing"

func TestSeries(t *testing.T) {
	s := NewSeries("World")
	startYear := 1960
	sampleCount := 10
	for i := 0; i < sampleCount; i++ {
		ok := s.Insert(Sample{Year: startYear + i, Value: float64(100 + i)})
		if !ok {
			t.Errorf("inserting distinct years should always be okay, but year %d failed", startYear+i)
		}
	}
	if s.Insert(Sample{Year: startYear, Value: 1}) {
		t.Error("inserting a duplicate year should report false")
	}
	if got := s.Len(); got != sampleCount {
		t.Errorf("expected %d points after duplicate insert, got %d", sampleCount, got)
	}
	dMin, dMax := s.Domain()
	if dMin != startYear || dMax != startYear+sampleCount-1 {
		t.Errorf("expected domain [%d,%d], got [%d,%d]", startYear, startYear+sampleCount-1, dMin, dMax)
	}
	rMin, rMax := s.Range()
	if rMin != 100 || rMax != float64(100+sampleCount-1) {
		t.Errorf("expected range [100,%d], got [%f,%f]", 100+sampleCount-1, rMin, rMax)
	}
	for i := 0; i < sampleCount; i++ {
		v, ok := s.ValueAt(startYear + i)
		if !ok {
			t.Errorf("expected a value for year %d", startYear+i)
		}
		if v != float64(100+i) {
			t.Errorf("expected year %d to hold %d, got %f", startYear+i, 100+i, v)
		}
	}
	if _, ok := s.ValueAt(1900); ok {
		t.Error("expected no value for a year never inserted")
	}
}

func TestSeriesOutOfOrderInsert(t *testing.T) {
	s := NewSeries("World")
	for _, year := range []int{1970, 1960, 1990, 1980} {
		if !s.Insert(Sample{Year: year, Value: float64(year)}) {
			t.Errorf("insert of year %d failed", year)
		}
	}
	years, values := s.Points()
	expected := []int{1960, 1970, 1980, 1990}
	if len(years) != len(expected) {
		t.Fatalf("expected %d years, got %d", len(expected), len(years))
	}
	for i, year := range expected {
		if years[i] != year {
			t.Errorf("expected years[%d] == %d, got %d", i, year, years[i])
		}
		if values[i] != float64(year) {
			t.Errorf("expected values[%d] == %d, got %f", i, year, values[i])
		}
	}
}

func TestSeriesPointsAreCopies(t *testing.T) {
	s := NewSeries("World")
	s.Insert(Sample{Year: 1960, Value: 3e9})
	years, values := s.Points()
	years[0] = 0
	values[0] = 0
	if v, ok := s.ValueAt(1960); !ok || v != 3e9 {
		t.Errorf("mutating the copies must not affect the series, got %f (ok=%v)", v, ok)
	}
}
