package backend

import "testing"

func TestDatasetHeadingsAndInsert(t *testing.T) {
	ds := Dataset{}
	if ds.Initialized() {
		t.Error("an empty dataset must not report initialized")
	}
	ds.SetHeadings([]string{"China", "India"}, []int{7, 9})
	if ds.Initialized() {
		t.Error("a dataset with headings but no samples must not report initialized")
	}
	rev := ds.Revision()

	ds.Insert(Sample{Series: 7, Year: 1960, Value: 667070000})
	ds.Insert(Sample{Series: 9, Year: 1960, Value: 445954579})
	ds.Insert(Sample{Series: 7, Year: 1961, Value: 660330000})
	if !ds.Initialized() {
		t.Error("expected dataset to be initialized after inserts")
	}
	if ds.Revision() == rev {
		t.Error("expected revision to advance after inserts")
	}

	if got := len(ds.Series); got != 2 {
		t.Fatalf("expected 2 series, got %d", got)
	}
	if name := ds.Series[0].Name(); name != "China" {
		t.Errorf("expected first series to be China, got %q", name)
	}
	v, ok := ds.Series[1].ValueAt(1960)
	if !ok || v != 445954579 {
		t.Errorf("expected India 1960 value, got %f (ok=%v)", v, ok)
	}

	dMin, dMax := ds.Domain()
	if dMin != 1960 || dMax != 1961 {
		t.Errorf("expected domain [1960,1961], got [%d,%d]", dMin, dMax)
	}
	lo, hi := ds.ValueRange()
	if lo != 445954579 || hi != 667070000 {
		t.Errorf("unexpected value range [%f,%f]", lo, hi)
	}
}

func TestDatasetLateHeadings(t *testing.T) {
	ds := Dataset{}
	ds.SetHeadings([]string{"China"}, []int{1})
	ds.Insert(Sample{Series: 1, Year: 1960, Value: 1})
	ds.SetHeadings([]string{"India"}, []int{2})
	ds.Insert(Sample{Series: 2, Year: 1960, Value: 2})
	if got := len(ds.Series); got != 2 {
		t.Fatalf("expected 2 series after late registration, got %d", got)
	}
	if v, ok := ds.Series[1].ValueAt(1960); !ok || v != 2 {
		t.Errorf("expected late series to hold its sample, got %f (ok=%v)", v, ok)
	}
}
