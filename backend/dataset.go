package backend

// Dataset is an ordered collection of country series. The datasource
// mutates it from its session goroutine and hands copies of the struct to
// the UI over a stream, so the UI always observes a consistent slice
// header. The underlying series are individually locked.
type Dataset struct {
	Series []DataSeries
	// seriesMapping maps from series identifiers used by the datasource to
	// the index of a series in this structure.
	seriesMapping map[int]int
	revision      uint64
}

func (d *Dataset) Initialized() bool {
	if len(d.Series) == 0 {
		return false
	}
	for _, s := range d.Series {
		if s.Initialized() {
			return true
		}
	}
	return false
}

// Revision increases whenever the dataset's contents change. The UI
// compares revisions to decide when to re-derive the chart.
func (d *Dataset) Revision() uint64 {
	return d.revision
}

// Domain returns the year bounds across all series.
func (d *Dataset) Domain() (dMin, dMax int) {
	first := true
	for _, s := range d.Series {
		if !s.Initialized() {
			continue
		}
		sMin, sMax := s.Domain()
		if first {
			dMin, dMax = sMin, sMax
			first = false
			continue
		}
		dMin = min(sMin, dMin)
		dMax = max(sMax, dMax)
	}
	return dMin, dMax
}

// ValueRange returns the population bounds across all series.
func (d *Dataset) ValueRange() (lo, hi float64) {
	first := true
	for _, s := range d.Series {
		if !s.Initialized() {
			continue
		}
		sLo, sHi := s.Range()
		if first {
			lo, hi = sLo, sHi
			first = false
			continue
		}
		lo = min(sLo, lo)
		hi = max(sHi, hi)
	}
	return lo, hi
}

// SetHeadings registers new series with their country names. It must be
// invoked at least once prior to the first call to [Insert]. The series
// slice provides the datasource's ID for each series, which is likely to
// differ from the index used to store the data in this type.
func (d *Dataset) SetHeadings(headings []string, series []int) {
	if d.seriesMapping == nil {
		d.seriesMapping = make(map[int]int)
	}
	for i, identifier := range series {
		d.seriesMapping[identifier] = len(d.Series)
		d.Series = append(d.Series, NewSeries(headings[i]))
	}
	d.revision++
}

// Insert the sample. Will panic if the sample's Series does not have a
// heading previously registered via [SetHeadings].
func (d *Dataset) Insert(sample Sample) {
	localIdx := d.seriesMapping[sample.Series]
	d.Series[localIdx].Insert(sample)
	d.revision++
}
