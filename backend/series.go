package backend

import (
	"slices"
	"sync"
)

// DataSeries is one country's year-to-population series as the UI consumes
// it.
type DataSeries interface {
	Name() string
	Initialized() bool
	Domain() (min, max int)
	Range() (min, max float64)
	Insert(sample Sample) (inserted bool)
	ValueAt(year int) (value float64, ok bool)
	Len() int
	Points() (years []int, values []float64)
}

// Series stores one country's values ordered by year. All methods are safe
// for concurrent use; the datasource writes while the UI reads.
type Series struct {
	lock                 sync.RWMutex
	years                []int
	values               []float64
	rangeMin, rangeMax   float64
	domainMin, domainMax int
	name                 string
	initialized          bool
}

var _ DataSeries = (*Series)(nil)

func NewSeries(name string) *Series {
	return &Series{name: name}
}

func (s *Series) Name() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.name
}

func (s *Series) Initialized() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.initialized
}

// Domain returns the first and last year with data.
func (s *Series) Domain() (min, max int) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.domainMin, s.domainMax
}

// Range returns the smallest and largest value in the series.
func (s *Series) Range() (min, max float64) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.rangeMin, s.rangeMax
}

func (s *Series) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.years)
}

// Insert adds a value for a given year. In the event that the series
// already contains a value for that year, nothing is added and the method
// returns false.
func (s *Series) Insert(sample Sample) (inserted bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if !s.initialized {
		s.rangeMin = sample.Value
		s.rangeMax = sample.Value
		s.domainMin = sample.Year
		s.domainMax = sample.Year
	}
	index, found := slices.BinarySearch(s.years, sample.Year)
	if found {
		return false
	}
	s.years = slices.Insert(s.years, index, sample.Year)
	s.values = slices.Insert(s.values, index, sample.Value)
	s.rangeMin = min(s.rangeMin, sample.Value)
	s.rangeMax = max(s.rangeMax, sample.Value)
	s.domainMin = min(s.domainMin, sample.Year)
	s.domainMax = max(s.domainMax, sample.Year)
	s.initialized = true
	return true
}

// ValueAt returns the value recorded for the given year, if any.
func (s *Series) ValueAt(year int) (float64, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	index, found := slices.BinarySearch(s.years, year)
	if !found {
		return 0, false
	}
	return s.values[index], true
}

// Points returns copies of the year and value slices in year order.
func (s *Series) Points() (years []int, values []float64) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return slices.Clone(s.years), slices.Clone(s.values)
}
