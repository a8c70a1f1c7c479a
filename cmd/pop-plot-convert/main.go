// Command pop-plot-convert pivots a World-Bank-style wide CSV (one row per
// country, one column per year) into the year-per-row dialect pop-plot
// reads, writing the result to stdout.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

func main() {
	countriesFlag := flag.String("countries", "", "comma-separated country names to keep (default: all)")
	flag.Parse()

	input := io.Reader(os.Stdin)
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatalf("failed opening input: %v", err)
		}
		defer f.Close()
		input = f
	}

	var keep map[string]bool
	if *countriesFlag != "" {
		keep = make(map[string]bool)
		for _, name := range strings.Split(*countriesFlag, ",") {
			keep[strings.TrimSpace(name)] = true
		}
	}

	if err := convert(input, os.Stdout, keep); err != nil {
		log.Fatal(err)
	}
}

// convert reads the wide CSV from in and writes the pivoted year-per-row
// CSV to out. keep, when non-nil, limits the output to the named
// countries.
func convert(in io.Reader, out io.Writer, keep map[string]bool) error {
	csvReader := csv.NewReader(in)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	headings, err := csvReader.Read()
	if err != nil {
		return fmt.Errorf("failed reading headings: %w", err)
	}

	// Year columns are exactly the headings that parse as integers; the
	// leading columns carry the country name and assorted metadata.
	yearCols := make(map[int]int)
	var years []int
	for i, heading := range headings {
		if year, err := strconv.Atoi(strings.TrimSpace(heading)); err == nil {
			yearCols[i] = year
			years = append(years, year)
		}
	}
	if len(years) == 0 {
		return fmt.Errorf("no year columns found in headings")
	}

	var countries []string
	values := make(map[string]map[int]string)
	for {
		rec, err := csvReader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("failed reading row: %w", err)
		}
		if len(rec) == 0 {
			continue
		}
		country := strings.TrimSpace(rec[0])
		if country == "" || (keep != nil && !keep[country]) {
			continue
		}
		row := make(map[int]string)
		for col, year := range yearCols {
			if col >= len(rec) {
				continue
			}
			if cell := strings.TrimSpace(rec[col]); cell != "" {
				row[year] = cell
			}
		}
		if len(row) == 0 {
			continue
		}
		countries = append(countries, country)
		values[country] = row
	}
	if len(countries) == 0 {
		return fmt.Errorf("no matching countries in input")
	}

	csvWriter := csv.NewWriter(out)
	if err := csvWriter.Write(append([]string{"year"}, countries...)); err != nil {
		return err
	}
	record := make([]string, len(countries)+1)
	for _, year := range years {
		record[0] = strconv.Itoa(year)
		empty := true
		for i, country := range countries {
			record[i+1] = values[country][year]
			empty = empty && record[i+1] == ""
		}
		if empty {
			continue
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}
