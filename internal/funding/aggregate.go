// Package funding derives view-ready series from a dataset: per-city
// funding, province totals bucketed into top provinces plus Other, a
// cumulative trend and headline statistics. Every function is pure.
package funding

import (
	"sort"
	"strings"

	"housingdash/internal/dataset"
	"housingdash/internal/money"
)

// TopProvinces is how many provinces keep their own bucket.
const TopProvinces = 4

// Columns names the dataset fields the aggregator reads.
type Columns struct {
	City    string
	Funding string
	Homes   string
}

// DefaultColumns matches fieldspec.Default.
func DefaultColumns() Columns {
	return Columns{City: "City", Funding: "Funding", Homes: "Homes"}
}

// City is one dataset row projected onto the aggregator's columns.
type City struct {
	Index    int
	Name     string
	Province string
	Funding  int64
	Homes    int64
}

type options struct {
	resolver Resolver
}

// Option configures aggregation.
type Option func(*options)

// WithResolver replaces ProvinceCode as the location -> province policy.
func WithResolver(r Resolver) Option {
	return func(o *options) {
		if r != nil {
			o.resolver = r
		}
	}
}

func newOptions(opts []Option) options {
	o := options{resolver: ProvinceCode}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Cities projects every row, in row order.
func Cities(ds *dataset.Dataset, cols Columns, opts ...Option) []City {
	o := newOptions(opts)
	if ds == nil {
		return []City{}
	}

	out := make([]City, 0, len(ds.Rows))
	for i, row := range ds.Rows {
		name := cityName(row, cols.City)
		out = append(out, City{
			Index:    i,
			Name:     name,
			Province: o.resolver(name),
			Funding:  amount(row, cols.Funding),
			Homes:    amount(row, cols.Homes),
		})
	}
	return out
}

// CityFunding returns parallel city labels and sanitized funding values in
// row order.
func CityFunding(ds *dataset.Dataset, cols Columns) (labels []string, values []int64) {
	cities := Cities(ds, cols)
	labels = make([]string, len(cities))
	values = make([]int64, len(cities))
	for i, c := range cities {
		labels[i] = c.Name
		values[i] = c.Funding
	}
	return labels, values
}

// ProvinceTotal is one bucket of ProvinceTotals.
type ProvinceTotal struct {
	Code  string
	Total int64
}

// ProvinceTotals holds the top provinces in descending order of funding
// followed by the Other bucket.
type ProvinceTotals struct {
	entries []ProvinceTotal
}

// Entries returns a copy of the buckets in display order.
func (p ProvinceTotals) Entries() []ProvinceTotal {
	return append([]ProvinceTotal(nil), p.entries...)
}

// Len returns the number of buckets, Other included.
func (p ProvinceTotals) Len() int { return len(p.entries) }

// Get returns the total for code.
func (p ProvinceTotals) Get(code string) (int64, bool) {
	for _, e := range p.entries {
		if e.Code == code {
			return e.Total, true
		}
	}
	return 0, false
}

// Map returns the buckets keyed by province code.
func (p ProvinceTotals) Map() map[string]int64 {
	m := make(map[string]int64, len(p.entries))
	for _, e := range p.entries {
		m[e.Code] = e.Total
	}
	return m
}

// Total sums every bucket.
func (p ProvinceTotals) Total() int64 {
	var sum int64
	for _, e := range p.entries {
		sum += e.Total
	}
	return sum
}

// Codes returns bucket labels in display order.
func (p ProvinceTotals) Codes() []string {
	out := make([]string, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.Code
	}
	return out
}

// Weights returns bucket totals as pie weights in display order.
func (p ProvinceTotals) Weights() []float64 {
	out := make([]float64, len(p.entries))
	for i, e := range p.entries {
		out[i] = float64(e.Total)
	}
	return out
}

// ProvincialFunding sums funding per province and keeps the TopProvinces
// best-funded provinces. Everything else, including locations that matched
// no province, goes into a trailing Other bucket, which is always present.
// The result has min(TopProvinces, known provinces)+1 keys, so a dataset
// covering fewer than TopProvinces provinces yields fewer than five; no
// zero-valued province entries are invented to pad it.
// Equal totals keep the order in which provinces were first seen.
func ProvincialFunding(ds *dataset.Dataset, cols Columns, opts ...Option) ProvinceTotals {
	var (
		order  []string
		totals = map[string]int64{}
		other  int64
	)
	for _, c := range Cities(ds, cols, opts...) {
		if c.Province == OtherProvince {
			other += c.Funding
			continue
		}
		if _, seen := totals[c.Province]; !seen {
			order = append(order, c.Province)
		}
		totals[c.Province] += c.Funding
	}

	ranked := make([]ProvinceTotal, len(order))
	for i, code := range order {
		ranked[i] = ProvinceTotal{Code: code, Total: totals[code]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})

	n := min(TopProvinces, len(ranked))
	entries := make([]ProvinceTotal, 0, n+1)
	entries = append(entries, ranked[:n]...)
	for _, r := range ranked[n:] {
		other += r.Total
	}
	entries = append(entries, ProvinceTotal{Code: OtherProvince, Total: other})
	return ProvinceTotals{entries: entries}
}

// CumulativeFunding returns the running funding total against 1-based row
// position, for the trend line.
func CumulativeFunding(ds *dataset.Dataset, cols Columns) (xs, ys []float64) {
	_, values := CityFunding(ds, cols)
	xs = make([]float64, len(values))
	ys = make([]float64, len(values))
	var running int64
	for i, v := range values {
		running += v
		xs[i] = float64(i + 1)
		ys[i] = float64(running)
	}
	return xs, ys
}

// Summary holds the headline figures shown on the overview cards.
type Summary struct {
	Cities       int
	Provinces    int
	TotalFunding int64
	TotalHomes   int64
	Largest      City
}

// Summarize computes the overview figures.
func Summarize(ds *dataset.Dataset, cols Columns, opts ...Option) Summary {
	var s Summary
	provinces := map[string]struct{}{}
	for _, c := range Cities(ds, cols, opts...) {
		s.Cities++
		s.TotalFunding += c.Funding
		s.TotalHomes += c.Homes
		if c.Province != OtherProvince {
			provinces[c.Province] = struct{}{}
		}
		if s.Cities == 1 || c.Funding > s.Largest.Funding {
			s.Largest = c
		}
	}
	s.Provinces = len(provinces)
	return s
}

// Search returns cities whose name contains query, ignoring case. An empty
// query matches everything.
func Search(cities []City, query string) []City {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]City, 0, len(cities))
	for _, c := range cities {
		if q == "" || strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c)
		}
	}
	return out
}

func cityName(row dataset.Row, field string) string {
	e, ok := row.Get(field)
	if !ok {
		return ""
	}
	name := strings.TrimSpace(e.Value.String())
	return strings.TrimSpace(strings.TrimSuffix(name, ","))
}

func amount(row dataset.Row, field string) int64 {
	e, ok := row.Get(field)
	if !ok {
		return 0
	}
	switch v := e.Value.(type) {
	case dataset.IntegerValue:
		return v.Int()
	case dataset.FloatValue:
		return money.RoundFloat(v.Float())
	default:
		return money.Sanitize(v.String())
	}
}
