package funding

import "strings"

// OtherProvince is the bucket for unmatched locations and for everything
// outside the top provinces.
const OtherProvince = "Other"

// Province pairs the name searched for in a location with its code.
type Province struct {
	Name string
	Code string
}

// Provinces is the match order used by ProvinceCode. The first name
// contained in a location wins, so order matters.
var Provinces = []Province{
	{"Ontario", "ON"},
	{"British Columbia", "BC"},
	{"Alberta", "AB"},
	{"Quebec", "QC"},
	{"Nova Scotia", "NS"},
	{"New Brunswick", "NB"},
	{"Manitoba", "MB"},
	{"Saskatchewan", "SK"},
	{"Newfoundland", "NL"},
	{"Prince Edward Island", "PE"},
	{"Yukon", "YT"},
	{"Northwest Territories", "NT"},
	{"Nunavut", "NU"},
}

// ProvinceCode maps a free-form location ("London, Ontario") to a two-letter
// province code by case-sensitive substring containment against Provinces.
// Locations matching nothing map to OtherProvince.
func ProvinceCode(location string) string {
	for _, p := range Provinces {
		if strings.Contains(location, p.Name) {
			return p.Code
		}
	}
	return OtherProvince
}

// Resolver maps a location to a province code.
type Resolver func(location string) string
