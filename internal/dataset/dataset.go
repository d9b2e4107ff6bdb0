package dataset

import "sort"

// Dataset is the immutable collection of all records for one load,
// with indexes by school, year, and region built at load time.
// Returned slices share the dataset's backing arrays and must be
// treated as read-only.
type Dataset struct {
	records  []Record
	bySchool map[string][]Record // per school, ordered by year
	byYear   map[int][]Record
	byRegion map[string][]string // region -> sorted school ids
	schools  map[string]School
	years    []int // sorted distinct years
}

// Records returns every record in the dataset.
func (ds *Dataset) Records() []Record {
	return ds.records
}

// Len returns the number of records.
func (ds *Dataset) Len() int {
	return len(ds.records)
}

// Years returns the sorted distinct years present in the dataset.
func (ds *Dataset) Years() []int {
	return ds.years
}

// School returns the school entity for an id.
func (ds *Dataset) School(id string) (School, error) {
	sch, ok := ds.schools[id]
	if !ok {
		return School{}, &NotFoundError{Kind: "school", ID: id}
	}
	return sch, nil
}

// Schools returns all school entities ordered by id.
func (ds *Dataset) Schools() []School {
	out := make([]School, 0, len(ds.schools))
	for _, sch := range ds.schools {
		out = append(out, sch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SchoolsInRegion returns the schools whose latest-known region matches,
// ordered by id.
func (ds *Dataset) SchoolsInRegion(region string) ([]School, error) {
	ids, ok := ds.byRegion[region]
	if !ok {
		return nil, &NotFoundError{Kind: "region", ID: region}
	}
	out := make([]School, 0, len(ids))
	for _, id := range ids {
		out = append(out, ds.schools[id])
	}
	return out, nil
}

// Regions returns the sorted distinct region names.
func (ds *Dataset) Regions() []string {
	out := make([]string, 0, len(ds.byRegion))
	for region := range ds.byRegion {
		out = append(out, region)
	}
	sort.Strings(out)
	return out
}

// SchoolRecords returns a school's records ordered by year.
func (ds *Dataset) SchoolRecords(id string) ([]Record, error) {
	recs, ok := ds.bySchool[id]
	if !ok {
		return nil, &NotFoundError{Kind: "school", ID: id}
	}
	return recs, nil
}

// YearRecords returns all records for a year. A year with no records
// yields an empty set, not an error.
func (ds *Dataset) YearRecords(year int) []Record {
	return ds.byYear[year]
}

// RegionRecords returns every record belonging to schools in a region,
// grouped per school in year order.
func (ds *Dataset) RegionRecords(region string) ([]Record, error) {
	ids, ok := ds.byRegion[region]
	if !ok {
		return nil, &NotFoundError{Kind: "region", ID: region}
	}
	var out []Record
	for _, id := range ids {
		out = append(out, ds.bySchool[id]...)
	}
	return out, nil
}

// RegionYearRecords returns the records for a region limited to one year.
func (ds *Dataset) RegionYearRecords(region string, year int) ([]Record, error) {
	recs, err := ds.RegionRecords(region)
	if err != nil {
		return nil, err
	}
	var out []Record
	for _, rec := range recs {
		if rec.Year == year {
			out = append(out, rec)
		}
	}
	return out, nil
}

// HasRegion reports whether the region exists in the dataset.
func (ds *Dataset) HasRegion(region string) bool {
	_, ok := ds.byRegion[region]
	return ok
}

// HasSchool reports whether the school id exists in the dataset.
func (ds *Dataset) HasSchool(id string) bool {
	_, ok := ds.bySchool[id]
	return ok
}
