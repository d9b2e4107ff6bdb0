package query

// Years returns the sorted distinct years covered by the dataset.
func (e *Engine) Years() YearsResult {
	return YearsResult{Years: e.Dataset().Years()}
}

// Schools lists all schools, or the schools of one region when region
// is non-empty, ordered by school id.
func (e *Engine) Schools(region string) (SchoolsResult, error) {
	ds := e.Dataset()
	if region == "" {
		return SchoolsResult{Schools: ds.Schools()}, nil
	}
	schools, err := ds.SchoolsInRegion(region)
	if err != nil {
		return SchoolsResult{}, err
	}
	return SchoolsResult{Region: region, Schools: schools}, nil
}
