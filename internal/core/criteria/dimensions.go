package criteria

// Dimension names one optional filter axis
type Dimension string

// Dimensions
const (
	DimCrime      Dimension = "crime"
	DimRegion     Dimension = "region"
	DimStart      Dimension = "startDate"
	DimEnd        Dimension = "endDate"
	DimEventStart Dimension = "eventStart"
	DimEventEnd   Dimension = "eventEnd"
	DimEthnicity  Dimension = "ethnicity"
	DimGender     Dimension = "gender"
	DimAge        Dimension = "age"
	DimSeason     Dimension = "season"
	DimHoliday    Dimension = "holiday"
)

// Has reports whether dimension d carries a filter value
func (c Criteria) Has(d Dimension) bool {
	switch d {
	case DimCrime:
		return !c.Crime.Empty()
	case DimRegion:
		return !c.Areas.Empty()
	case DimStart:
		return c.Range.Start != nil
	case DimEnd:
		return c.Range.End != nil
	case DimEventStart:
		return c.EventStart
	case DimEventEnd:
		return c.EventEnd
	case DimEthnicity:
		return !c.Ethnicity.Empty()
	case DimGender:
		return c.Gender != ""
	case DimAge:
		return c.Age != nil
	case DimSeason:
		return len(c.Seasons) > 0
	case DimHoliday:
		return len(c.Holidays) > 0
	}
	return false
}

// AnyOf reports whether at least one of dims is active
func (c Criteria) AnyOf(dims ...Dimension) bool {
	for _, d := range dims {
		if c.Has(d) {
			return true
		}
	}
	return false
}
