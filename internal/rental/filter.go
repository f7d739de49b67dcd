package rental

type predicate func(Record) bool

// Filter returns the records matching every active constraint of c, in their
// original order. The input slice is never modified.
func Filter(records []Record, c Criteria) []Record {
	preds := c.predicates()

	out := make([]Record, 0, len(records))
	for _, r := range records {
		pass := true
		for _, p := range preds {
			if !p(r) {
				pass = false
				break
			}
		}
		if pass {
			out = append(out, r)
		}
	}
	return out
}

// predicates compiles the active constraints once so that Filter does a
// single pass over the rows.
func (c Criteria) predicates() []predicate {
	var preds []predicate

	if c.Month != nil {
		month := *c.Month
		preds = append(preds, func(r Record) bool { return r.Month == month })
	}
	if c.Year != nil {
		year := *c.Year
		preds = append(preds, func(r Record) bool { return r.Year == year })
	}

	// holiday: 1 = holiday, 0 = non-holiday.
	if c.IncludeHoliday != nil || c.IncludeNonHoliday != nil {
		allowed := dayTypeSet(c.IncludeHoliday, c.IncludeNonHoliday)
		preds = append(preds, func(r Record) bool { return allowed[r.Holiday] })
	}

	// workingday: 1 = weekday, 0 = weekend.
	if c.IncludeWeekday != nil || c.IncludeWeekend != nil {
		allowed := dayTypeSet(c.IncludeWeekday, c.IncludeWeekend)
		preds = append(preds, func(r Record) bool { return allowed[r.WorkingDay] })
	}

	if c.Weather != nil {
		w := *c.Weather
		preds = append(preds, func(r Record) bool { return r.Weather == w })
	}
	if c.Temperature != nil {
		band := *c.Temperature
		preds = append(preds, func(r Record) bool { return band.Contains(r.Temp) })
	}
	if c.Humidity != nil {
		band := *c.Humidity
		preds = append(preds, func(r Record) bool { return band.Contains(r.Humidity) })
	}
	if c.WindSpeed != nil {
		band := *c.WindSpeed
		preds = append(preds, func(r Record) bool { return band.Contains(r.WindSpeed) })
	}

	return preds
}

// dayTypeSet maps a pair of inclusion flags onto the 0/1 codes they allow.
// An unset flag counts as included.
func dayTypeSet(one, zero *bool) map[int]bool {
	return map[int]bool{
		1: one == nil || *one,
		0: zero == nil || *zero,
	}
}
