package question

// Filter applies the selection policy over a candidate pool. Buckets run in
// Counts order; within a bucket, candidates of that type are taken first-fit
// in pool order. A candidate is accepted while the bucket quota is open and
// accepting it keeps the running total within MaxTotalMarks (when set). The
// first candidate that would break the marks budget closes the bucket with
// reason marks_exceeded; anything after that gets quota_filled. Questions of
// a type never requested (or requested with a zero count) are excluded with
// type_mismatch.
//
// Partial fulfilment is not an error: unmet quotas are recorded in
// Shortfalls and the caller decides what to do with them.
func Filter(pool []Question, c Constraint) FilteringReport {
	rep := FilteringReport{Requested: c}

	requested := make(map[Type]bool, len(c.Counts))
	for _, tc := range c.Counts {
		if tc.Count > 0 {
			requested[tc.Type] = true
		}
	}

	done := make(map[Type]bool, len(c.Counts))
	for _, tc := range c.Counts {
		if tc.Count <= 0 || done[tc.Type] {
			continue
		}
		done[tc.Type] = true

		accepted := 0
		open := true
		for _, q := range pool {
			if q.Type != tc.Type {
				continue
			}
			switch {
			case open && accepted < tc.Count && fits(rep.TotalMarks+q.Marks, c.MaxTotalMarks):
				rep.Selected = append(rep.Selected, q)
				rep.TotalMarks += q.Marks
				accepted++
			case open && accepted < tc.Count:
				rep.Excluded = append(rep.Excluded, Exclusion{Question: q, Reason: ReasonMarksExceeded})
				open = false
			default:
				rep.Excluded = append(rep.Excluded, Exclusion{Question: q, Reason: ReasonQuotaFilled})
			}
		}
		if accepted < tc.Count {
			rep.Shortfalls = append(rep.Shortfalls, Shortfall{Type: tc.Type, Requested: tc.Count, Selected: accepted})
		}
	}

	for _, q := range pool {
		if !requested[q.Type] {
			rep.Excluded = append(rep.Excluded, Exclusion{Question: q, Reason: ReasonTypeMismatch})
		}
	}
	return rep
}

func fits(total, max float64) bool { return max <= 0 || total <= max }
