package dates

import "time"

// Reference is a running extremum over repeated elements, as epoch seconds.
// Zero means unset.
type Reference int64

// IsSet reports whether a timestamp has been recorded.
func (r Reference) IsSet() bool {
	return r > 0
}

// Update folds an epoch value into the reference: the earliest wins when
// seeking the original date, the latest otherwise.
func (r Reference) Update(epoch int64, original bool) Reference {
	if epoch <= 0 {
		return r
	}
	if original {
		if r == 0 || Reference(epoch) < r {
			return Reference(epoch)
		}
		return r
	}
	if Reference(epoch) > r {
		return Reference(epoch)
	}
	return r
}

// Compare parses a fragment and folds it into the reference. Unparseable
// fragments leave it unchanged.
func (r Reference) Compare(fragment string, sc SearchContext) Reference {
	c, ok := TryDate(fragment, sc)
	if !ok {
		return r
	}
	return r.Update(c.Time.Unix(), sc.Original)
}

// Check converts the reference back into a validated candidate.
func (r Reference) Check(sc SearchContext) (Candidate, bool) {
	if !r.IsSet() {
		return Candidate{}, false
	}
	t := time.Unix(int64(r), 0).UTC()
	return sc.Accept(t, PrecisionDay)
}
