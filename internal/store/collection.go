package store

// Find returns the record with the given id, or nil.
func Find(list []Record, id string) Record {
	for _, r := range list {
		if r.ID() == id {
			return r
		}
	}
	return nil
}

// FilterBy returns the records whose field equals value, in storage order.
// The result is never nil.
func FilterBy(list []Record, field, value string) []Record {
	out := make([]Record, 0)
	for _, r := range list {
		if r.Str(field) == value {
			out = append(out, r)
		}
	}
	return out
}

// Remove drops every record with the given id. The boolean is false when
// nothing matched.
func Remove(list []Record, id string) ([]Record, bool) {
	out := make([]Record, 0, len(list))
	for _, r := range list {
		if r.ID() != id {
			out = append(out, r)
		}
	}
	return out, len(out) != len(list)
}

// Merge copies updates onto rec in place. The id key is never replaced.
func Merge(rec Record, updates map[string]any) Record {
	for k, v := range updates {
		if k == "id" {
			continue
		}
		rec[k] = v
	}
	return rec
}
