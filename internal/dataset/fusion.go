package dataset

// missingMarker is how pandas writes a missing cell to CSV.
const missingMarker = "nan"

// Fuse fills Descriptif with description + " " + designation for every
// record and marks the table fused. A missing description contributes an
// empty string, so the separator space is always present. Designations are
// used verbatim.
func Fuse(table *Table) {
	for i := range table.Records {
		rec := &table.Records[i]
		rec.Descriptif = descriptionText(rec.Description) + " " + rec.Designation
		rec.Designation = ""
		rec.Description = ""
	}
	table.Fused = true
}

// descriptionText maps the exact missing-value marker to an empty string.
func descriptionText(value string) string {
	if value == missingMarker {
		return ""
	}
	return value
}
