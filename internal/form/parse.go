package form

// ParsedRecord is a submission reshaped to record keys, values untrimmed.
type ParsedRecord map[string]string

// ParseAnswers reshapes a label->answer map into a keyed record. Labels not
// present in the config are dropped.
func ParseAnswers(answers map[string]string, cfg *Config) ParsedRecord {
	labelMap := cfg.LabelMap()
	rec := make(ParsedRecord, len(answers))
	for label, value := range answers {
		if key, ok := labelMap[label]; ok {
			rec[key] = value
		}
	}
	return rec
}

// ParseRow reshapes a positional row into a keyed record using the header to
// recover labels. Columns whose header is not a configured label are dropped;
// a short row leaves trailing fields absent rather than empty.
func ParseRow(header, row []string, cfg *Config) ParsedRecord {
	labelMap := cfg.LabelMap()
	rec := make(ParsedRecord, len(header))
	for i, label := range header {
		if i >= len(row) {
			break
		}
		if key, ok := labelMap[label]; ok {
			rec[key] = row[i]
		}
	}
	return rec
}
