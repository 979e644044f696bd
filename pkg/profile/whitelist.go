package profile

// FieldSet is a recursive field whitelist: a nil value marks a terminal
// field, a non-empty value filters a nested mapping.
type FieldSet map[string]FieldSet

// fieldsToKeep holds the exact per-type whitelists applied to raw
// profiling reports. Variables of any other type family are dropped.
var fieldsToKeep = map[string]FieldSet{
	TypeCategorical: {
		"n": nil, "n_distinct": nil, "p_distinct": nil, "is_unique": nil,
		"n_unique": nil, "p_unique": nil, "ordering": nil, "n_missing": nil,
		"p_missing": nil, "memory_size": nil, "imbalance": nil,
		"max_length": nil, "mean_length": nil, "median_length": nil, "min_length": nil,
		"chi_squared": {"statistic": nil, "pvalue": nil},
	},
	TypeTimeSeries: {
		"n": nil, "n_distinct": nil, "p_distinct": nil, "is_unique": nil,
		"n_unique": nil, "p_unique": nil, "ordering": nil, "n_missing": nil,
		"p_missing": nil, "memory_size": nil, "mean": nil, "std": nil,
		"variance": nil, "min": nil, "max": nil, "kurtosis": nil,
		"skewness": nil, "sum": nil, "mad": nil, "range": nil,
		"seasonal": nil, "stationary": nil,
		"chi_squared": {"statistic": nil, "pvalue": nil},
		"gap_stats":   {"min": nil, "max": nil, "mean": nil, "std": nil, "n_gaps": nil},
	},
	TypeNumeric: {
		"n": nil, "n_distinct": nil, "p_distinct": nil, "is_unique": nil,
		"n_unique": nil, "p_unique": nil, "ordering": nil, "n_missing": nil,
		"p_missing": nil, "memory_size": nil, "mean": nil, "std": nil,
		"variance": nil, "min": nil, "max": nil, "kurtosis": nil,
		"skewness": nil, "sum": nil, "mad": nil, "range": nil,
		"iqr": nil, "cv": nil, "p_zeros": nil,
		"chi_squared": {"statistic": nil, "pvalue": nil},
	},
}
