package profile

// Derived metric names added to every record whose inputs are present.
const (
	MetricCategoricalCardinalityRatio  = "categorical_cardinality_ratio"
	MetricCategoricalMissingnessImpact = "categorical_missingness_impact"
	MetricCategoricalChiSquaredAlert   = "categorical_chi_squared_alert"
	MetricTimeseriesGapRatio           = "timeseries_gap_ratio"
	MetricTimeseriesVolatilityIndex    = "timeseries_volatility_index"
	MetricTimeseriesTrendConsistency   = "timeseries_trend_consistency"
	MetricNumericZeroRatio             = "numeric_zero_ratio"
	MetricNumericOutlierIndicator      = "numeric_outlier_indicator"
	MetricNumericSkewnessIndicator     = "numeric_skewness_indicator"
	MetricNumericCV                    = "numeric_cv"
	MetricNumericMissingImpact         = "numeric_missing_impact"
	MetricDataCompleteness             = "data_completeness"
)

// chiSquaredAlertThreshold flags a chi-squared p-value as significant.
const chiSquaredAlertThreshold = 0.05

// Derive computes the observability metrics for a single flattened
// record, in place. A metric whose inputs are absent is left unset rather
// than failing the record; a division by zero propagates as a non-finite
// float, matching the treatment of missing fields downstream.
func Derive(rec Record) {
	if nDistinct, ok := num(rec, "n_distinct"); ok {
		if n, ok := num(rec, "n"); ok {
			rec[MetricCategoricalCardinalityRatio] = nDistinct / n
		}
		if pMissing, ok := num(rec, "p_missing"); ok {
			rec[MetricCategoricalMissingnessImpact] = pMissing * nDistinct
		}
	}
	if pvalue, ok := num(rec, "chi_squared_pvalue"); ok {
		rec[MetricCategoricalChiSquaredAlert] = pvalue < chiSquaredAlertThreshold
	}

	if nGaps, ok := num(rec, "gap_stats_n_gaps"); ok {
		if n, ok := num(rec, "n"); ok {
			rec[MetricTimeseriesGapRatio] = nGaps / n
		}
	}
	if std, ok := num(rec, "std"); ok {
		if mean, ok := num(rec, "mean"); ok {
			rec[MetricTimeseriesVolatilityIndex] = std / mean
			// Same formula on purpose until a distinct trend-consistency
			// computation is agreed on.
			rec[MetricTimeseriesTrendConsistency] = std / mean
		}
		if rng, ok := num(rec, "range"); ok {
			rec[MetricNumericOutlierIndicator] = rng / std
		}
	}

	if pZeros, ok := num(rec, "p_zeros"); ok {
		rec[MetricNumericZeroRatio] = pZeros
	}
	if skewness, ok := num(rec, "skewness"); ok {
		rec[MetricNumericSkewnessIndicator] = skewness
	}
	if cv, ok := num(rec, "cv"); ok {
		rec[MetricNumericCV] = cv
	}
	if pMissing, ok := num(rec, "p_missing"); ok {
		if mean, ok := num(rec, "mean"); ok {
			rec[MetricNumericMissingImpact] = pMissing * mean
		}
		rec[MetricDataCompleteness] = 1 - pMissing
	}
}

// num reads a numeric field from a record. JSON decoding yields float64
// for every number, but profiler implementations handing records over
// natively may use Go integer types.
func num(rec Record, key string) (float64, bool) {
	v, ok := rec[key]
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}
