package profile

import (
	"sort"
)

// Record is one reduced per-variable row: column_name plus the flattened,
// whitelisted statistics and the derived metrics. Absent keys mean the
// value is undefined for that variable, never zero.
type Record = map[string]interface{}

// FilterVariables projects every variable of a raw report against the
// whitelist for its reported type family. Variables of unknown families
// are dropped. The filter is idempotent: filtering an already filtered
// report yields the same result.
func FilterVariables(rep *RawReport) map[string]map[string]interface{} {
	filtered := make(map[string]map[string]interface{})
	for name, details := range rep.Variables {
		family, _ := details["type"].(string)
		keep, ok := fieldsToKeep[family]
		if !ok {
			continue
		}
		filtered[name] = FilterNested(details, keep)
	}
	return filtered
}

// FilterNested keeps a key only when it appears in the whitelist. When
// both the reported value and the whitelist entry are nested mappings the
// projection recurses; otherwise the value is kept as-is.
func FilterNested(details map[string]interface{}, keep FieldSet) map[string]interface{} {
	filtered := make(map[string]interface{})
	for key, value := range details {
		sub, ok := keep[key]
		if !ok {
			continue
		}
		if nested, isMap := value.(map[string]interface{}); isMap && len(sub) > 0 {
			filtered[key] = FilterNested(nested, sub)
		} else {
			filtered[key] = value
		}
	}
	return filtered
}

// Flatten joins nested keys with sep into a single-level mapping, e.g.
// chi_squared.pvalue becomes chi_squared_pvalue.
func Flatten(data map[string]interface{}, sep string) map[string]interface{} {
	flat := make(map[string]interface{}, len(data))
	flattenInto(flat, data, "", sep)
	return flat
}

func flattenInto(flat map[string]interface{}, data map[string]interface{}, prefix, sep string) {
	for key, value := range data {
		full := key
		if prefix != "" {
			full = prefix + sep + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			flattenInto(flat, nested, full, sep)
		} else {
			flat[full] = value
		}
	}
}

// Reduce runs the full reduction pipeline on a raw report: filter,
// flatten, derive. One record per variable, ordered by variable name for
// determinism.
func Reduce(rep *RawReport) []Record {
	filtered := FilterVariables(rep)

	names := make([]string, 0, len(filtered))
	for name := range filtered {
		names = append(names, name)
	}
	sort.Strings(names)

	records := make([]Record, 0, len(names))
	for _, name := range names {
		flat := Flatten(filtered[name], "_")
		rec := Record{"column_name": name}
		for k, v := range flat {
			rec[k] = v
		}
		Derive(rec)
		records = append(records, rec)
	}
	return records
}
