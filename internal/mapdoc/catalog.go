package mapdoc

// CatalogStats summarizes the stored map collection.
type CatalogStats struct {
	TotalMaps             int            `json:"total_maps"`
	TotalElements         int            `json:"total_elements"`
	MapsByType            map[string]int `json:"maps_by_type"`
	AverageElementsPerMap float64        `json:"average_elements_per_map"`
}

// SummarizeCatalog aggregates element counts across all saved maps.
// MapsByType counts elements per kind, not maps.
func SummarizeCatalog(maps []SavedMap) CatalogStats {
	stats := CatalogStats{
		TotalMaps:  len(maps),
		MapsByType: make(map[string]int),
	}
	for _, m := range maps {
		stats.TotalElements += len(m.Elements)
		for _, el := range m.Elements {
			stats.MapsByType[string(el.Kind)]++
		}
	}
	if stats.TotalMaps > 0 {
		stats.AverageElementsPerMap = float64(stats.TotalElements) / float64(stats.TotalMaps)
	}
	return stats
}
