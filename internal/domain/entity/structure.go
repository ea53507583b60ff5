package entity

// Structure is a health facility and the district it belongs to
type Structure struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DistrictID string `json:"district_id"`
}

// StructureDirectory maps structure ids to their district
type StructureDirectory map[string]Structure

// NewStructureDirectory indexes structures by id
func NewStructureDirectory(structures []Structure) StructureDirectory {
	dir := make(StructureDirectory, len(structures))
	for _, s := range structures {
		dir[s.ID] = s
	}
	return dir
}

// DistrictOf returns the district of a structure
func (d StructureDirectory) DistrictOf(structureID string) (string, bool) {
	s, ok := d[structureID]
	if !ok {
		return "", false
	}
	return s.DistrictID, true
}

// InDistrict reports whether structureID belongs to districtID
func (d StructureDirectory) InDistrict(structureID, districtID string) bool {
	got, ok := d.DistrictOf(structureID)
	return ok && got == districtID
}
