// internal/domain/models/position.go
package models

// Position is one entry in the fixed position catalog. The catalog is
// seeded at startup; wizard pages and profiles reference positions by ID.
type Position struct {
	ID        int    `bson:"_id" json:"id"`
	Name      string `bson:"name" json:"name"`
	ShortName string `bson:"short_name" json:"short_name"`
}

// PositionCatalog is the canonical set of selectable positions.
var PositionCatalog = []Position{
	{ID: 1, Name: "Goleiro", ShortName: "GOL"},
	{ID: 2, Name: "Zagueiro", ShortName: "ZAG"},
	{ID: 3, Name: "Lateral", ShortName: "LAT"},
	{ID: 4, Name: "Meio-Campo", ShortName: "MEI"},
	{ID: 5, Name: "Atacante", ShortName: "ATA"},
}

// PositionByID returns the catalog entry for id, if present.
func PositionByID(id int) (Position, bool) {
	for _, p := range PositionCatalog {
		if p.ID == id {
			return p, true
		}
	}
	return Position{}, false
}
