package pkg

const (
	// DEFAULT_SPEED_KMH is used for road classes missing from a speed table.
	DEFAULT_SPEED_KMH = 20.0

	DEFAULT_GRID_SEARCH_FIELD = "grid_search"
	DEFAULT_COST_VARIABLE     = "distance"
)

type OsmHighwayType uint8

// enum buat osm highway buat routing: https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
const (
	MOTORWAY       OsmHighwayType = 0
	TRUNK          OsmHighwayType = 1
	PRIMARY        OsmHighwayType = 2
	SECONDARY      OsmHighwayType = 3
	TERTIARY       OsmHighwayType = 4
	RESIDENTIAL    OsmHighwayType = 5
	SERVICE        OsmHighwayType = 6
	UNCLASSIFIED   OsmHighwayType = 7
	MOTORWAY_LINK  OsmHighwayType = 8
	TRUNK_LINK     OsmHighwayType = 9
	PRIMARY_LINK   OsmHighwayType = 10
	SECONDARY_LINK OsmHighwayType = 11
	TERTIARY_LINK  OsmHighwayType = 12
	LIVING_STREET  OsmHighwayType = 13
	ROAD           OsmHighwayType = 14
	TRACK          OsmHighwayType = 15
	MOTORROAD      OsmHighwayType = 16
	UNKNOWN        OsmHighwayType = 17
)

var highwayTypeNames = [...]string{
	MOTORWAY:       "motorway",
	TRUNK:          "trunk",
	PRIMARY:        "primary",
	SECONDARY:      "secondary",
	TERTIARY:       "tertiary",
	RESIDENTIAL:    "residential",
	SERVICE:        "service",
	UNCLASSIFIED:   "unclassified",
	MOTORWAY_LINK:  "motorway_link",
	TRUNK_LINK:     "trunk_link",
	PRIMARY_LINK:   "primary_link",
	SECONDARY_LINK: "secondary_link",
	TERTIARY_LINK:  "tertiary_link",
	LIVING_STREET:  "living_street",
	ROAD:           "road",
	TRACK:          "track",
	MOTORROAD:      "motorroad",
	UNKNOWN:        "unknown",
}

func (t OsmHighwayType) String() string {
	if int(t) < len(highwayTypeNames) {
		return highwayTypeNames[t]
	}
	return "unknown"
}

func GetHighwayType(roadType string) OsmHighwayType {
	for t, name := range highwayTypeNames {
		if name == roadType {
			return OsmHighwayType(t)
		}
	}
	return UNKNOWN
}
