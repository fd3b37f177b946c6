package risk

// CuratedTable returns the built-in city records.
func CuratedTable() Table {
	return Table{
		"zurich": {
			FloodRisk:     3.2,
			LandslideRisk: 1.8,
			Description:   "Zurich has moderate flood risk due to proximity to Lake Zurich and the Limmat River. The city has implemented comprehensive flood management systems, but climate change poses increasing challenges. Landslide risk is low due to stable urban terrain and well-maintained infrastructure.",
			Coordinates:   &Coordinates{Lat: 47.3769, Lon: 8.5417},
			LastUpdated:   "2025-09-25",
		},
		"bern": {
			FloodRisk:     2.1,
			LandslideRisk: 2.5,
			Description:   "Bern shows low to moderate flood risk from the Aare River, with historical flood defenses providing good protection. Moderate landslide risk exists in surrounding hillside areas, particularly during heavy rainfall periods. The old town is well-protected but requires continued monitoring.",
			Coordinates:   &Coordinates{Lat: 46.9480, Lon: 7.4474},
			LastUpdated:   "2025-09-24",
		},
		"geneva": {
			FloodRisk:     4.1,
			LandslideRisk: 1.2,
			Description:   "Geneva faces higher flood risk due to Lake Geneva and the Rhône River, especially during spring melts and heavy rainfall. The lake's water level regulation helps but cannot eliminate all risks. Landslide risk is minimal in the urban center due to stable geological conditions.",
			Coordinates:   &Coordinates{Lat: 46.2044, Lon: 6.1432},
			LastUpdated:   "2025-09-26",
		},
		"basel": {
			FloodRisk:     3.8,
			LandslideRisk: 1.5,
			Description:   "Basel has elevated flood risk from the Rhine River, especially during heavy rainfall periods and spring snowmelt. The city has invested heavily in flood protection infrastructure. Landslide risk remains low due to the flat terrain in most urban areas.",
			Coordinates:   &Coordinates{Lat: 47.5596, Lon: 7.5886},
			LastUpdated:   "2025-09-23",
		},
		"lausanne": {
			FloodRisk:     2.3,
			LandslideRisk: 3.1,
			Description:   "Lausanne shows moderate flood risk primarily from local streams and Lake Geneva proximity. Higher landslide risk exists due to the city's hillside location and varying soil stability. Historical landslides have been recorded in certain districts.",
			Coordinates:   &Coordinates{Lat: 46.5197, Lon: 6.6323},
			LastUpdated:   "2025-09-22",
		},
		"lucerne": {
			FloodRisk:     2.8,
			LandslideRisk: 2.2,
			Description:   "Lucerne faces moderate flood risk from Lake Lucerne and the Reuss River. The lake's natural regulation provides some protection, but extreme weather events pose risks. Moderate landslide risk in surrounding areas, particularly in districts near the mountains.",
			Coordinates:   &Coordinates{Lat: 47.0502, Lon: 8.3093},
			LastUpdated:   "2025-09-21",
		},
		"winterthur": {
			FloodRisk:     2.5,
			LandslideRisk: 1.7,
			Description:   "Winterthur has moderate flood risk from local rivers and streams. The city's flood management has improved significantly in recent years. Low landslide risk due to relatively stable terrain, though some hillside areas require monitoring.",
			Coordinates:   &Coordinates{Lat: 47.4979, Lon: 8.7242},
			LastUpdated:   "2025-09-20",
		},
		"st. gallen": {
			FloodRisk:     1.9,
			LandslideRisk: 2.8,
			Description:   "St. Gallen shows low flood risk due to its elevated position and good drainage systems. However, higher landslide risk exists due to the hilly terrain and geological composition. Some areas have experienced slope instability during extreme weather.",
			Coordinates:   &Coordinates{Lat: 47.4245, Lon: 9.3767},
			LastUpdated:   "2025-09-19",
		},
		"paris": {
			FloodRisk:     3.5,
			LandslideRisk: 1.1,
			Description:   "Paris faces significant flood risk from the Seine River, with historical floods causing major damage. The city has extensive flood defenses, but climate change poses ongoing challenges. Landslide risk is minimal due to relatively stable terrain.",
			Coordinates:   &Coordinates{Lat: 48.8566, Lon: 2.3522},
			LastUpdated:   "2025-09-18",
		},
		"london": {
			FloodRisk:     3.9,
			LandslideRisk: 0.8,
			Description:   "London has high flood risk from the Thames River and increasing coastal flood risks. The Thames Barrier provides significant protection, but sea level rise poses long-term challenges. Landslide risk is very low due to stable geological conditions.",
			Coordinates:   &Coordinates{Lat: 51.5074, Lon: -0.1278},
			LastUpdated:   "2025-09-17",
		},
	}
}
