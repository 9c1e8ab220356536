package regions

import "vgsales/internal/engine"

// Default returns the built-in sample table.
func Default() *Table {
	t, err := New(defaultEntries(), defaultCountries())
	if err != nil {
		panic(err)
	}
	return t
}

func defaultEntries() []Entry {
	return []Entry{
		{Region: engine.Global, Total: 892.44},
		{Region: engine.NorthAmerica, Total: 439.95, MapSales: 4392.95, Coordinates: [2]float64{-99.1332, 19.4326}, Color: "blue"},
		{Region: engine.Europe, Total: 243.13, MapSales: 2434.13, Coordinates: [2]float64{10.0183, 53.5511}, Color: "red"},
		{Region: engine.Japan, Total: 129.02, MapSales: 1291.02, Coordinates: [2]float64{120.6917, 30.6895}, Color: "yellow"},
		{Region: engine.Other, Total: 79.75, MapSales: 797.75, Coordinates: [2]float64{14.6048, 9.0625}, Color: "white"},
	}
}

func defaultCountries() map[string]engine.Region {
	m := map[string]engine.Region{"Japan": engine.Japan}
	for _, c := range []string{
		"United States of America", "Canada", "Mexico", "Guatemala", "Cuba", "Haiti",
		"Dominican Republic", "Honduras", "Nicaragua", "El Salvador", "Costa Rica", "Panama",
		"Jamaica", "Trinidad and Tobago", "The Bahamas", "Barbados", "Saint Lucia", "Grenada",
		"Saint Vincent and the Grenadines", "Antigua and Barbuda", "Belize",
		"Saint Kitts and Nevis", "Dominica",
	} {
		m[c] = engine.NorthAmerica
	}
	for _, c := range []string{
		"France", "Germany", "United Kingdom", "Italy", "Spain", "Poland", "Ukraine", "Romania",
		"Netherlands", "Belgium", "Sweden", "Czech Republic (Czechia)", "Greece", "Portugal",
		"Hungary", "Belarus", "Austria", "Switzerland", "Serbia", "Bulgaria", "Denmark",
		"Slovakia", "Finland", "Norway", "Ireland", "Croatia", "Moldova",
		"Bosnia and Herzegovina", "Albania", "Lithuania", "Slovenia", "North Macedonia",
		"Latvia", "Estonia", "Luxembourg", "Montenegro", "Malta", "Iceland", "Andorra",
		"Liechtenstein", "Monaco", "San Marino", "Holy See", "Russia",
	} {
		m[c] = engine.Europe
	}
	return m
}
