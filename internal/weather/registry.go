package weather

import "fmt"

// registry is the fixed, ordered list of supported cities.
// Order matters: it breaks ties in the precipitation ranking.
var registry = []City{
	{Name: "Oslo", Latitude: 59.91, Longitude: 10.75},
	{Name: "Kristiansand", Latitude: 58.15, Longitude: 8.00},
	{Name: "Haugesund", Latitude: 59.41, Longitude: 5.27},
	{Name: "Stavanger", Latitude: 58.97, Longitude: 5.73},
	{Name: "Klepp", Latitude: 58.77, Longitude: 5.63},
	{Name: "Tromso", Latitude: 69.65, Longitude: 18.96},
	{Name: "Bergen", Latitude: 60.39, Longitude: 5.32},
	{Name: "Hamar", Latitude: 60.79, Longitude: 11.06},
	{Name: "Kristiansund", Latitude: 63.11, Longitude: 7.73},
	{Name: "Skien og porsgrunn", Latitude: 59.21, Longitude: 9.61},
	{Name: "Baerum", Latitude: 59.91, Longitude: 10.52},
	{Name: "Lillehammer", Latitude: 61.12, Longitude: 10.47},
	{Name: "Gjovik", Latitude: 60.80, Longitude: 10.69},
	{Name: "Bodo", Latitude: 67.28, Longitude: 14.37},
	{Name: "Moss", Latitude: 59.44, Longitude: 10.66},
	{Name: "Halden", Latitude: 59.12, Longitude: 11.39},
	{Name: "Molde", Latitude: 62.74, Longitude: 7.16},
	{Name: "Nesttun", Latitude: 60.32, Longitude: 5.36},
	{Name: "Harstad", Latitude: 68.80, Longitude: 16.54},
	{Name: "Kongsberg", Latitude: 59.67, Longitude: 9.65},
	{Name: "Sandnes", Latitude: 58.85, Longitude: 5.73},
	{Name: "Elverum", Latitude: 60.88, Longitude: 11.56},
	{Name: "Larvik", Latitude: 59.05, Longitude: 10.03},
	{Name: "Sarpsborg", Latitude: 59.28, Longitude: 11.11},
	{Name: "Honefoss", Latitude: 60.17, Longitude: 10.26},
	{Name: "Horten", Latitude: 59.42, Longitude: 10.48},
	{Name: "Ålesund", Latitude: 62.47, Longitude: 6.15},
	{Name: "Lillestrom", Latitude: 59.95, Longitude: 11.05},
	{Name: "Sandefjord", Latitude: 59.13, Longitude: 10.22},
	{Name: "Drammen", Latitude: 59.75, Longitude: 10.20},
	{Name: "Asane", Latitude: 60.48, Longitude: 5.32},
	{Name: "Ski", Latitude: 59.72, Longitude: 10.83},
	{Name: "Stord", Latitude: 59.78, Longitude: 5.50},
	{Name: "Trondheim", Latitude: 63.43, Longitude: 10.40},
	{Name: "Fredrikstad", Latitude: 59.22, Longitude: 10.93},
	{Name: "Jessheim", Latitude: 60.14, Longitude: 11.18},
	{Name: "Arendal", Latitude: 58.46, Longitude: 8.77},
	{Name: "Tonsberg", Latitude: 59.27, Longitude: 10.41},
	{Name: "Fyllingsdalen", Latitude: 60.35, Longitude: 5.31},
	{Name: "Heimdal", Latitude: 63.34, Longitude: 10.35},
	{Name: "Grimstad", Latitude: 58.34, Longitude: 8.59},
}

// Cities returns a copy of the registry in its fixed order.
func Cities() []City {
	out := make([]City, len(registry))
	copy(out, registry)
	return out
}

// Names returns the display names of all cities in registry order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, c := range registry {
		names = append(names, c.Name)
	}
	return names
}

// Lookup returns the city with the exact given name.
func Lookup(name string) (City, error) {
	for _, c := range registry {
		if c.Name == name {
			return c, nil
		}
	}
	return City{}, fmt.Errorf("%w: %q", ErrCityNotFound, name)
}
