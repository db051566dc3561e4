package weather

import (
	"encoding/json"
	"fmt"
	"time"
)

// City identifies one of the supported cities.
type City string

const (
	CityBengaluru City = "Bengaluru"
	CityMumbai    City = "Mumbai"
	CityDelhi     City = "Delhi"
	CityChennai   City = "Chennai"
)

// Coordinates is a fixed latitude/longitude pair for a supported city.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// cityCoords is the static city-to-coordinates table. Any city outside this
// table is rejected before an outbound call is made.
var cityCoords = map[City]Coordinates{
	CityBengaluru: {Lat: 12.9716, Lon: 77.5946},
	CityMumbai:    {Lat: 19.0760, Lon: 72.8777},
	CityDelhi:     {Lat: 28.7041, Lon: 77.1025},
	CityChennai:   {Lat: 13.0827, Lon: 80.2707},
}

// cityOrder keeps listings stable for the API.
var cityOrder = []City{CityBengaluru, CityMumbai, CityDelhi, CityChennai}

// ResolveCity validates a city name against the supported set and returns its
// coordinates.
func ResolveCity(name string) (City, Coordinates, error) {
	city := City(name)
	coords, ok := cityCoords[city]
	if !ok {
		return "", Coordinates{}, fmt.Errorf("%w: %q", ErrUnknownCity, name)
	}
	return city, coords, nil
}

// CityInfo pairs a supported city with its coordinates for listings.
type CityInfo struct {
	Name        City        `json:"name"`
	Coordinates Coordinates `json:"coordinates"`
}

// Cities returns the supported cities in a stable order.
func Cities() []CityInfo {
	infos := make([]CityInfo, 0, len(cityOrder))
	for _, c := range cityOrder {
		infos = append(infos, CityInfo{Name: c, Coordinates: cityCoords[c]})
	}
	return infos
}

// DailyWeather is one day of historical weather for a city.
type DailyWeather struct {
	Date  time.Time `json:"date"` // midnight UTC, date component only
	TempC float64   `json:"tempC"`
	Rain  bool      `json:"rain"`
}

// MarshalJSON emits the date as a calendar date, not a full timestamp.
func (d DailyWeather) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date  string  `json:"date"`
		TempC float64 `json:"tempC"`
		Rain  bool    `json:"rain"`
	}{d.Date.Format(DateOnly), d.TempC, d.Rain})
}

// DateOnly is the calendar-date layout used throughout (join keys, API dates,
// upstream query parameters).
const DateOnly = "2006-01-02"
