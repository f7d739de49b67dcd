package httpapi

import "github.com/i474232898/bike-rental-dashboard/internal/rental"

type weatherLabel struct {
	Code  rental.Weather `json:"code"`
	Label string         `json:"label"`
}

var weatherNames = map[rental.Weather]string{
	rental.WeatherClear:       "Clear, Few clouds, Partly cloudy",
	rental.WeatherMist:        "Mist + Cloudy, Mist + Broken clouds, Mist + Few clouds, Mist",
	rental.WeatherLightPrecip: "Light Snow, Light Rain + Thunderstorm + Scattered clouds, Light Rain + Scattered clouds",
	rental.WeatherHeavyPrecip: "Heavy Rain + Ice Pallets + Thunderstorm + Mist, Snow + Fog",
}

func labelFor(w rental.Weather) weatherLabel {
	return weatherLabel{Code: w, Label: weatherNames[w]}
}

// weatherLabels lists the display labels for every weather code, in code order.
func weatherLabels() []weatherLabel {
	out := make([]weatherLabel, 0, len(weatherNames))
	for w := rental.WeatherClear; w <= rental.WeatherHeavyPrecip; w++ {
		out = append(out, labelFor(w))
	}
	return out
}
