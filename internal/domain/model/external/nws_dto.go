package external

// PointResponse is the NWS answer for GET /points/{lat},{lon}
type PointResponse struct {
	Properties *PointProperties `json:"properties"`
}

type PointProperties struct {
	Forecast string `json:"forecast"`
	GridID   string `json:"gridId"`
	GridX    int    `json:"gridX"`
	GridY    int    `json:"gridY"`
}

// ForecastResponse is the NWS answer for the gridpoint forecast URL
type ForecastResponse struct {
	Properties *ForecastProperties `json:"properties"`
}

type ForecastProperties struct {
	Updated string           `json:"updated"`
	Periods []ForecastPeriod `json:"periods"`
}

// ForecastPeriod holds one time segment. Pointer fields stay nil when NWS omits them.
type ForecastPeriod struct {
	Number          int     `json:"number"`
	Name            string  `json:"name"`
	IsDaytime       bool    `json:"isDaytime"`
	Temperature     *int    `json:"temperature"`
	TemperatureUnit string  `json:"temperatureUnit"`
	ShortForecast   *string `json:"shortForecast"`
}

// ProblemResponse is the application/problem+json body NWS sends with errors
type ProblemResponse struct {
	Type          string `json:"type"`
	Title         string `json:"title"`
	Status        int    `json:"status"`
	Detail        string `json:"detail"`
	CorrelationID string `json:"correlationId"`
}

// StatusResponse is the NWS API root document
type StatusResponse struct {
	Status string `json:"status"`
}
