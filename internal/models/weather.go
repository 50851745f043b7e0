package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Endpoint is the logical upstream resource a caller asks the gateway for.
type Endpoint string

const (
	EndpointWeather  Endpoint = "weather"
	EndpointForecast Endpoint = "forecast"
)

// ParseEndpoint accepts only the exact names "weather" and "forecast".
func ParseEndpoint(s string) (Endpoint, bool) {
	switch Endpoint(s) {
	case EndpointWeather, EndpointForecast:
		return Endpoint(s), true
	}
	return "", false
}

// Path is the upstream path segment for the endpoint.
func (e Endpoint) Path() string {
	switch e {
	case EndpointWeather:
		return "/weather"
	case EndpointForecast:
		return "/forecast"
	}
	return ""
}

// Query is built per gateway request and never stored.
type Query struct {
	City     string
	Endpoint Endpoint
}

type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type MainMetrics struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  int     `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

type Wind struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
}

type Sys struct {
	Country string `json:"country"`
	Sunrise int64  `json:"sunrise"`
	Sunset  int64  `json:"sunset"`
}

// CurrentConditions is the upstream "weather" payload.
type CurrentConditions struct {
	Name    string      `json:"name"`
	Dt      int64       `json:"dt"`
	Main    MainMetrics `json:"main"`
	Weather []Condition `json:"weather"`
	Wind    Wind        `json:"wind"`
	Sys     Sys         `json:"sys"`
}

// PrimaryCondition returns weather[0], or a zero Condition if the list is empty.
func (c *CurrentConditions) PrimaryCondition() Condition {
	if c == nil || len(c.Weather) == 0 {
		return Condition{}
	}
	return c.Weather[0]
}

// ForecastSample is one 3-hour entry of the upstream "forecast" payload.
type ForecastSample struct {
	Dt      int64       `json:"dt"`
	Main    MainMetrics `json:"main"`
	Weather []Condition `json:"weather"`
	Wind    Wind        `json:"wind"`
	DtTxt   string      `json:"dt_txt,omitempty"`
}

func (s ForecastSample) PrimaryCondition() Condition {
	if len(s.Weather) == 0 {
		return Condition{}
	}
	return s.Weather[0]
}

type ForecastCity struct {
	Name     string `json:"name"`
	Country  string `json:"country"`
	Timezone int    `json:"timezone"`
	Sunrise  int64  `json:"sunrise"`
	Sunset   int64  `json:"sunset"`
}

// ForecastCollection is the upstream "forecast" payload.
type ForecastCollection struct {
	Cnt  int              `json:"cnt"`
	List []ForecastSample `json:"list"`
	City ForecastCity     `json:"city"`
}

// UpstreamStatus is the subset of an upstream payload used for error translation.
// OpenWeather sends "cod" as a number on /weather and as a string on /forecast,
// and "message" as a string on errors but as the number 0 on forecast success.
type UpstreamStatus struct {
	Cod     StatusCode      `json:"cod"`
	Message json.RawMessage `json:"message"`
}

// MessageText returns message when it is a non-empty JSON string.
func (u UpstreamStatus) MessageText() string {
	var s string
	if err := json.Unmarshal(u.Message, &s); err != nil {
		return ""
	}
	return s
}

// StatusCode decodes a JSON number or numeric string. Zero means absent.
type StatusCode int

func (c *StatusCode) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*c = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*c = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*c = StatusCode(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = StatusCode(n)
	return nil
}

// ErrorBody is the only error shape the gateway emits.
type ErrorBody struct {
	Error string `json:"error"`
}
