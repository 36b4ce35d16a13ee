// Package sports fetches live match listings from the API-Sports family of
// endpoints and normalizes them into vendor-agnostic Match records.
package sports

import (
	"errors"
	"fmt"
	"strings"

	"sportiq/internal/common"
)

// Sport is one of the fixed set of sports the dashboard can query.
type Sport string

const (
	Soccer     Sport = "soccer"
	Basketball Sport = "basketball"
	Tennis     Sport = "tennis"
	Cricket    Sport = "cricket"
	Hockey     Sport = "hockey"
	Rugby      Sport = "rugby"
	Baseball   Sport = "baseball"
)

// ErrUnknownSport is returned when a sport key is outside the fixed set.
var ErrUnknownSport = errors.New("unknown sport")

var allSports = []Sport{Soccer, Basketball, Tennis, Cricket, Hockey, Rugby, Baseball}

// AllSports returns the supported sports in selector order.
func AllSports() []Sport {
	out := make([]Sport, len(allSports))
	copy(out, allSports)
	return out
}

// ParseSport validates a sport key. Matching is case-insensitive.
func ParseSport(s string) (Sport, error) {
	key := Sport(strings.ToLower(strings.TrimSpace(s)))
	for _, sp := range allSports {
		if sp == key {
			return sp, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSport, s)
}

func (s Sport) String() string { return string(s) }

// Endpoint is a fixed URL plus the host header some gateways require.
type Endpoint struct {
	URL  string
	Host string
}

var apiSportsEndpoints = map[Sport]Endpoint{
	Soccer:     {URL: "https://v3.football.api-sports.io/fixtures?live=all"},
	Basketball: {URL: "https://v1.basketball.api-sports.io/games?live=all"},
	Tennis:     {URL: "https://v1.tennis.api-sports.io/matches?live=all"},
	Cricket:    {URL: "https://v1.cricket.api-sports.io/matches"},
	Hockey:     {URL: "https://v1.hockey.api-sports.io/games?live=all"},
	Rugby:      {URL: "https://v1.rugby.api-sports.io/matches"},
	Baseball:   {URL: "https://v1.baseball.api-sports.io/games?live=all"},
}

var rapidAPIEndpoints = map[Sport]Endpoint{
	Soccer:     {URL: "https://api-football-v1.p.rapidapi.com/v3/fixtures?live=all", Host: "api-football-v1.p.rapidapi.com"},
	Basketball: {URL: "https://api-basketball.p.rapidapi.com/games?live=all", Host: "api-basketball.p.rapidapi.com"},
	Tennis:     {URL: "https://api-tennis.p.rapidapi.com/matches?live=all", Host: "api-tennis.p.rapidapi.com"},
	Cricket:    {URL: "https://api-cricket.p.rapidapi.com/matches", Host: "api-cricket.p.rapidapi.com"},
	Hockey:     {URL: "https://api-hockey.p.rapidapi.com/games?live=all", Host: "api-hockey.p.rapidapi.com"},
	Rugby:      {URL: "https://api-rugby.p.rapidapi.com/matches", Host: "api-rugby.p.rapidapi.com"},
	Baseball:   {URL: "https://api-baseball.p.rapidapi.com/games?live=all", Host: "api-baseball.p.rapidapi.com"},
}

// DefaultEndpoints returns the built-in endpoint table for a vendor.
func DefaultEndpoints(vendor string) (map[Sport]Endpoint, error) {
	var src map[Sport]Endpoint
	switch vendor {
	case common.VendorAPISports:
		src = apiSportsEndpoints
	case common.VendorRapidAPI:
		src = rapidAPIEndpoints
	default:
		return nil, fmt.Errorf("%s, got %q", common.ErrMsgUnknownVendor, vendor)
	}

	out := make(map[Sport]Endpoint, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out, nil
}
