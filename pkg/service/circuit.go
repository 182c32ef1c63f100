package service

import (
	"context"
	"strings"

	"github.com/f1dash/f1-data-service/pkg/cache"
	"github.com/f1dash/f1-data-service/pkg/model"
)

// circuitImageBase hosts the official circuit map renders.
const circuitImageBase = "https://www.formula1.com/content/dam/fom-website/2018-redesign-assets/Circuit%20maps%2016x9/"

// circuitImages maps a country/location/event-name fragment to the
// official circuit map image. Matching is substring-based and tries the
// fragments in order, taking the first hit, so venues matching more
// than one fragment (Miami is also in the United States) resolve the
// same way on every call. Ambiguous venues with no matching fragment
// are handled by the special cases below.
var circuitImages = []struct {
	fragment string
	file     string
}{
	{"Bahrain", "Bahrain_Circuit.png.transform/9col/image.png"},
	{"Saudi Arabia", "Saudi_Arabia_Circuit.png.transform/9col/image.png"},
	{"Australia", "Australia_Circuit.png.transform/9col/image.png"},
	{"Japan", "Japan_Circuit.png.transform/9col/image.png"},
	{"China", "China_Circuit.png.transform/9col/image.png"},
	{"Miami", "Miami_Circuit.png.transform/9col/image.png"},
	{"Emilia Romagna", "Emilia_Romagna_Circuit.png.transform/9col/image.png"},
	{"Monaco", "Monaco_Circuit.png.transform/9col/image.png"},
	{"Canada", "Canada_Circuit.png.transform/9col/image.png"},
	{"Spain", "Spain_Circuit.png.transform/9col/image.png"},
	{"Austria", "Austria_Circuit.png.transform/9col/image.png"},
	{"Great Britain", "Great_Britain_Circuit.png.transform/9col/image.png"},
	{"Hungary", "Hungary_Circuit.png.transform/9col/image.png"},
	{"Belgium", "Belgium_Circuit.png.transform/9col/image.png"},
	{"Netherlands", "Netherlands_Circuit.png.transform/9col/image.png"},
	{"Italy", "Italy_Circuit.png.transform/9col/image.png"},
	{"Azerbaijan", "Azerbaijan_Circuit.png.transform/9col/image.png"},
	{"Singapore", "Singapore_Circuit.png.transform/9col/image.png"},
	{"United States", "USA_Circuit.png.transform/9col/image.png"},
	{"Mexico", "Mexico_Circuit.png.transform/9col/image.png"},
	{"Brazil", "Brazil_Circuit.png.transform/9col/image.png"},
	{"Las Vegas", "Las_Vegas_Circuit.png.transform/9col/image.png"},
	{"Qatar", "Qatar_Circuit.png.transform/9col/image.png"},
	{"Abu Dhabi", "Abu_Dhabi_Circuit.png.transform/9col/image.png"},
}

func circuitImageFor(fragment string) string {
	for _, ci := range circuitImages {
		if ci.fragment == fragment {
			return circuitImageBase + ci.file
		}
	}
	return ""
}

// CircuitInfo returns the circuit hosting an event, with the matched
// circuit map image URL when one is known. Round 0 resolves to the next
// upcoming event.
func (s *Service) CircuitInfo(ctx context.Context, year, round int) (*model.CircuitInfo, error) {
	year, round, err := s.resolveEvent(ctx, year, round)
	if err != nil {
		return nil, err
	}

	return readThrough(ctx, s, cache.CircuitInfoKey(year, round), fixedTTL(cache.TTLCircuit),
		func(ctx context.Context) (*model.CircuitInfo, error) {
			event, err := s.eventByRound(ctx, year, round)
			if err != nil {
				return nil, err
			}

			return &model.CircuitInfo{
				Name:     event.Circuit,
				Location: event.Location,
				Country:  event.Country,
				Round:    event.Round,
				RaceName: event.Name,
				ImageURL: matchCircuitImage(event.Country, event.Location, event.Name),
			}, nil
		})
}

func matchCircuitImage(country, location, eventName string) string {
	countryLower := strings.ToLower(country)
	locationLower := strings.ToLower(location)
	nameLower := strings.ToLower(eventName)

	for _, ci := range circuitImages {
		f := strings.ToLower(ci.fragment)
		if strings.Contains(countryLower, f) ||
			strings.Contains(locationLower, f) ||
			strings.Contains(nameLower, f) {
			return circuitImageBase + ci.file
		}
	}

	// Venues whose country/location strings don't contain a table entry.
	switch {
	case strings.Contains(locationLower, "yas") || strings.Contains(nameLower, "abu dhabi"):
		return circuitImageFor("Abu Dhabi")
	case strings.Contains(locationLower, "silverstone") || strings.Contains(nameLower, "britain"):
		return circuitImageFor("Great Britain")
	case strings.Contains(locationLower, "monza") || strings.Contains(nameLower, "italy"):
		return circuitImageFor("Italy")
	case strings.Contains(locationLower, "spa") || strings.Contains(nameLower, "belgium"):
		return circuitImageFor("Belgium")
	case strings.Contains(locationLower, "monaco") || strings.Contains(locationLower, "monte carlo"):
		return circuitImageFor("Monaco")
	}
	return ""
}
