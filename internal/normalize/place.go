package normalize

import (
	"strings"

	"github.com/sells-group/sitegen-cli/internal/model"
)

func fromPlace(p *model.PlaceRecord) model.PartialFacts {
	facts := model.PartialFacts{}

	if photos := placePhotos(p.Photos); len(photos) > 0 {
		facts[model.FactPhotos] = photos
	}

	if p.ReviewCount > 0 || p.Rating > 0 || len(p.ReviewHighlights) > 0 {
		facts[model.FactReviews] = model.ReviewSummary{
			Count:      p.ReviewCount,
			Rating:     p.Rating,
			Highlights: cleanStrings(p.ReviewHighlights),
			Sentiment:  strings.TrimSpace(p.ReviewSentiment),
		}
	}

	if hours := placeHours(p.OpeningHours); len(hours) > 0 {
		facts[model.FactHours] = hours
	}

	// Price level 3-4 hints at a premium tier; 1 hints at budget. Mid
	// levels say nothing useful.
	switch {
	case p.PriceLevel >= 3:
		facts[model.FactPricingTier] = "premium"
	case p.PriceLevel == 1:
		facts[model.FactPricingTier] = "budget"
	}

	if phone, ok := toString(p.Phone); ok {
		facts[model.FactPhone] = phone
	}
	if addr, ok := toString(p.Address); ok {
		facts[model.FactAddress] = addr
	}
	if p.Latitude != 0 || p.Longitude != 0 {
		facts[model.FactCoordinates] = model.LatLng{Lat: p.Latitude, Lng: p.Longitude}
	}

	return facts
}

func placePhotos(urls []string) []model.Photo {
	out := make([]model.Photo, 0, len(urls))
	for _, u := range cleanStrings(urls) {
		out = append(out, model.Photo{URL: u})
	}
	return out
}

// placeHours parses weekday_text style lines ("Monday: 9:00 AM – 5:00 PM").
// Closed days and unparseable lines are dropped, never fatal.
func placeHours(lines []string) model.WeekHours {
	if len(lines) == 0 {
		return nil
	}
	out := model.WeekHours{}
	for _, line := range lines {
		day, periods, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		day = strings.ToLower(strings.TrimSpace(day))
		periods = strings.TrimSpace(periods)
		if day == "" || periods == "" || strings.EqualFold(periods, "closed") {
			continue
		}
		if strings.EqualFold(periods, "open 24 hours") {
			out[day] = []string{"00:00-24:00"}
			continue
		}
		var cleaned []string
		for _, p := range strings.Split(periods, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			out[day] = cleaned
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
