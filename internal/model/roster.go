package model

// Salesperson is one roster entry. The roster is static configuration, not
// stored data; ids are the stable keys used on events.
type Salesperson struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Initials string `json:"initials"`
}

type ProjectType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type Location struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// Salespersons is name-sorted; leaderboard ties break in this order.
var Salespersons = []Salesperson{
	{ID: "dale", Name: "Dale", Initials: "DA"},
	{ID: "justin", Name: "Justin", Initials: "JU"},
	{ID: "karen", Name: "Karen", Initials: "KA"},
	{ID: "meghan", Name: "Meghan", Initials: "ME"},
	{ID: "pat", Name: "Pat", Initials: "PA"},
	{ID: "rickielee", Name: "Rickie-Lee", Initials: "RL"},
	{ID: "roberta", Name: "Roberta", Initials: "RO"},
	{ID: "sam", Name: "Sam", Initials: "SA"},
	{ID: "shane", Name: "Shane", Initials: "SH"},
	{ID: "steve", Name: "Steve", Initials: "ST"},
	{ID: "wade", Name: "Wade", Initials: "WA"},
}

var ProjectTypes = []ProjectType{
	{ID: "railing", Name: "Railing", Icon: "railing.png"},
	{ID: "deck", Name: "Deck", Icon: "deck.png"},
	{ID: "hardscapes", Name: "Hardscapes", Icon: "hardscapes.png"},
	{ID: "fence", Name: "Fence", Icon: "fence.png"},
	{ID: "pergola", Name: "Pergola", Icon: "pergola.png"},
	{ID: "turf", Name: "Turf", Icon: "turf.png"},
}

var Locations = []Location{
	{ID: "regina", Name: "Regina", Abbreviation: "RGNA"},
	{ID: "saskatoon", Name: "Saskatoon", Abbreviation: "SKTN"},
}

// DefaultWeeklyGoal seeds the goal setting the first time it is read.
const DefaultWeeklyGoal = 60

func SalespersonByID(id string) (Salesperson, bool) {
	for _, sp := range Salespersons {
		if sp.ID == id {
			return sp, true
		}
	}
	return Salesperson{}, false
}

func ProjectTypeByID(id string) (ProjectType, bool) {
	for _, pt := range ProjectTypes {
		if pt.ID == id {
			return pt, true
		}
	}
	return ProjectType{}, false
}

func LocationByID(id string) (Location, bool) {
	for _, loc := range Locations {
		if loc.ID == id {
			return loc, true
		}
	}
	return Location{}, false
}
