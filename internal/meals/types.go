package meals

// Meal is a recipe in transport-neutral form.
type Meal struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category,omitempty"`
	Area         string `json:"area,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	Thumb        string `json:"thumb,omitempty"`
	YouTube      string `json:"youtube,omitempty"`
	Source       string `json:"source,omitempty"`
}

// Link returns the best external link for the meal: the video when there is
// one, otherwise the source page.
func (m Meal) Link() string {
	if m.YouTube != "" {
		return m.YouTube
	}
	return m.Source
}

// Category groups meals on the explore screen.
type Category struct {
	Name        string `json:"name"`
	Thumb       string `json:"thumb,omitempty"`
	Description string `json:"description,omitempty"`
}

// Page is one page of meals. NextPage is the token for the following page;
// zero means there is none.
type Page struct {
	Meals    []Meal
	NextPage int
}

// Pseudo categories used to title list screens that are not backed by a real
// category.
var (
	SavedCategory  = Category{Name: "Saved"}
	SearchCategory = Category{Name: "Search"}
)
