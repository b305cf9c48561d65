package models

// Category classifies habits and events. Values are the Italian labels used
// throughout the product and in persisted data.
type Category string

const (
	CategoryWork     Category = "lavoro"
	CategorySport    Category = "sport"
	CategoryStudy    Category = "studio"
	CategoryPersonal Category = "personale"
)

// Categories lists all known categories in display order.
func Categories() []Category {
	return []Category{CategoryWork, CategorySport, CategoryStudy, CategoryPersonal}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategorySport, CategoryStudy, CategoryPersonal:
		return true
	}
	return false
}
