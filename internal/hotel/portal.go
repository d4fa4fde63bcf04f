package hotel

import (
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/crud"
)

// Portal is the read-only guest information page.
type Portal struct {
	Amenities []Amenity
	Places    []Place
	Contacts  []EmergencyContact
}

// Empty reports whether the portal has nothing to show.
func (p Portal) Empty() bool {
	return len(p.Amenities) == 0 && len(p.Places) == 0 && len(p.Contacts) == 0
}

// BuildPortal narrows the three collections to what guests should see:
// available amenities, recommended active places and active emergency
// contacts. term searches all three.
func BuildPortal(amenities []Amenity, places []Place, contacts []EmergencyContact, term string) Portal {
	amenityView := crud.NewView(crud.ViewConfig[Amenity]{
		SearchFields:   Amenities.SearchFields,
		FilterField:    "is_available",
		InitialFilter:  "true",
		InitialSortKey: "category",
	})
	amenityView.SetSearchTerm(term)

	placeView := crud.NewView(crud.ViewConfig[Place]{
		SearchFields: Places.SearchFields,
		FilterField:  "is_active",
		Predicate: func(p Place, term, _ string) bool {
			return p.Recommended && len(crud.FilterBySearch([]Place{p}, term, Places.SearchFields)) == 1
		},
		InitialFilter:    "true",
		InitialSortKey:   "rating",
		InitialDirection: crud.Descending,
	})
	placeView.SetSearchTerm(term)

	contactView := crud.NewView(crud.ViewConfig[EmergencyContact]{
		SearchFields:   EmergencyContacts.SearchFields,
		FilterField:    "is_active",
		InitialFilter:  "true",
		InitialSortKey: "type",
	})
	contactView.SetSearchTerm(term)

	return Portal{
		Amenities: amenityView.Apply(amenities),
		Places:    placeView.Apply(places),
		Contacts:  contactView.Apply(contacts),
	}
}
