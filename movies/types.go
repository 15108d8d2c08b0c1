package movies

type Genre struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

type Movie struct {
	ImdbID  string   `json:"imdbID"`
	Title   string   `json:"Title"`
	Poster  string   `json:"Poster"`
	Ratings []Rating `json:"Ratings"`
	Runtime string   `json:"Runtime"`
}

// State is a snapshot of the provider. Slices are never shared with the provider.
type State struct {
	SelectedGenreId int
	Genres          []Genre
	Movies          []Movie
	SelectedGenre   Genre
	// GenresErr is the failure of the genre list fetch on Mount.
	GenresErr error
	// Err is the failure of the fetch for SelectedGenreId. Movies and
	// SelectedGenre are empty while it is set.
	Err error
}

func (s State) clone() State {
	s.Genres = append([]Genre(nil), s.Genres...)
	s.Movies = append([]Movie(nil), s.Movies...)
	return s
}
