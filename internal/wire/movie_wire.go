package wire

import "cinema-ticketing/internal/adaptor"

func wireMovie(m *menuSet, movieHandler *adaptor.MovieHandler) {
	m.public = append(m.public, adaptor.MenuItem{Label: "List movies", Action: movieHandler.ListMovies})

	m.admin = append(m.admin,
		adaptor.MenuItem{Label: "List movies", Action: movieHandler.ListMovies},
		adaptor.MenuItem{Label: "Add movie", Action: movieHandler.AddMovie},
		adaptor.MenuItem{Label: "Delete movie", Action: movieHandler.DeleteMovie},
	)
}
