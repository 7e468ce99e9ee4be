package wire

import "cinema-ticketing/internal/adaptor"

// Rooms are seeded by the schema; only their seats are managed here.
func wireCinema(m *menuSet, cinemaHandler *adaptor.CinemaHandler) {
	m.admin = append(m.admin,
		adaptor.MenuItem{Label: "List rooms", Action: cinemaHandler.ListRooms},
		adaptor.MenuItem{Label: "List seats of a room", Action: cinemaHandler.ListSeats},
		adaptor.MenuItem{Label: "Add seat", Action: cinemaHandler.AddSeat},
		adaptor.MenuItem{Label: "Delete seat", Action: cinemaHandler.DeleteSeat},
	)
}
