package wire

import "cinema-ticketing/internal/adaptor"

func wireShowtime(m *menuSet, showtimeHandler *adaptor.ShowtimeHandler) {
	billboard := adaptor.MenuItem{Label: "Billboard", Action: showtimeHandler.Billboard}

	m.public = append(m.public, billboard)
	m.customer = append(m.customer, billboard)
	m.admin = append(m.admin,
		billboard,
		adaptor.MenuItem{Label: "Add showtime", Action: showtimeHandler.AddShowtime},
		adaptor.MenuItem{Label: "Delete showtime", Action: showtimeHandler.DeleteShowtime},
	)
}
