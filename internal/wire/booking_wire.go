package wire

import "cinema-ticketing/internal/adaptor"

func wireBooking(m *menuSet, bookingHandler *adaptor.BookingHandler) {
	m.customer = append(m.customer,
		adaptor.MenuItem{Label: "Buy tickets", Action: bookingHandler.BuyTickets},
		adaptor.MenuItem{Label: "My receipts", Action: bookingHandler.MyReceipts},
		adaptor.MenuItem{Label: "View receipt", Action: bookingHandler.ViewReceipt},
	)

	// admins may open any receipt by id
	m.admin = append(m.admin, adaptor.MenuItem{Label: "View receipt", Action: bookingHandler.ViewReceipt})
}
