package wire

import "cinema-ticketing/internal/adaptor"

// Login and logout are built into the menu itself.
func wireAuth(m *menuSet, authHandler *adaptor.AuthHandler) {
	m.admin = append(m.admin, adaptor.MenuItem{Label: "List users", Action: authHandler.ListUsers})
}
