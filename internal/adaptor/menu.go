package adaptor

import (
	"context"
	"fmt"
	"strconv"

	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type MenuItem struct {
	Label  string
	Action func(ctx context.Context) error
}

// Menu is the interactive front end. Public items are shown before login;
// after login the items of the operator's role replace them.
type Menu struct {
	console  *Console
	auth     *AuthHandler
	public   []MenuItem
	customer []MenuItem
	admin    []MenuItem
	log      *zap.Logger
}

func NewMenu(console *Console, auth *AuthHandler, public, customer, admin []MenuItem, log *zap.Logger) *Menu {
	return &Menu{
		console:  console,
		auth:     auth,
		public:   public,
		customer: customer,
		admin:    admin,
		log:      log.With(zap.String("handler", "menu")),
	}
}

// Run shows the main menu until the operator quits, input ends or ctx is
// cancelled. None of those is an error.
func (m *Menu) Run(ctx context.Context) error {
	err := m.runMain(ctx)
	if isTerminal(err) {
		m.log.Info("Menu closed", zap.Error(err))
		m.console.Println("Goodbye.")
		return nil
	}
	return err
}

func (m *Menu) runMain(ctx context.Context) error {
	login := len(m.public) + 1
	for {
		m.console.Title("Cinema")
		printItems(m.console, m.public)
		m.console.Printf("%d) Log in\n", login)
		m.console.Println("0) Quit")

		choice, err := m.choose(ctx, login)
		if err != nil {
			return err
		}

		switch {
		case choice == 0:
			m.console.Println("Goodbye.")
			return nil
		case choice == login:
			session, err := m.auth.Login(ctx)
			if err != nil {
				return err
			}
			if session == nil {
				continue
			}
			if err := m.runSession(ctx, session); err != nil {
				return err
			}
		case choice > 0:
			if err := m.public[choice-1].Action(ctx); err != nil {
				return err
			}
		}
	}
}

func (m *Menu) runSession(ctx context.Context, session *utils.Session) error {
	ctx = utils.SetSessionContext(ctx, session)
	m.log.Info("Session started", zap.Int64("user_id", session.UserID), zap.String("role", session.Role))

	items, title := m.customer, "Customer menu"
	if session.IsAdmin() {
		items, title = m.admin, "Admin menu"
	}

	for {
		m.console.Title(fmt.Sprintf("%s (%s)", title, session.Username))
		printItems(m.console, items)
		m.console.Println("0) Log out")

		choice, err := m.choose(ctx, len(items))
		if err == nil && choice > 0 {
			err = items[choice-1].Action(ctx)
		}
		if err != nil {
			if isTerminal(err) {
				_ = m.auth.Logout(context.WithoutCancel(ctx))
			}
			return err
		}
		if choice == 0 {
			// a failed audit write still ends the session
			if err := m.auth.Logout(ctx); err != nil {
				m.log.Warn("Logout failed", zap.Error(err))
			}
			return nil
		}
	}
}

// choose reads one answer. Anything outside [0, last] prints a hint and
// yields -1.
func (m *Menu) choose(ctx context.Context, last int) (int, error) {
	answer, err := m.console.Prompt(ctx, "Choose an option")
	if err != nil {
		return 0, err
	}

	choice, err := strconv.Atoi(answer)
	if err != nil || choice < 0 || choice > last {
		m.console.Printf("Invalid option %q.\n", answer)
		return -1, nil
	}
	return choice, nil
}

func printItems(c *Console, items []MenuItem) {
	for i, item := range items {
		c.Printf("%d) %s\n", i+1, item.Label)
	}
}
