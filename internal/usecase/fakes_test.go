package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/queue"

	"github.com/google/uuid"
)

// memStore is an in-memory stand-in for the database. It enforces the same
// unique and foreign key rules the schema does.
type memStore struct {
	mu sync.Mutex

	nextID         int64
	users          map[int64]*entity.User
	sessions       map[uuid.UUID]*entity.Session
	genres         []entity.Lookup
	audienceTypes  []entity.Lookup
	paymentMethods []entity.Lookup
	movies         map[int64]*entity.Movie
	rooms          map[int64]*entity.Room
	seats          map[int64]*entity.Seat
	showtimes      map[int64]*entity.Showtime
	tickets        map[int64]*entity.Ticket
	receipts       map[int64]*entity.Receipt
	billedBy       map[int64]int64 // ticket id -> receipt id

	lookupCalls int
}

func newMemStore() *memStore {
	return &memStore{
		nextID:         100,
		users:          map[int64]*entity.User{},
		sessions:       map[uuid.UUID]*entity.Session{},
		genres:         []entity.Lookup{{ID: 1, Label: "Action"}, {ID: 2, Label: "Comedy"}},
		audienceTypes:  []entity.Lookup{{ID: 1, Label: "All audiences"}, {ID: 2, Label: "13+"}},
		paymentMethods: []entity.Lookup{{ID: 1, Label: "Cash"}, {ID: 2, Label: "Credit card"}},
		movies:         map[int64]*entity.Movie{},
		rooms:          map[int64]*entity.Room{},
		seats:          map[int64]*entity.Seat{},
		showtimes:      map[int64]*entity.Showtime{},
		tickets:        map[int64]*entity.Ticket{},
		receipts:       map[int64]*entity.Receipt{},
		billedBy:       map[int64]int64{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) repository() *repository.Repository {
	repo := &repository.Repository{
		User:          &fakeUserRepo{m},
		Session:       &fakeSessionRepo{m},
		Genre:         &fakeGenreRepo{m},
		AudienceType:  &fakeAudienceTypeRepo{m},
		PaymentMethod: &fakePaymentMethodRepo{m},
		Movie:         &fakeMovieRepo{m},
		Room:          &fakeRoomRepo{m},
		Seat:          &fakeSeatRepo{m},
		Showtime:      &fakeShowtimeRepo{m},
		Ticket:        &fakeTicketRepo{m},
		Receipt:       &fakeReceiptRepo{m},
	}
	repo.Tx = fakeTx{repo: repo}
	return repo
}

func lookupLabel(items []entity.Lookup, id int64) (string, bool) {
	for _, item := range items {
		if item.ID == id {
			return item.Label, true
		}
	}
	return "", false
}

// fakeTx runs fn against the same store; rollback is not modelled.
type fakeTx struct {
	repo *repository.Repository
}

func (t fakeTx) WithinTx(_ context.Context, fn func(tx *repository.Repository) error) error {
	return fn(t.repo)
}

type fakeUserRepo struct{ m *memStore }

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Username == user.Username {
			return repository.ErrDuplicate
		}
	}
	user.ID = r.m.id()
	user.CreatedAt = time.Now()
	copied := *user
	r.m.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if u, ok := r.m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*entity.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var users []*entity.User
	for _, u := range r.m.users {
		copied := *u
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

type fakeSessionRepo struct{ m *memStore }

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	session.CreatedAt = time.Now()
	copied := *session
	r.m.sessions[session.ID] = &copied
	return nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if s, ok := r.m.sessions[id]; ok && s.RevokedAt == nil {
		now := time.Now()
		s.RevokedAt = &now
	}
	return nil
}

type fakeGenreRepo struct{ m *memStore }

func (r *fakeGenreRepo) FindAll(_ context.Context) ([]*entity.Genre, error) {
	r.m.lookupCalls++
	out := make([]*entity.Genre, 0, len(r.m.genres))
	for _, g := range r.m.genres {
		genre := entity.Genre(g)
		out = append(out, &genre)
	}
	return out, nil
}

type fakeAudienceTypeRepo struct{ m *memStore }

func (r *fakeAudienceTypeRepo) FindAll(_ context.Context) ([]*entity.AudienceType, error) {
	r.m.lookupCalls++
	out := make([]*entity.AudienceType, 0, len(r.m.audienceTypes))
	for _, a := range r.m.audienceTypes {
		at := entity.AudienceType(a)
		out = append(out, &at)
	}
	return out, nil
}

type fakePaymentMethodRepo struct{ m *memStore }

func (r *fakePaymentMethodRepo) FindAll(_ context.Context) ([]*entity.PaymentMethod, error) {
	r.m.lookupCalls++
	out := make([]*entity.PaymentMethod, 0, len(r.m.paymentMethods))
	for _, p := range r.m.paymentMethods {
		pm := entity.PaymentMethod(p)
		out = append(out, &pm)
	}
	return out, nil
}

func (r *fakePaymentMethodRepo) FindByID(_ context.Context, id int64) (*entity.PaymentMethod, error) {
	if label, ok := lookupLabel(r.m.paymentMethods, id); ok {
		return &entity.PaymentMethod{ID: id, Label: label}, nil
	}
	return nil, nil
}

type fakeMovieRepo struct{ m *memStore }

func (r *fakeMovieRepo) Create(_ context.Context, movie *entity.Movie) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	_, genreOK := lookupLabel(r.m.genres, movie.GenreID)
	_, audienceOK := lookupLabel(r.m.audienceTypes, movie.AudienceTypeID)
	if !genreOK || !audienceOK {
		return repository.ErrReferenced
	}
	movie.ID = r.m.id()
	movie.CreatedAt = time.Now()
	copied := *movie
	r.m.movies[movie.ID] = &copied
	return nil
}

func (r *fakeMovieRepo) detail(movie *entity.Movie) *entity.MovieDetail {
	genre, _ := lookupLabel(r.m.genres, movie.GenreID)
	audience, _ := lookupLabel(r.m.audienceTypes, movie.AudienceTypeID)
	return &entity.MovieDetail{Movie: *movie, GenreName: genre, AudienceType: audience}
}

func (r *fakeMovieRepo) FindByID(_ context.Context, id int64) (*entity.MovieDetail, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if movie, ok := r.m.movies[id]; ok {
		return r.detail(movie), nil
	}
	return nil, nil
}

func (r *fakeMovieRepo) FindAll(_ context.Context) ([]*entity.MovieDetail, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var movies []*entity.MovieDetail
	for _, movie := range r.m.movies {
		movies = append(movies, r.detail(movie))
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].Title < movies[j].Title })
	return movies, nil
}

func (r *fakeMovieRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.movies[id]; !ok {
		return false, nil
	}
	for _, sh := range r.m.showtimes {
		if sh.MovieID == id {
			return false, repository.ErrReferenced
		}
	}
	delete(r.m.movies, id)
	return true, nil
}

type fakeRoomRepo struct{ m *memStore }

func (r *fakeRoomRepo) FindAll(_ context.Context) ([]*entity.Room, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var rooms []*entity.Room
	for _, room := range r.m.rooms {
		copied := *room
		rooms = append(rooms, &copied)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Name < rooms[j].Name })
	return rooms, nil
}

func (r *fakeRoomRepo) FindByID(_ context.Context, id int64) (*entity.Room, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if room, ok := r.m.rooms[id]; ok {
		copied := *room
		return &copied, nil
	}
	return nil, nil
}

type fakeSeatRepo struct{ m *memStore }

func (r *fakeSeatRepo) Create(_ context.Context, seat *entity.Seat) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.rooms[seat.RoomID]; !ok {
		return repository.ErrReferenced
	}
	for _, s := range r.m.seats {
		if s.RoomID == seat.RoomID && s.Code == seat.Code {
			return repository.ErrDuplicate
		}
	}
	seat.ID = r.m.id()
	copied := *seat
	r.m.seats[seat.ID] = &copied
	return nil
}

func (r *fakeSeatRepo) FindByID(_ context.Context, id int64) (*entity.Seat, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if seat, ok := r.m.seats[id]; ok {
		copied := *seat
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeSeatRepo) filter(keep func(*entity.Seat) bool) []*entity.Seat {
	var seats []*entity.Seat
	for _, seat := range r.m.seats {
		if keep(seat) {
			copied := *seat
			seats = append(seats, &copied)
		}
	}
	sort.Slice(seats, func(i, j int) bool { return seats[i].Code < seats[j].Code })
	return seats
}

func (r *fakeSeatRepo) FindByRoomID(_ context.Context, roomID int64) ([]*entity.Seat, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.filter(func(s *entity.Seat) bool { return s.RoomID == roomID }), nil
}

func (r *fakeSeatRepo) CountByRoomID(ctx context.Context, roomID int64) (int, error) {
	seats, _ := r.FindByRoomID(ctx, roomID)
	return len(seats), nil
}

func (r *fakeSeatRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.seats[id]; !ok {
		return false, nil
	}
	for _, t := range r.m.tickets {
		if t.SeatID == id {
			return false, repository.ErrReferenced
		}
	}
	delete(r.m.seats, id)
	return true, nil
}

func (r *fakeSeatRepo) FindAvailableByShowtime(_ context.Context, showtimeID int64) ([]*entity.Seat, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	showtime, ok := r.m.showtimes[showtimeID]
	if !ok {
		return nil, nil
	}
	taken := map[int64]bool{}
	for _, t := range r.m.tickets {
		if t.ShowtimeID == showtimeID {
			taken[t.SeatID] = true
		}
	}
	return r.filter(func(s *entity.Seat) bool { return s.RoomID == showtime.RoomID && !taken[s.ID] }), nil
}

type fakeShowtimeRepo struct{ m *memStore }

func sameSlot(a *entity.Showtime, roomID int64, date, clock time.Time) bool {
	return a.RoomID == roomID &&
		a.ShowDate.Equal(date) &&
		a.ShowTime.Format("15:04:05") == clock.Format("15:04:05")
}

func (r *fakeShowtimeRepo) Create(_ context.Context, showtime *entity.Showtime) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, sh := range r.m.showtimes {
		if sameSlot(sh, showtime.RoomID, showtime.ShowDate, showtime.ShowTime) {
			return repository.ErrDuplicate
		}
	}
	_, movieOK := r.m.movies[showtime.MovieID]
	_, roomOK := r.m.rooms[showtime.RoomID]
	if !movieOK || !roomOK {
		return repository.ErrReferenced
	}
	showtime.ID = r.m.id()
	showtime.CreatedAt = time.Now()
	copied := *showtime
	r.m.showtimes[showtime.ID] = &copied
	return nil
}

func (r *fakeShowtimeRepo) detail(sh *entity.Showtime) *entity.ShowtimeDetail {
	d := &entity.ShowtimeDetail{Showtime: *sh}
	if movie, ok := r.m.movies[sh.MovieID]; ok {
		d.MovieTitle = movie.Title
		d.PriceCents = movie.PriceCents
	}
	if room, ok := r.m.rooms[sh.RoomID]; ok {
		d.RoomName = room.Name
	}
	return d
}

func (r *fakeShowtimeRepo) FindByID(_ context.Context, id int64) (*entity.ShowtimeDetail, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if sh, ok := r.m.showtimes[id]; ok {
		return r.detail(sh), nil
	}
	return nil, nil
}

func (r *fakeShowtimeRepo) FindAll(_ context.Context) ([]*entity.ShowtimeDetail, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var showtimes []*entity.ShowtimeDetail
	for _, sh := range r.m.showtimes {
		showtimes = append(showtimes, r.detail(sh))
	}
	sort.Slice(showtimes, func(i, j int) bool {
		a, b := showtimes[i], showtimes[j]
		if !a.ShowDate.Equal(b.ShowDate) {
			return a.ShowDate.Before(b.ShowDate)
		}
		return a.ShowTime.Before(b.ShowTime)
	})
	return showtimes, nil
}

func (r *fakeShowtimeRepo) ExistsSlot(_ context.Context, roomID int64, date, clock time.Time) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, sh := range r.m.showtimes {
		if sameSlot(sh, roomID, date, clock) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeShowtimeRepo) CountByMovieID(_ context.Context, movieID int64) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	count := 0
	for _, sh := range r.m.showtimes {
		if sh.MovieID == movieID {
			count++
		}
	}
	return count, nil
}

func (r *fakeShowtimeRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.showtimes[id]; !ok {
		return false, nil
	}
	for _, t := range r.m.tickets {
		if t.ShowtimeID == id {
			return false, repository.ErrReferenced
		}
	}
	delete(r.m.showtimes, id)
	return true, nil
}

type fakeTicketRepo struct{ m *memStore }

func (r *fakeTicketRepo) Create(_ context.Context, ticket *entity.Ticket) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, t := range r.m.tickets {
		if t.ShowtimeID == ticket.ShowtimeID && t.SeatID == ticket.SeatID {
			return repository.ErrDuplicate
		}
	}
	ticket.ID = r.m.id()
	ticket.CreatedAt = time.Now()
	copied := *ticket
	r.m.tickets[ticket.ID] = &copied
	return nil
}

func (r *fakeTicketRepo) ExistsForSeat(_ context.Context, showtimeID, seatID int64) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, t := range r.m.tickets {
		if t.ShowtimeID == showtimeID && t.SeatID == seatID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTicketRepo) count(keep func(*entity.Ticket) bool) int {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	count := 0
	for _, t := range r.m.tickets {
		if keep(t) {
			count++
		}
	}
	return count
}

func (r *fakeTicketRepo) CountBySeatID(_ context.Context, seatID int64) (int, error) {
	return r.count(func(t *entity.Ticket) bool { return t.SeatID == seatID }), nil
}

func (r *fakeTicketRepo) CountByShowtimeID(_ context.Context, showtimeID int64) (int, error) {
	return r.count(func(t *entity.Ticket) bool { return t.ShowtimeID == showtimeID }), nil
}

func (r *fakeTicketRepo) FindByIDsForUpdate(_ context.Context, ids []int64) ([]*entity.Ticket, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var tickets []*entity.Ticket
	for _, id := range ids {
		if t, ok := r.m.tickets[id]; ok {
			copied := *t
			tickets = append(tickets, &copied)
		}
	}
	return tickets, nil
}

func (r *fakeTicketRepo) DeleteUnbilled(_ context.Context, userID int64, ids []int64) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var released int64
	for _, id := range ids {
		t, ok := r.m.tickets[id]
		if !ok || t.UserID != userID {
			continue
		}
		if _, billed := r.m.billedBy[id]; billed {
			continue
		}
		delete(r.m.tickets, id)
		released++
	}
	return released, nil
}

type fakeReceiptRepo struct{ m *memStore }

func (r *fakeReceiptRepo) Create(_ context.Context, receipt *entity.Receipt) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	receipt.ID = r.m.id()
	receipt.PurchasedAt = time.Now()
	copied := *receipt
	r.m.receipts[receipt.ID] = &copied
	return nil
}

func (r *fakeReceiptRepo) AttachTickets(_ context.Context, receiptID int64, ticketIDs []int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, id := range ticketIDs {
		if _, billed := r.m.billedBy[id]; billed {
			return repository.ErrDuplicate
		}
		if _, ok := r.m.tickets[id]; !ok {
			return repository.ErrReferenced
		}
	}
	for _, id := range ticketIDs {
		r.m.billedBy[id] = receiptID
	}
	return nil
}

func (r *fakeReceiptRepo) header(receipt *entity.Receipt) *entity.ReceiptHeader {
	h := &entity.ReceiptHeader{Receipt: *receipt}
	if u, ok := r.m.users[receipt.UserID]; ok {
		h.Username = u.Username
	}
	h.PaymentMethod, _ = lookupLabel(r.m.paymentMethods, receipt.PaymentMethodID)
	return h
}

func (r *fakeReceiptRepo) FindByID(_ context.Context, id int64) (*entity.ReceiptHeader, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if receipt, ok := r.m.receipts[id]; ok {
		return r.header(receipt), nil
	}
	return nil, nil
}

func (r *fakeReceiptRepo) FindByUserID(_ context.Context, userID int64) ([]*entity.ReceiptHeader, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var receipts []*entity.ReceiptHeader
	for _, receipt := range r.m.receipts {
		if receipt.UserID == userID {
			receipts = append(receipts, r.header(receipt))
		}
	}
	sort.Slice(receipts, func(i, j int) bool { return receipts[i].ID > receipts[j].ID })
	return receipts, nil
}

func (r *fakeReceiptRepo) FindLines(_ context.Context, receiptID int64) ([]*entity.ReceiptLine, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var lines []*entity.ReceiptLine
	for ticketID, rid := range r.m.billedBy {
		if rid != receiptID {
			continue
		}
		t := r.m.tickets[ticketID]
		sh := r.m.showtimes[t.ShowtimeID]
		line := &entity.ReceiptLine{
			TicketID:   t.ID,
			ShowDate:   sh.ShowDate,
			ShowTime:   sh.ShowTime,
			SeatCode:   r.m.seats[t.SeatID].Code,
			PriceCents: t.PriceCents,
		}
		if movie, ok := r.m.movies[sh.MovieID]; ok {
			line.MovieTitle = movie.Title
		}
		if room, ok := r.m.rooms[sh.RoomID]; ok {
			line.RoomName = room.Name
		}
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].SeatCode < lines[j].SeatCode })
	return lines, nil
}

type fakePublisher struct {
	events []queue.ReceiptIssuedEvent
	err    error
}

func (p *fakePublisher) PublishReceiptIssued(_ context.Context, event queue.ReceiptIssuedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) Close() error { return nil }
