package service

import (
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-box-office/internal/notify"
	"github.com/iliyamo/cinema-box-office/internal/repository"
)

// Services is the per-process context: one catalog, one account
// directory, one notification bus and the services built on them.  Tests
// build their own instance instead of sharing a global.
type Services struct {
	Catalog  *CatalogService
	Accounts *AccountService
	Reviews  *ReviewService
	Booking  *BookingEngine
	Bus      *notify.Bus
}

// New wires the services around fresh in-memory stores.
func New(bcryptCost int, log logrus.FieldLogger) *Services {
	movies := repository.NewMovieRepo()
	halls := repository.NewHallRepo()
	users := repository.NewUserRepo(bcryptCost)
	bus := notify.NewBus(log)
	return &Services{
		Catalog:  NewCatalogService(movies, halls, log),
		Accounts: NewAccountService(users, log),
		Reviews:  NewReviewService(movies, log),
		Booking:  NewBookingEngine(movies, users, bus, log),
		Bus:      bus,
	}
}

// SubscribeDefaults registers the built-in email notifier and revenue
// logger.  Call it once at startup.
func (s *Services) SubscribeDefaults(log logrus.FieldLogger) *notify.RevenueLogger {
	revenue := notify.NewRevenueLogger(log.WithField("subscriber", "revenue"))
	s.Bus.Subscribe("email", notify.EmailNotifier{Log: log.WithField("subscriber", "email")})
	s.Bus.Subscribe("revenue", revenue)
	return revenue
}

// Seed loads the demo accounts, halls and movies.
func (s *Services) Seed() error {
	if _, err := s.Accounts.Register("ADMIN", "admin", "123"); err != nil {
		return err
	}
	if _, err := s.Accounts.Register("CUSTOMER", "customer", "123"); err != nil {
		return err
	}
	if _, err := s.Catalog.AddHall("Hall A", "20"); err != nil {
		return err
	}
	if _, err := s.Catalog.AddHall("IMAX Hall", "50"); err != nil {
		return err
	}
	movies := []MovieInput{
		{Title: "Inception", Genre: "Sci-Fi", Language: "English", Price: "12", Showtime: "18:00", HallName: "Hall A"},
		{Title: "Parasite", Genre: "Thriller", Language: "Korean", Price: "10", Showtime: "20:00", HallName: "IMAX Hall"},
	}
	for _, in := range movies {
		if _, err := s.Catalog.AddMovie(in); err != nil {
			return err
		}
	}
	return nil
}
