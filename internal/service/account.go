package service

import (
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-box-office/internal/model"
	"github.com/iliyamo/cinema-box-office/internal/repository"
	"github.com/iliyamo/cinema-box-office/internal/utils"
)

type AccountService struct {
	Users *repository.UserRepo
	Log   logrus.FieldLogger
}

func NewAccountService(users *repository.UserRepo, log logrus.FieldLogger) *AccountService {
	return &AccountService{Users: users, Log: log}
}

// Login returns the user when the credentials match, nil otherwise.
func (s *AccountService) Login(username, password string) *model.User {
	u, err := s.Users.GetByUsername(username)
	if err != nil {
		return nil
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return nil
	}
	return u
}

// Register creates an account for role CUSTOMER or ADMIN.
func (s *AccountService) Register(role, username, password string) (*model.User, error) {
	u, err := s.Users.Create(role, username, password)
	if err != nil {
		return nil, err
	}
	s.Log.WithFields(logrus.Fields{"username": u.Username, "role": u.Role}).Info("user registered")
	return u, nil
}

// History returns a customer's booking descriptions in booking order.
func (s *AccountService) History(username string) ([]string, error) {
	u, err := s.Users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	return u.Bookings(), nil
}
