// Package payment models payment authorization.  There is no payment
// network behind it: each method decides acceptance with a local rule.
package payment

import (
	"strings"

	"github.com/iliyamo/cinema-box-office/internal/apperror"
)

// Authorizer decides whether a payment of amount is accepted.
// Implementations must not mutate shared state.
type Authorizer interface {
	Authorize(amount float64) bool
	String() string
}

// minCardTokenLen is the length a card token must exceed to be accepted.
const minCardTokenLen = 3

// CreditCard accepts any well-formed token.
type CreditCard struct {
	Token string
}

func (c CreditCard) Authorize(float64) bool {
	return len(strings.TrimSpace(c.Token)) > minCardTokenLen
}

func (CreditCard) String() string { return "Credit Card" }

// Cash is always accepted.
type Cash struct{}

func (Cash) Authorize(float64) bool { return true }

func (Cash) String() string { return "Cash" }

// Kind selects a payment strategy.
type Kind string

const (
	KindCreditCard Kind = "CREDIT_CARD"
	KindCash       Kind = "CASH"
)

// Method is the payment selection carried by a booking request.
type Method struct {
	Kind      Kind
	CardToken string // only used for KindCreditCard
}

// Resolve returns the authorizer for m.
func Resolve(m Method) (Authorizer, error) {
	switch Kind(strings.ToUpper(strings.TrimSpace(string(m.Kind)))) {
	case KindCreditCard, "CARD":
		return CreditCard{Token: m.CardToken}, nil
	case KindCash:
		return Cash{}, nil
	}
	return nil, apperror.New(apperror.InvalidRequest, "unsupported payment method %q", string(m.Kind))
}
