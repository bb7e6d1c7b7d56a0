package service

import (
	"context"
	"time"

	"vending-bot/internal/domain"
)

// initialCoins is the balance a user receives on first authentication.
const initialCoins = 100

// historyLimit caps how many transactions the history view returns.
const historyLimit = 10

// RoleStatus reports what happened to the verified-role side effect of an
// authentication. The persisted state is identical in all three cases.
type RoleStatus int

const (
	RoleGranted RoleStatus = iota
	RoleMissing
	RoleFailed
)

type AuthResult struct {
	Coins   int
	NewUser bool
	Role    RoleStatus
}

// Authenticate marks the invoking user as authenticated, creating the user
// record with the initial balance on first call. The role grant runs after
// the save: a grant failure degrades the reply but never rolls back state.
func (s *Service) Authenticate(ctx context.Context, guildID, userID string) (*AuthResult, error) {
	res := &AuthResult{}
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		u, ok := doc.Users[userID]
		if !ok {
			u = &domain.User{Coins: initialCoins, Authenticated: true, JoinDate: time.Now()}
			doc.Users[userID] = u
			res.NewUser = true
		} else {
			u.Authenticated = true
		}
		res.Coins = u.Coins
		return nil
	})
	if err != nil {
		return nil, err
	}

	found, grantErr := s.roles.GrantVerifiedRole(guildID, userID)
	switch {
	case grantErr != nil:
		s.log.Warn("verified role grant failed", "guild", guildID, "user", userID, "error", grantErr)
		res.Role = RoleFailed
	case !found:
		res.Role = RoleMissing
	default:
		res.Role = RoleGranted
	}
	return res, nil
}

// AddCoins adjusts the target's balance by amount, creating an
// unauthenticated zero-balance user if the target is unknown. Negative
// amounts are accepted.
func (s *Service) AddCoins(ctx context.Context, userID string, amount int) (int, error) {
	var balance int
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		u, ok := doc.Users[userID]
		if !ok {
			u = &domain.User{}
			doc.Users[userID] = u
		}
		u.Coins += amount
		balance = u.Coins
		return nil
	})
	return balance, err
}

type PurchaseResult struct {
	ItemName  string
	Price     int
	CoinsLeft int
}

// Purchase runs the shared buy flow for both the /buy command and the
// catalogue buttons. Preconditions are checked in order and the first
// failure wins; any failure leaves the document untouched.
func (s *Service) Purchase(ctx context.Context, guildID, userID, itemID string) (*PurchaseResult, error) {
	res := &PurchaseResult{}
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		u, ok := doc.Users[userID]
		if !ok {
			return domain.ErrNotAuthenticated
		}
		vm, ok := doc.Machines[guildID]
		if !ok {
			return domain.ErrNotFound
		}
		item, ok := vm.Items[itemID]
		if !ok {
			return domain.ErrNotFound
		}
		if item.Stock <= 0 {
			return domain.ErrOutOfStock
		}
		if u.Coins < item.Price {
			return &domain.InsufficientFundsError{Required: item.Price, Held: u.Coins}
		}

		u.Coins -= item.Price
		item.Stock--
		doc.Transactions = append(doc.Transactions, domain.Transaction{
			UserID:    userID,
			ItemName:  item.Name,
			Price:     item.Price,
			Timestamp: time.Now(),
			GuildID:   guildID,
		})
		res.ItemName = item.Name
		res.Price = item.Price
		res.CoinsLeft = u.Coins
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Transactions returns the user's most recent purchases in insertion order,
// oldest of the window first.
func (s *Service) Transactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	var out []domain.Transaction
	err := s.store.View(ctx, func(doc *domain.Document) error {
		for _, t := range doc.Transactions {
			if t.UserID == userID {
				out = append(out, t)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(out) > historyLimit {
		out = out[len(out)-historyLimit:]
	}
	return out, nil
}

type ProfileResult struct {
	Coins         int
	Purchases     int
	Authenticated bool
}

// Profile reports on an existing user; a user who never authenticated and
// never received coins has no profile.
func (s *Service) Profile(ctx context.Context, userID string) (*ProfileResult, error) {
	var res *ProfileResult
	err := s.store.View(ctx, func(doc *domain.Document) error {
		u, ok := doc.Users[userID]
		if !ok {
			return domain.ErrNotFound
		}
		count := 0
		for _, t := range doc.Transactions {
			if t.UserID == userID {
				count++
			}
		}
		res = &ProfileResult{Coins: u.Coins, Purchases: count, Authenticated: u.Authenticated}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
