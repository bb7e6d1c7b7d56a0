package service

import (
	"context"
	"strconv"
	"time"

	"vending-bot/internal/domain"
)

// Catalog returns the guild's vending machine, creating an empty one the
// first time the catalogue is displayed. The common path is read-only; the
// create path re-checks under the write lock so the machine is created
// exactly once.
func (s *Service) Catalog(ctx context.Context, guildID string) (*domain.VendingMachine, error) {
	var vm *domain.VendingMachine
	err := s.store.View(ctx, func(doc *domain.Document) error {
		vm = doc.Machines[guildID]
		return nil
	})
	if err != nil {
		return nil, err
	}
	if vm != nil {
		return vm, nil
	}
	err = s.store.Update(ctx, func(doc *domain.Document) error {
		m, ok := doc.Machines[guildID]
		if !ok {
			m = newMachine()
			doc.Machines[guildID] = m
		}
		vm = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vm, nil
}

// AddItem stores a new catalogue item and returns its assigned id. Ids are
// count-based, len(items)+1 as a string, so an id freed by a deletion can
// be handed out again.
func (s *Service) AddItem(ctx context.Context, guildID, invoker, name string, price, stock int) (string, error) {
	var id string
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		vm, ok := doc.Machines[guildID]
		if !ok {
			vm = newMachine()
			doc.Machines[guildID] = vm
		}
		id = strconv.Itoa(len(vm.Items) + 1)
		vm.Items[id] = &domain.Item{Name: name, Price: price, Stock: stock, CreatedBy: invoker}
		return nil
	})
	return id, err
}

// DeleteItem removes an item and returns its name for the confirmation
// reply.
func (s *Service) DeleteItem(ctx context.Context, guildID, itemID string) (string, error) {
	var name string
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		vm, item, err := guildItem(doc, guildID, itemID)
		if err != nil {
			return err
		}
		name = item.Name
		delete(vm.Items, itemID)
		return nil
	})
	return name, err
}

// ChangePrice overwrites an item's price and returns the previous one.
func (s *Service) ChangePrice(ctx context.Context, guildID, itemID string, newPrice int) (int, error) {
	var oldPrice int
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		_, item, err := guildItem(doc, guildID, itemID)
		if err != nil {
			return err
		}
		oldPrice = item.Price
		item.Price = newPrice
		return nil
	})
	return oldPrice, err
}

// AddStock adjusts an item's stock by amount. No floor is enforced here;
// purchases are blocked at zero anyway.
func (s *Service) AddStock(ctx context.Context, guildID, itemID string, amount int) error {
	return s.store.Update(ctx, func(doc *domain.Document) error {
		_, item, err := guildItem(doc, guildID, itemID)
		if err != nil {
			return err
		}
		item.Stock += amount
		return nil
	})
}

func newMachine() *domain.VendingMachine {
	return &domain.VendingMachine{Items: map[string]*domain.Item{}, CreatedAt: time.Now()}
}

func guildItem(doc *domain.Document, guildID, itemID string) (*domain.VendingMachine, *domain.Item, error) {
	vm, ok := doc.Machines[guildID]
	if !ok {
		return nil, nil, domain.ErrNotFound
	}
	item, ok := vm.Items[itemID]
	if !ok {
		return nil, nil, domain.ErrNotFound
	}
	return vm, item, nil
}
