package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/ports"
	"github.com/jwtpizza/pizza-service/internal/pkg/metrics"
)

type FranchiseService struct {
	franchises ports.FranchiseRepository
	users      ports.UserRepository
	orders     ports.OrderRepository
	log        zerolog.Logger
}

func NewFranchiseService(
	franchises ports.FranchiseRepository,
	users ports.UserRepository,
	orders ports.OrderRepository,
	log zerolog.Logger,
) *FranchiseService {
	return &FranchiseService{franchises: franchises, users: users, orders: orders, log: log}
}

func (s *FranchiseService) List(ctx context.Context, actor *domain.Identity, filter ports.ListFranchisesFilter) (*domain.FranchisePage, error) {
	list, more, err := s.franchises.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Franchise{}
	}

	if actor != nil && domain.HasRole(*actor, domain.RoleAdmin) {
		if err := s.attachDetails(ctx, list); err != nil {
			return nil, err
		}
	}
	return &domain.FranchisePage{Franchises: list, More: more}, nil
}

func (s *FranchiseService) ListForUser(ctx context.Context, actor domain.Identity, userID int64) ([]domain.Franchise, error) {
	if actor.ID != userID && !domain.HasRole(actor, domain.RoleAdmin) {
		return []domain.Franchise{}, nil
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.Franchise{}, nil
		}
		return nil, err
	}

	var ids []int64
	for _, r := range user.Roles {
		if r.Role == domain.RoleFranchisee && r.ObjectID != nil {
			ids = append(ids, *r.ObjectID)
		}
	}
	if len(ids) == 0 {
		return []domain.Franchise{}, nil
	}

	list, err := s.franchises.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if err := s.attachDetails(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Create stores a franchise and grants each listed admin a franchisee role
// scoped to it. Every admin email must belong to an existing user.
func (s *FranchiseService) Create(ctx context.Context, in ports.CreateFranchiseInput) (*domain.Franchise, error) {
	if in.Name == "" {
		return nil, domain.Validation("name is required")
	}

	admins := make([]domain.FranchiseAdmin, 0, len(in.AdminEmails))
	for _, email := range in.AdminEmails {
		u, err := s.users.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NotFound(fmt.Sprintf("unknown user for franchise admin %s provided", email))
			}
			return nil, err
		}
		admins = append(admins, domain.FranchiseAdmin{ID: u.ID, Name: u.Name, Email: u.Email})
	}

	f, err := s.franchises.Create(ctx, in.Name)
	if err != nil {
		return nil, err
	}

	for _, a := range admins {
		if err := s.users.AddRole(ctx, a.ID, domain.Assign(domain.RoleFranchisee, f.ID)); err != nil {
			return nil, fmt.Errorf("grant franchisee role: %w", err)
		}
	}
	f.Admins = admins

	s.log.Info().Int64("franchise_id", f.ID).Str("name", f.Name).Int("admins", len(admins)).Msg("franchise created")
	return f, nil
}

// Delete removes the franchise, its stores and the franchisee roles scoped to
// it. Deleting an unknown franchise succeeds.
func (s *FranchiseService) Delete(ctx context.Context, franchiseID int64) error {
	if err := s.franchises.Delete(ctx, franchiseID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if err := s.users.RemoveFranchiseRoles(ctx, franchiseID); err != nil {
		return fmt.Errorf("revoke franchisee roles: %w", err)
	}
	s.log.Info().Int64("franchise_id", franchiseID).Msg("franchise deleted")
	return nil
}

func (s *FranchiseService) CreateStore(ctx context.Context, actor domain.Identity, franchiseID int64, name string) (*domain.Store, error) {
	if _, err := s.authorize(ctx, actor, franchiseID, "create"); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, domain.Validation("name is required")
	}

	store, err := s.franchises.CreateStore(ctx, franchiseID, name)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("franchise_id", franchiseID).Int64("store_id", store.ID).Msg("store created")
	return store, nil
}

func (s *FranchiseService) DeleteStore(ctx context.Context, actor domain.Identity, franchiseID, storeID int64) error {
	if _, err := s.authorize(ctx, actor, franchiseID, "delete"); err != nil {
		return err
	}

	if err := s.franchises.DeleteStore(ctx, franchiseID, storeID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	s.log.Info().Int64("franchise_id", franchiseID).Int64("store_id", storeID).Msg("store deleted")
	return nil
}

// authorize loads the franchise with its admins and applies the ownership
// check. A missing franchise is reported as forbidden, not as not found.
func (s *FranchiseService) authorize(ctx context.Context, actor domain.Identity, franchiseID int64, verb string) (*domain.Franchise, error) {
	f, err := s.franchises.FindByID(ctx, franchiseID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if f != nil {
		admins, err := s.users.FranchiseAdmins(ctx, []int64{f.ID})
		if err != nil {
			return nil, err
		}
		f.Admins = admins[f.ID]
	}

	if !domain.CanManageFranchise(actor, f) {
		metrics.AccessDeniedTotal.WithLabelValues(verb + "_store").Inc()
		return nil, domain.Forbidden(fmt.Sprintf("unable to %s a store", verb))
	}
	return f, nil
}

// attachDetails fills in admins and store revenue, which only privileged
// callers get to see.
func (s *FranchiseService) attachDetails(ctx context.Context, list []domain.Franchise) error {
	if len(list) == 0 {
		return nil
	}

	ids := make([]int64, len(list))
	var storeIDs []int64
	for i, f := range list {
		ids[i] = f.ID
		for _, st := range f.Stores {
			storeIDs = append(storeIDs, st.ID)
		}
	}

	admins, err := s.users.FranchiseAdmins(ctx, ids)
	if err != nil {
		return err
	}
	revenue, err := s.orders.StoreRevenue(ctx, storeIDs)
	if err != nil {
		return err
	}

	for i := range list {
		list[i].Admins = admins[list[i].ID]
		for j := range list[i].Stores {
			total := revenue[list[i].Stores[j].ID]
			list[i].Stores[j].TotalRevenue = &total
		}
	}
	return nil
}
