// File: /services/fakes_test.go
package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"time"

	"fleetexpense-api/models"
	"fleetexpense-api/repositories"
)

type fakeRecord struct {
	category models.ExpenseCategory
	groupID  string
	amount   *float64
	date     time.Time
}

// fakeStore is an in-memory ScopeStore and AmountStore.
type fakeStore struct {
	mu       sync.Mutex
	users    map[string]models.User
	vehicles map[string]models.Vehicle
	groups   []models.Group
	records  []fakeRecord

	failCategory models.ExpenseCategory
	amountCalls  int
}

var errStoreDown = errors.New("connection refused")

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[string]models.User{},
		vehicles: map[string]models.Vehicle{},
	}
}

func (f *fakeStore) addUser(id, name string, role models.Role) {
	f.users[id] = models.User{ID: id, Name: name, Email: id + "@example.com", Role: role}
}

func (f *fakeStore) addVehicle(id, name string) {
	f.vehicles[id] = models.Vehicle{ID: id, Name: name}
}

func (f *fakeStore) addGroup(id, userID, vehicleID string) {
	f.groups = append(f.groups, models.Group{
		ID:        id,
		UserID:    userID,
		VehicleID: vehicleID,
		User:      f.users[userID],
		Vehicle:   f.vehicles[vehicleID],
	})
}

func (f *fakeStore) addExpense(category models.ExpenseCategory, groupID string, amount float64, date time.Time) {
	f.records = append(f.records, fakeRecord{category: category, groupID: groupID, amount: &amount, date: date})
}

func (f *fakeStore) addNullExpense(category models.ExpenseCategory, groupID string, date time.Time) {
	f.records = append(f.records, fakeRecord{category: category, groupID: groupID, date: date})
}

func (f *fakeStore) FindUser(_ context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (f *fakeStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeStore) FindUsers(_ context.Context, ids []string) (map[string]models.User, error) {
	out := map[string]models.User{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (f *fakeStore) FindVehicle(_ context.Context, id string) (*models.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &v, nil
}

func (f *fakeStore) FindVehicles(_ context.Context, ids []string) (map[string]models.Vehicle, error) {
	out := map[string]models.Vehicle{}
	for _, id := range ids {
		if v, ok := f.vehicles[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

func (f *fakeStore) FindGroups(_ context.Context, ids []string) ([]models.Group, error) {
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []models.Group
	for _, g := range f.groups {
		if want[g.ID] {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeStore) GroupIDs(_ context.Context, filter repositories.GroupFilter) ([]string, error) {
	var ids []string
	for _, g := range f.groups {
		if filter.UserID != "" && g.UserID != filter.UserID {
			continue
		}
		if filter.VehicleID != "" && g.VehicleID != filter.VehicleID {
			continue
		}
		ids = append(ids, g.ID)
	}
	sort.Strings(ids)
	return ids, nil
}

func (f *fakeStore) Amounts(_ context.Context, category models.ExpenseCategory, groupIDs []string, window *models.DateRange) ([]sql.NullFloat64, error) {
	f.mu.Lock()
	f.amountCalls++
	f.mu.Unlock()

	if category == f.failCategory {
		return nil, errStoreDown
	}

	in := map[string]bool{}
	for _, id := range groupIDs {
		in[id] = true
	}

	var out []sql.NullFloat64
	for _, r := range f.records {
		if r.category != category || !in[r.groupID] {
			continue
		}
		if window != nil && !window.Contains(r.date) {
			continue
		}
		if r.amount == nil {
			out = append(out, sql.NullFloat64{})
			continue
		}
		out = append(out, sql.NullFloat64{Float64: *r.amount, Valid: true})
	}
	return out, nil
}
